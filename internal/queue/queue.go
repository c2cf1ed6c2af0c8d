// Package queue derives the visible waitlist from raw entries: entries still
// awaiting seating, oldest first, each with its 1-based place in line.
package queue

import (
	"sort"

	"github.com/chrisng16/waitlist/internal/models"
)

type Position struct {
	Place int
	Entry models.WaitlistEntry
}

// Visible filters out seated and cancelled entries, orders the rest by
// creation time and numbers them from 1. The input slice is not modified.
func Visible(entries []models.WaitlistEntry) []Position {
	waiting := make([]models.WaitlistEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status.Visible() {
			waiting = append(waiting, e)
		}
	}

	sort.SliceStable(waiting, func(i, j int) bool {
		return waiting[i].CreatedAt.Before(waiting[j].CreatedAt)
	})

	positions := make([]Position, len(waiting))
	for i, e := range waiting {
		positions[i] = Position{Place: i + 1, Entry: e}
	}
	return positions
}
