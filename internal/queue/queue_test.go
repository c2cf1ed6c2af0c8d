package queue

import (
	"testing"
	"time"

	"github.com/chrisng16/waitlist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

func entry(id string, minute int, status models.EntryStatus) models.WaitlistEntry {
	return models.WaitlistEntry{
		ID:        id,
		StoreID:   "store-1",
		Status:    status,
		CreatedAt: base.Add(time.Duration(minute) * time.Minute),
	}
}

func ids(positions []Position) []string {
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = p.Entry.ID
	}
	return out
}

func TestVisible_FiltersAndOrders(t *testing.T) {
	entries := []models.WaitlistEntry{
		entry("c", 3, models.StatusWaiting),
		entry("a", 1, models.StatusWaiting),
		entry("seated", 0, models.StatusSeated),
		entry("b", 2, models.StatusPending),
		entry("gone", 4, models.StatusCancelled),
	}

	got := Visible(entries)

	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
	for i, p := range got {
		assert.Equal(t, i+1, p.Place)
	}
	assert.Equal(t, "c", entries[0].ID, "input must not be reordered")
}

func TestVisible_Empty(t *testing.T) {
	assert.Empty(t, Visible(nil))
	assert.Empty(t, Visible([]models.WaitlistEntry{entry("x", 0, models.StatusSeated)}))
}

func TestVisible_SeatingKeepsRelativeOrder(t *testing.T) {
	entries := []models.WaitlistEntry{
		entry("a", 1, models.StatusWaiting),
		entry("harry", 2, models.StatusWaiting),
		entry("b", 3, models.StatusWaiting),
	}
	before := Visible(entries)
	require.Len(t, before, 3)
	assert.Equal(t, "harry", before[1].Entry.ID)
	assert.Equal(t, 2, before[1].Place)

	entries[1].Status = models.StatusSeated
	got := Visible(entries)

	assert.Equal(t, []string{"a", "b"}, ids(got))
	assert.Equal(t, 2, got[1].Place)
}
