// Package phone normalizes free-text phone input into the dashed ddd-ddd-dddd form.
package phone

import "strings"

const maxDigits = 10

// Format keeps the first ten digits of input and groups them as ddd-ddd-dddd.
// Partial input is grouped as far as it goes: "386" -> "386", "3862" -> "386-2".
func Format(input string) string {
	digits := make([]byte, 0, maxDigits)
	for i := 0; i < len(input) && len(digits) < maxDigits; i++ {
		if c := input[i]; c >= '0' && c <= '9' {
			digits = append(digits, c)
		}
	}

	var b strings.Builder
	for i, d := range digits {
		if i == 3 || i == 6 {
			b.WriteByte('-')
		}
		b.WriteByte(d)
	}
	return b.String()
}

// LastFour returns the trailing four characters of a stored phone string,
// or the whole string when it is shorter.
func LastFour(stored string) string {
	if len(stored) <= 4 {
		return stored
	}
	return stored[len(stored)-4:]
}
