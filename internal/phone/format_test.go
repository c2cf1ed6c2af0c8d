package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"no digits", "abc-()", ""},
		{"one digit", "3", "3"},
		{"three digits", "386", "386"},
		{"four digits", "3862", "386-2"},
		{"six digits", "386253", "386-253"},
		{"seven digits", "3862533", "386-253-3"},
		{"ten digits", "3862533673", "386-253-3673"},
		{"strips punctuation", "(386) 253.3673", "386-253-3673"},
		{"already formatted", "386-253-3673", "386-253-3673"},
		{"truncates beyond ten", "38625336739999", "386-253-3673"},
		{"leading country code is just a digit", "+1 386 253 3673", "138-625-3367"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.input))
		})
	}
}

func TestFormat_TruncationMatchesPrefix(t *testing.T) {
	long := "123456789012345"
	assert.Equal(t, Format(long[:10]), Format(long))
}

func TestFormat_Idempotent(t *testing.T) {
	for _, in := range []string{"3862533673", "555 123 4567", "12", "12345"} {
		once := Format(in)
		assert.Equal(t, once, Format(once), in)
	}
}

func TestLastFour(t *testing.T) {
	assert.Equal(t, "3673", LastFour("386-253-3673"))
	assert.Equal(t, "12", LastFour("12"))
	assert.Equal(t, "", LastFour(""))
}
