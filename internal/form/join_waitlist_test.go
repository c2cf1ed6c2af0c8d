package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() *JoinWaitlist {
	return &JoinWaitlist{
		Name:      "Harry Potter",
		Phone:     "386-253-3673",
		Email:     "h@hogwarts.edu",
		PartySize: 4,
	}
}

func TestJoinWaitlist_Valid(t *testing.T) {
	assert.NoError(t, validForm().Validate())
}

func TestJoinWaitlist_AcceptsCountryPrefix(t *testing.T) {
	f := validForm()
	f.Phone = "1-386-253-3673"
	assert.NoError(t, f.Validate())
}

func TestJoinWaitlist_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *JoinWaitlist)
		field  string
	}{
		{"missing name", func(f *JoinWaitlist) { f.Name = "" }, "name"},
		{"blank name", func(f *JoinWaitlist) { f.Name = "   " }, "name"},
		{"missing phone", func(f *JoinWaitlist) { f.Phone = "" }, "phone"},
		{"short phone", func(f *JoinWaitlist) { f.Phone = "12345" }, "phone"},
		{"undashed phone", func(f *JoinWaitlist) { f.Phone = "3862533673" }, "phone"},
		{"missing email", func(f *JoinWaitlist) { f.Email = "" }, "email"},
		{"email without tld", func(f *JoinWaitlist) { f.Email = "foo@bar" }, "email"},
		{"missing party size", func(f *JoinWaitlist) { f.PartySize = 0 }, "party_size"},
		{"party too large", func(f *JoinWaitlist) { f.PartySize = 13 }, "party_size"},
		{"negative party", func(f *JoinWaitlist) { f.PartySize = -2 }, "party_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(f)
			err := f.Validate()
			require.Error(t, err)
			assert.Equal(t, []string{tt.field}, Fields(err))
		})
	}
}

func TestJoinWaitlist_CollectsAllFields(t *testing.T) {
	err := (&JoinWaitlist{}).Validate()
	require.Error(t, err)
	assert.Equal(t, []string{"email", "name", "party_size", "phone"}, Fields(err))

	msgs := FieldMessages(err)
	assert.Equal(t, "Name is required.", msgs["name"])
}
