package form

import (
	"strings"
	"testing"
	"testing/quick"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
)

func TestValidate_Examples(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     FieldErrors
	}{
		{
			name:     "short password",
			email:    "a@b.co",
			password: "12345",
			want:     FieldErrors{FieldPassword: "Password must be at least 6 characters."},
		},
		{
			name:     "malformed email",
			email:    "bad-email",
			password: "123456",
			want:     FieldErrors{FieldEmail: "Enter a valid email address."},
		},
		{
			name:     "valid",
			email:    "a@b.co",
			password: "123456",
			want:     FieldErrors{},
		},
		{
			name:     "both invalid",
			email:    "",
			password: "",
			want:     FieldErrors{FieldEmail: MsgInvalidEmail, FieldPassword: MsgShortPassword},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.email, tt.password)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want) == 0, got.Valid())
		})
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"alex@example.com", true},
		{"a@b.c", true},
		{"first.last+tag@sub.domain.org", true},
		{"contact me at a@b.co", true},
		{"a@b", false},
		{"@b.co", false},
		{"a@.co", false},
		{"a @b.co", false},
		{"a@ b.co", false},
		{"ab.co", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidEmail(tt.email))
		})
	}
}

func TestValidate_PasswordLengthCountsUTF16Units(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"ñññññ", true},
		{"ñandú!", false},
		{"日本語日本語", false},
		{"      ", false},
		// each emoji is a surrogate pair
		{"😀😀", true},
		{"😀😀😀", false},
		{"😀a", true},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			_, flagged := Validate("a@b.co", tt.password)[FieldPassword]
			assert.Equal(t, tt.want, flagged)
		})
	}
}

func TestValidate_EmailWithoutAtIsAlwaysFlagged(t *testing.T) {
	property := func(s string) bool {
		s = strings.ReplaceAll(s, "@", "")
		_, flagged := Validate(s, "123456")[FieldEmail]
		return flagged
	}
	assert.NoError(t, quick.Check(property, nil))
}

func TestValidate_PasswordFlaggedIffShort(t *testing.T) {
	property := func(p string) bool {
		_, flagged := Validate("a@b.co", p)[FieldPassword]
		return flagged == (len(utf16.Encode([]rune(p))) < MinPasswordLength)
	}
	assert.NoError(t, quick.Check(property, nil))
}

func TestValidate_ReturnsFreshMap(t *testing.T) {
	first := Validate("bad", "1")
	first[FieldEmail] = "changed"

	assert.Equal(t, MsgInvalidEmail, Validate("bad", "1")[FieldEmail])
}

func TestStatusAndOutcomeStrings(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", Status(42).String())

	assert.Equal(t, "invalid", OutcomeInvalid.String())
	assert.Equal(t, "ignored", OutcomeIgnored.String())
	assert.Equal(t, "succeeded", OutcomeSucceeded.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
