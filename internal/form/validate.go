// Package form implements the credential form model shared by the sign-in and
// sign-up screens: local validation, the busy/idle submission lifecycle around
// an account operation, and the user-facing notices it produces.
package form

import (
	"regexp"
	"unicode/utf16"
)

// Field names a validated input.
type Field string

const (
	FieldEmail    Field = "email"
	FieldPassword Field = "password"
)

// MinPasswordLength is the shortest accepted password, in UTF-16 code units
// so that both app clients agree on the count.
const MinPasswordLength = 6

const (
	MsgInvalidEmail  = "Enter a valid email address."
	MsgShortPassword = "Password must be at least 6 characters."
)

// emailPattern matches x@y.z anywhere in the input.
var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// FieldErrors maps each failing field to its message. An empty map means valid.
type FieldErrors map[Field]string

// Valid reports whether no field failed.
func (e FieldErrors) Valid() bool { return len(e) == 0 }

// ValidEmail applies the form's email rule.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Validate checks the credentials and returns a fresh error map.
func Validate(email, password string) FieldErrors {
	errs := FieldErrors{}
	if !ValidEmail(email) {
		errs[FieldEmail] = MsgInvalidEmail
	}
	if passwordLength(password) < MinPasswordLength {
		errs[FieldPassword] = MsgShortPassword
	}
	return errs
}

// passwordLength counts UTF-16 code units. Characters outside the basic
// multilingual plane count twice.
func passwordLength(password string) int {
	n := 0
	for _, r := range password {
		n += utf16.RuneLen(r)
	}
	return n
}
