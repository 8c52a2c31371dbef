package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardRequest struct {
	Last4 string `validate:"required,last4"`
	Phone string `validate:"omitempty,phone"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterValidators(v))
	return v
}

func TestRegisterValidators(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name    string
		req     cardRequest
		wantTag string
	}{
		{"valid", cardRequest{Last4: "4242", Phone: "+250 788 123 456"}, ""},
		{"short last4", cardRequest{Last4: "424"}, "last4"},
		{"letters in last4", cardRequest{Last4: "42a2"}, "last4"},
		{"bad phone", cardRequest{Last4: "4242", Phone: "12"}, "phone"},
		{"missing last4", cardRequest{}, "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
		})
	}
}

func TestValidationMessage(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(cardRequest{Last4: "1"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	assert.Equal(t, "Enter the last 4 digits of the card.", ValidationMessage(verrs[0]))
}
