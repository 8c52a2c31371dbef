package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request models:
// last4 and phone.
func RegisterValidators(v *validator.Validate) error {
	validators := map[string]validator.Func{
		"last4": validateLast4,
		"phone": validatePhone,
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}

func validateLast4(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func validatePhone(fl validator.FieldLevel) bool {
	return ValidatePhone(fl.Field().String()) == nil
}

// ValidationMessage turns a failed validator tag into a user-facing message.
func ValidationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "last4":
		return "Enter the last 4 digits of the card."
	case "phone":
		return "Enter a valid phone number."
	case "datetime":
		return "Use the format YYYY-MM-DD."
	case "oneof":
		return "Must be one of: " + fe.Param() + "."
	}
	return "Invalid value."
}
