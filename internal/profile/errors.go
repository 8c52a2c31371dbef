package profile

import "errors"

var (
	ErrPassportNumberRequired = errors.New("passport number is required")
	ErrPassportExpired        = errors.New("passport has expired")
	ErrNationalIDRequired     = errors.New("national ID number is required")
	ErrPaymentBrandRequired   = errors.New("card brand is required")
	ErrInvalidLast4           = errors.New("last4 must be exactly 4 digits")
	ErrContactNameRequired    = errors.New("emergency contact name is required")
	ErrContactPhoneRequired   = errors.New("emergency contact phone is required")
	ErrInvalidPhone           = errors.New("phone number is not valid")
	ErrInvalidEmail           = errors.New("email address is not valid")
	ErrUnknownField           = errors.New("unknown profile field")
	ErrQuickAddNotSupported   = errors.New("field has no quick-add action")
)
