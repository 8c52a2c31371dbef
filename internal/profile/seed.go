package profile

import "time"

// MockProfile is the demo seed: identity set, documents and payment missing.
func MockProfile() Profile {
	return Profile{
		Name:  strPtr("Alex N."),
		Email: strPtr("alex@example.com"),
		Phone: strPtr("+250 788 123 456"),
	}
}

// Placeholder values used by QuickAdd.
var (
	QuickPassportNumber = "PN1234567"
	QuickPassportExpiry = time.Date(2030, time.August, 14, 0, 0, 0, 0, time.UTC)
	QuickNationalID     = "1199-0000-0000-0000"
	QuickPaymentBrand   = "VISA"
	QuickPaymentLast4   = "4242"
	QuickContactName    = "Patricia"
	QuickContactPhone   = "+250 789 000 111"
)

// QuickAdd fills f with its placeholder value through the regular mutator.
// Only the document, payment and contact fields have one.
func QuickAdd(p Profile, f Field, now time.Time) (Profile, error) {
	switch f {
	case FieldPassport:
		return AddPassport(p, QuickPassportNumber, QuickPassportExpiry, now)
	case FieldNationalID:
		return AddNationalID(p, QuickNationalID)
	case FieldPayment:
		return AddPaymentMethod(p, QuickPaymentBrand, QuickPaymentLast4)
	case FieldEmergencyContact:
		return AddEmergencyContact(p, QuickContactName, QuickContactPhone)
	case FieldName, FieldEmail, FieldPhone:
		return p, ErrQuickAddNotSupported
	}
	return p, ErrUnknownField
}

// QuickAddAction maps a row action to the field it fills.
func QuickAddAction(a Action) (Field, bool) {
	switch a {
	case ActionAddPassport:
		return FieldPassport, true
	case ActionAddNationalID:
		return FieldNationalID, true
	case ActionAddPaymentMethod:
		return FieldPayment, true
	case ActionAddEmergencyContact:
		return FieldEmergencyContact, true
	}
	return "", false
}
