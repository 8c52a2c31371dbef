package profile

import (
	"fmt"
	"strings"
	"time"

	"github.com/jirani-app/app-jirani/internal/form"
	"github.com/jirani-app/app-jirani/internal/utils"
)

// AddPassport returns a copy of p with Passport set. expiresOn must not be
// before the calendar day of now.
func AddPassport(p Profile, number string, expiresOn, now time.Time) (Profile, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return p, ErrPassportNumberRequired
	}
	if expiresOn.IsZero() || day(expiresOn).Before(day(now)) {
		return p, ErrPassportExpired
	}
	out := p
	out.Passport = &Passport{Number: number, ExpiresOn: day(expiresOn)}
	return out, nil
}

// AddNationalID returns a copy of p with NationalID set.
func AddNationalID(p Profile, number string) (Profile, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return p, ErrNationalIDRequired
	}
	out := p
	out.NationalID = &NationalID{Number: number}
	return out, nil
}

// AddPaymentMethod returns a copy of p with Payment set. Brand is upper-cased.
func AddPaymentMethod(p Profile, brand, last4 string) (Profile, error) {
	brand = strings.ToUpper(strings.TrimSpace(brand))
	if brand == "" {
		return p, ErrPaymentBrandRequired
	}
	if !ValidLast4(last4) {
		return p, ErrInvalidLast4
	}
	out := p
	out.Payment = &PaymentMethod{Brand: brand, Last4: last4}
	return out, nil
}

// ValidLast4 reports whether s is exactly four ASCII digits.
func ValidLast4(s string) bool {
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

// AddEmergencyContact returns a copy of p with EmergencyContact set. The
// phone is kept as entered once it parses as a valid number.
func AddEmergencyContact(p Profile, name, phone string) (Profile, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return p, ErrContactNameRequired
	}
	if phone == "" {
		return p, ErrContactPhoneRequired
	}
	if err := utils.ValidatePhone(phone); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	out := p
	out.EmergencyContact = &EmergencyContact{Name: name, Phone: phone}
	return out, nil
}

// Identity is the editable header of the profile.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateIdentity returns a copy of p with the identity fields replaced. An
// empty value clears the field.
func UpdateIdentity(p Profile, id Identity) (Profile, error) {
	name := strings.TrimSpace(id.Name)
	email := strings.TrimSpace(id.Email)
	phone := strings.TrimSpace(id.Phone)

	if email != "" && !form.ValidEmail(email) {
		return p, ErrInvalidEmail
	}
	if phone != "" {
		if err := utils.ValidatePhone(phone); err != nil {
			return p, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
		}
	}

	out := p
	out.Name = optional(name)
	out.Email = optional(email)
	out.Phone = optional(phone)
	return out, nil
}

// Identity returns the identity fields of p, empty where missing.
func (p Profile) Identity() Identity {
	var id Identity
	if p.Name != nil {
		id.Name = *p.Name
	}
	if p.Email != nil {
		id.Email = *p.Email
	}
	if p.Phone != nil {
		id.Phone = *p.Phone
	}
	return id
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return strPtr(s)
}

func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
