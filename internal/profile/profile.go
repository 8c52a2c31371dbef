// Package profile models the traveller profile and how complete it is.
//
// Every mutator returns a copy of the profile with exactly one tracked field
// set; the input is never modified.
package profile

import "time"

// DateLayout is how document dates are entered and displayed.
const DateLayout = "2006-01-02"

// Profile is the traveller profile. A nil pointer means the field is missing.
type Profile struct {
	Name             *string           `json:"name,omitempty" bson:"name,omitempty"`
	Email            *string           `json:"email,omitempty" bson:"email,omitempty"`
	Phone            *string           `json:"phone,omitempty" bson:"phone,omitempty"`
	Passport         *Passport         `json:"passport,omitempty" bson:"passport,omitempty"`
	NationalID       *NationalID       `json:"nationalId,omitempty" bson:"nationalId,omitempty"`
	Payment          *PaymentMethod    `json:"payment,omitempty" bson:"payment,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergencyContact,omitempty" bson:"emergencyContact,omitempty"`
}

type Passport struct {
	Number    string    `json:"number" bson:"number"`
	ExpiresOn time.Time `json:"expires_on" bson:"expires_on"`
}

type NationalID struct {
	Number string `json:"number" bson:"number"`
}

// PaymentMethod holds only what is needed to recognise a card.
type PaymentMethod struct {
	Brand string `json:"brand" bson:"brand"`
	Last4 string `json:"last4" bson:"last4"`
}

type EmergencyContact struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
}

// Field names one of the tracked profile fields. The value doubles as the
// JSON and BSON key of the field.
type Field string

const (
	FieldName             Field = "name"
	FieldEmail            Field = "email"
	FieldPhone            Field = "phone"
	FieldPassport         Field = "passport"
	FieldNationalID       Field = "nationalId"
	FieldPayment          Field = "payment"
	FieldEmergencyContact Field = "emergencyContact"
)

// Fields lists the tracked fields in display order.
var Fields = []Field{
	FieldName,
	FieldEmail,
	FieldPhone,
	FieldPassport,
	FieldNationalID,
	FieldPayment,
	FieldEmergencyContact,
}

// ParseField maps a request value to a tracked field.
func ParseField(s string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Has is the presence predicate of a single field.
func (p Profile) Has(f Field) bool {
	switch f {
	case FieldName:
		return present(p.Name)
	case FieldEmail:
		return present(p.Email)
	case FieldPhone:
		return present(p.Phone)
	case FieldPassport:
		return p.Passport != nil
	case FieldNationalID:
		return p.NationalID != nil
	case FieldPayment:
		return p.Payment != nil
	case FieldEmergencyContact:
		return p.EmergencyContact != nil
	}
	return false
}

// Value returns the stored value of f, or nil when it is missing.
func (p Profile) Value(f Field) interface{} {
	if !p.Has(f) {
		return nil
	}
	switch f {
	case FieldName:
		return *p.Name
	case FieldEmail:
		return *p.Email
	case FieldPhone:
		return *p.Phone
	case FieldPassport:
		return *p.Passport
	case FieldNationalID:
		return *p.NationalID
	case FieldPayment:
		return *p.Payment
	case FieldEmergencyContact:
		return *p.EmergencyContact
	}
	return nil
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func strPtr(s string) *string {
	return &s
}
