package profile

import (
	"strings"
	"unicode"
)

// Row statuses and indicators.
const (
	StatusAdded   = "Added"
	StatusMissing = "Missing"

	IndicatorPositive = "positive"
	IndicatorWarning  = "warning"
)

// Action is what tapping a row does.
type Action string

const (
	ActionNone                Action = ""
	ActionAddPassport         Action = "add_passport"
	ActionAddNationalID       Action = "add_national_id"
	ActionAddPaymentMethod    Action = "add_payment_method"
	ActionAddEmergencyContact Action = "add_emergency_contact"
	ActionEditProfile         Action = "edit_profile"
)

// Row is the rendered state of one tracked field.
type Row struct {
	Field     Field  `json:"field"`
	Section   string `json:"section"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	Added     bool   `json:"added"`
	Status    string `json:"status"`
	Indicator string `json:"indicator"`
	// CTA and Action are set only while the field is missing.
	CTA    string `json:"cta,omitempty"`
	Action Action `json:"action,omitempty"`
}

type rowSpec struct {
	section string
	title   string
	empty   string
	cta     string
	action  Action
	summary func(Profile) string
}

var rowSpecs = map[Field]rowSpec{
	FieldName: {
		section: "Account",
		title:   "Name",
		empty:   "Add your name",
		cta:     "Add Name",
		action:  ActionEditProfile,
		summary: func(p Profile) string { return *p.Name },
	},
	FieldEmail: {
		section: "Contact & Emergency",
		title:   "Email",
		empty:   "Add an email",
		cta:     "Add Email",
		action:  ActionEditProfile,
		summary: func(p Profile) string { return *p.Email },
	},
	FieldPhone: {
		section: "Contact & Emergency",
		title:   "Phone",
		empty:   "Add a phone number",
		cta:     "Add Phone",
		action:  ActionEditProfile,
		summary: func(p Profile) string { return *p.Phone },
	},
	FieldPassport: {
		section: "Identity & Travel Documents",
		title:   "Passport",
		empty:   "Required to book international flights",
		cta:     "Add Passport",
		action:  ActionAddPassport,
		summary: func(p Profile) string {
			return Mask(p.Passport.Number) + " · Expires " + p.Passport.ExpiresOn.Format(DateLayout)
		},
	},
	FieldNationalID: {
		section: "Identity & Travel Documents",
		title:   "National ID",
		empty:   "Required for local bookings & KYC",
		cta:     "Add National ID",
		action:  ActionAddNationalID,
		summary: func(p Profile) string { return Mask(p.NationalID.Number) },
	},
	FieldPayment: {
		section: "Payment",
		title:   "Primary Payment Method",
		empty:   "Required to confirm bookings",
		cta:     "Add Payment Method",
		action:  ActionAddPaymentMethod,
		summary: func(p Profile) string { return p.Payment.Brand + " · •••• " + p.Payment.Last4 },
	},
	FieldEmergencyContact: {
		section: "Contact & Emergency",
		title:   "Emergency Contact",
		empty:   "Recommended for travel safety",
		cta:     "Add Contact",
		action:  ActionAddEmergencyContact,
		summary: func(p Profile) string { return p.EmergencyContact.Name + " · " + p.EmergencyContact.Phone },
	},
}

// Rows renders every tracked field in display order.
func Rows(p Profile) []Row {
	rows := make([]Row, 0, len(Fields))
	for _, f := range Fields {
		rows = append(rows, RowFor(p, f))
	}
	return rows
}

// RowFor renders a single field: "Added" with a positive indicator when
// present, otherwise "Missing" with a warning and the action that fills it.
func RowFor(p Profile, f Field) Row {
	spec := rowSpecs[f]
	row := Row{Field: f, Section: spec.section, Title: spec.title}
	if p.Has(f) {
		row.Added = true
		row.Status = StatusAdded
		row.Indicator = IndicatorPositive
		row.Subtitle = spec.summary(p)
		return row
	}
	row.Status = StatusMissing
	row.Indicator = IndicatorWarning
	row.Subtitle = spec.empty
	row.CTA = spec.cta
	row.Action = spec.action
	return row
}

// Mask hides all but the last four characters of a document number.
func Mask(number string) string {
	r := []rune(number)
	if len(r) > 4 {
		r = r[len(r)-4:]
	}
	return "•••• " + string(r)
}

// Initials returns up to two upper-cased initials of name, falling back to
// "Guest User".
func Initials(name string) string {
	if strings.TrimSpace(name) == "" {
		name = "Guest User"
	}
	var b strings.Builder
	n := 0
	for _, part := range strings.Fields(name) {
		r := []rune(part)[0]
		b.WriteRune(unicode.ToUpper(r))
		n++
		if n == 2 {
			break
		}
	}
	return b.String()
}

// DisplayName is the header title, with a prompt when the name is missing.
func DisplayName(p Profile) string {
	if p.Has(FieldName) {
		return *p.Name
	}
	return "Add your name"
}

// DisplayEmail is the header subtitle, with a prompt when the email is missing.
func DisplayEmail(p Profile) string {
	if p.Has(FieldEmail) {
		return *p.Email
	}
	return "Add email"
}
