package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is assumed for numbers entered without a country code.
const DefaultPhoneRegion = "RW"

// ErrInvalidPhone is returned for numbers libphonenumber rejects.
var ErrInvalidPhone = errors.New("invalid phone number")

// PhoneComponents represents the parsed components of a phone number
type PhoneComponents struct {
	CountryCode    string `json:"country_code"`
	NationalNumber string `json:"national_number"`
	Region         string `json:"region"`
	E164           string `json:"e164"`
	International  string `json:"international"`
}

// ParsePhoneNumber parses a phone number string and returns its components.
// Numbers without a leading + are read in region (DefaultPhoneRegion if empty).
func ParsePhoneNumber(phoneString, region string) (*PhoneComponents, error) {
	cleanPhone := strings.TrimSpace(phoneString)
	if cleanPhone == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPhone)
	}
	if region == "" {
		region = DefaultPhoneRegion
	}

	num, err := phonenumbers.Parse(cleanPhone, region)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPhone, phoneString)
	}

	return &PhoneComponents{
		CountryCode:    fmt.Sprintf("%d", num.GetCountryCode()),
		NationalNumber: phonenumbers.GetNationalSignificantNumber(num),
		Region:         phonenumbers.GetRegionCodeForNumber(num),
		E164:           phonenumbers.Format(num, phonenumbers.E164),
		International:  phonenumbers.Format(num, phonenumbers.INTERNATIONAL),
	}, nil
}

// ValidatePhone reports whether phoneString is a dialable number.
func ValidatePhone(phoneString string) error {
	_, err := ParsePhoneNumber(phoneString, "")
	return err
}
