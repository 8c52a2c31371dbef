package models

import (
	"time"

	"github.com/jirani-app/app-jirani/internal/profile"
)

// ProfileDocument is the stored form of a traveller profile
type ProfileDocument struct {
	profile.Profile `bson:",inline"`

	UserID    string    `bson:"user_id" json:"user_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ProfileResponse bundles a profile with its derived view
type ProfileResponse struct {
	Profile       profile.Profile    `json:"profile"`
	Completion    profile.Completion `json:"completion"`
	ProgressWidth int                `json:"progress_width"`
	Initials      string             `json:"initials"`
	DisplayName   string             `json:"display_name"`
	DisplayEmail  string             `json:"display_email"`
	Rows          []profile.Row      `json:"rows"`
}

// NewProfileResponse derives the response view of p
func NewProfileResponse(p profile.Profile) ProfileResponse {
	completion := profile.ComputeCompletion(p)
	return ProfileResponse{
		Profile:       p,
		Completion:    completion,
		ProgressWidth: profile.ProgressWidth(completion),
		Initials:      profile.Initials(p.Identity().Name),
		DisplayName:   profile.DisplayName(p),
		DisplayEmail:  profile.DisplayEmail(p),
		Rows:          profile.Rows(p),
	}
}

// PassportRequest represents a passport addition
type PassportRequest struct {
	Number    string `json:"number" binding:"required"`
	ExpiresOn string `json:"expires_on" binding:"required,datetime=2006-01-02"`
}

// NationalIDRequest represents a national ID addition
type NationalIDRequest struct {
	Number string `json:"number" binding:"required"`
}

// PaymentMethodRequest represents a payment method addition
type PaymentMethodRequest struct {
	Brand string `json:"brand" binding:"required"`
	Last4 string `json:"last4" binding:"required,last4"`
}

// EmergencyContactRequest represents an emergency contact addition
type EmergencyContactRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required,phone"`
}

// IdentityRequest replaces the identity header of the profile. Empty values clear the field.
type IdentityRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone" binding:"omitempty,phone"`
}

// CompletionResponse reports profile completion and the progress bar width
type CompletionResponse struct {
	Completion    profile.Completion `json:"completion"`
	ProgressWidth int                `json:"progress_width"`
}
