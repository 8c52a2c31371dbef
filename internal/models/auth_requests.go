package models

// CredentialsRequest represents an email and password sign-in or sign-up
type CredentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ProviderTokenRequest carries an access token obtained by a native provider SDK
type ProviderTokenRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// AuthStartResponse is returned when starting a redirect based provider flow
type AuthStartResponse struct {
	Provider string `json:"provider"`
	AuthURL  string `json:"auth_url"`
	State    string `json:"state"`
}

// CredentialsValidationResponse reports field errors for a credentials form
type CredentialsValidationResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// PhoneValidationRequest represents a phone number validation request
type PhoneValidationRequest struct {
	Phone  string `json:"phone" binding:"required"`
	Region string `json:"region,omitempty"`
}

// PhoneValidationResponse represents a phone number validation response
type PhoneValidationResponse struct {
	Valid         bool   `json:"valid"`
	E164          string `json:"e164,omitempty"`
	International string `json:"international,omitempty"`
	Region        string `json:"region,omitempty"`
	Error         string `json:"error,omitempty"`
}
