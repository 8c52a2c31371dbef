package models

import "time"

// Identity links a user to an account at an external sign-in provider.
type Identity struct {
	Provider string `bson:"provider" json:"provider"`
	Subject  string `bson:"subject" json:"subject"`
	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	// EmailVerified is set when the provider vouches for Email. Not stored.
	EmailVerified bool `bson:"-" json:"-"`
}

// User represents an account in the users collection
type User struct {
	ID           string     `bson:"_id" json:"id"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"password_hash,omitempty" json:"-"`
	Identities   []Identity `bson:"identities,omitempty" json:"identities,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
	LastSignInAt *time.Time `bson:"last_sign_in_at,omitempty" json:"last_sign_in_at,omitempty"`
}

// HasPassword reports whether the user can sign in with email and password.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

// IdentityFor returns the linked identity for provider, if any.
func (u User) IdentityFor(provider string) (Identity, bool) {
	for _, id := range u.Identities {
		if id.Provider == provider {
			return id, true
		}
	}
	return Identity{}, false
}
