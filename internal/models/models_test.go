package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jirani-app/app-jirani/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestErrorConstants(t *testing.T) {
	errs := []error{
		ErrUserNotFound,
		ErrEmailTaken,
		ErrInvalidCredentials,
		ErrSessionRevoked,
		ErrInvalidToken,
		ErrProviderNotConfigured,
		ErrInvalidOAuthState,
		ErrProviderEmailMissing,
		ErrProfileNotFound,
	}

	seen := map[string]bool{}
	for _, err := range errs {
		require.Error(t, err)
		assert.False(t, seen[err.Error()], "duplicate message %q", err.Error())
		seen[err.Error()] = true
	}
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	user := User{ID: "u1", Email: "alex@example.com", PasswordHash: "$2a$10$secret"}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.True(t, user.HasPassword())
	assert.False(t, User{}.HasPassword())
}

func TestUser_IdentityFor(t *testing.T) {
	user := User{Identities: []Identity{{Provider: "google", Subject: "g-1"}}}

	id, ok := user.IdentityFor("google")
	require.True(t, ok)
	assert.Equal(t, "g-1", id.Subject)

	_, ok = user.IdentityFor("facebook")
	assert.False(t, ok)
}

func TestSessionClaims_JSON(t *testing.T) {
	claims := SessionClaims{
		Email: "alex@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:      "jti-1",
			Subject: "u1",
		},
	}

	data, err := json.Marshal(claims)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "jti-1", raw["jti"])
	assert.Equal(t, "u1", raw["sub"])
	assert.Equal(t, "alex@example.com", raw["email"])
	assert.NotContains(t, raw, "provider")
}

func TestProfileDocument_InlinesProfile(t *testing.T) {
	name := "Alex N."
	doc := ProfileDocument{
		Profile:   profile.Profile{Name: &name, NationalID: &profile.NationalID{Number: "1199"}},
		UserID:    "u1",
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	data, err := bson.Marshal(doc)
	require.NoError(t, err)

	var raw bson.M
	require.NoError(t, bson.Unmarshal(data, &raw))
	assert.Equal(t, "Alex N.", raw["name"])
	assert.Equal(t, "u1", raw["user_id"])
	assert.Contains(t, raw, "nationalId")
	assert.NotContains(t, raw, "passport")
}

func TestNewProfileResponse(t *testing.T) {
	resp := NewProfileResponse(profile.MockProfile())

	assert.Equal(t, 3, resp.Completion.Done)
	assert.Equal(t, 7, resp.Completion.Total)
	assert.Equal(t, 43, resp.Completion.Percent)
	assert.Equal(t, 43, resp.ProgressWidth)
	assert.Equal(t, "AN", resp.Initials)
	assert.Equal(t, "Alex N.", resp.DisplayName)
	assert.Len(t, resp.Rows, len(profile.Fields))

	empty := NewProfileResponse(profile.Profile{})
	assert.Equal(t, 0, empty.Completion.Percent)
	assert.Equal(t, profile.MinProgressWidth, empty.ProgressWidth)
	assert.Equal(t, "Add your name", empty.DisplayName)
}
