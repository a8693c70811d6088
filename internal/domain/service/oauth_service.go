package service

import (
	"context"
)

// OAuthUser represents user information from OAuth providers
type OAuthUser struct {
	ID            string         // Provider-specific user ID (e.g., Google's 'sub' claim)
	Email         string         // User's email address
	Name          string         // User's display name
	EmailVerified bool           // Whether the email is verified by the provider
	Audience      string         // Client ID the token was issued to
	ExtraData     map[string]any // Additional provider-specific data
}

// IDTokenVerifier verifies ID tokens issued by a delegated identity provider.
type IDTokenVerifier interface {
	// VerifyIDToken verifies an OAuth ID token and returns user information
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)

	// Provider returns the provider name, e.g. "google".
	Provider() string
}
