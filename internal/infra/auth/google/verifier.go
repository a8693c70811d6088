// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"log/slog"

	"passport/config"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// ProviderName identifies Google as the delegated identity provider.
const ProviderName = "google"

type validateFunc func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// Verifier checks ID tokens against Google's published keys and the
// configured client ID.
type Verifier struct {
	clientID string
	validate validateFunc
	logger   *slog.Logger
}

// NewVerifier creates a Verifier bound to the configured OAuth client, or
// returns nil when Google sign-in is not configured.
func NewVerifier(cfg *config.Config, logger *slog.Logger) service.IDTokenVerifier {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil
	}

	return newVerifier(cfg.GoogleOAuth.ClientID, idtoken.Validate, logger)
}

func newVerifier(clientID string, validate validateFunc, logger *slog.Logger) *Verifier {
	return &Verifier{
		clientID: clientID,
		validate: validate,
		logger:   logger,
	}
}

// VerifyIDToken implements service.IDTokenVerifier.
func (v *Verifier) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	if idToken == "" {
		return nil, errors.New("empty ID token")
	}

	payload, err := v.validate(ctx, idToken, v.clientID)
	if err != nil {
		v.logger.Debug("Google ID token rejected", slog.Any("error", err))

		return nil, errors.Wrap(err, "invalid ID token")
	}

	user := &service.OAuthUser{
		ID:            payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		Name:          claimString(payload.Claims, "name"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
		Audience:      payload.Audience,
		ExtraData: map[string]any{
			"given_name":  claimString(payload.Claims, "given_name"),
			"family_name": claimString(payload.Claims, "family_name"),
			"hd":          claimString(payload.Claims, "hd"),
		},
	}

	v.logger.Debug("Google ID token verified",
		slog.String("sub", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Provider implements service.IDTokenVerifier.
func (v *Verifier) Provider() string {
	return ProviderName
}

func claimString(claims map[string]any, key string) string {
	s, _ := claims[key].(string)

	return s
}

func claimBool(claims map[string]any, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
