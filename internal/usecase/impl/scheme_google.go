package impl

import (
	"context"
	"slices"
	"strings"

	"passport/config"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// googleHandler logs users in with a Google ID token. The verified email is
// the identifier; accounts are never created here.
type googleHandler struct {
	users        repository.UserRepository
	verifier     service.IDTokenVerifier
	redirectURIs []string
}

// GoogleSchemeParams holds dependencies for the GOOGLE scheme, injected by Fx.
type GoogleSchemeParams struct {
	fx.In

	Config   *config.Config
	Users    repository.UserRepository
	Verifier service.IDTokenVerifier `optional:"true"`
}

// NewGoogleScheme registers the GOOGLE scheme when a client ID is configured.
func NewGoogleScheme(params GoogleSchemeParams) SchemeRegistration {
	registration := SchemeRegistration{Scheme: entity.SchemeGoogle}
	if params.Verifier != nil {
		var redirectURIs []string
		if params.Config.GoogleOAuth != nil {
			redirectURIs = params.Config.GoogleOAuth.RedirectURIs
		}
		registration.Handler = NewGoogleHandler(params.Users, params.Verifier, redirectURIs)
	}

	return registration
}

// NewGoogleHandler creates the GOOGLE handler. An empty redirectURIs accepts
// any redirect URI.
func NewGoogleHandler(users repository.UserRepository, verifier service.IDTokenVerifier, redirectURIs []string) service.SchemeHandler {
	return &googleHandler{users: users, verifier: verifier, redirectURIs: redirectURIs}
}

func (h *googleHandler) Scheme() entity.Scheme {
	return entity.SchemeGoogle
}

func (h *googleHandler) verify(ctx context.Context, req *entity.LoginRequest) (*service.OAuthUser, error) {
	if len(h.redirectURIs) > 0 && !slices.Contains(h.redirectURIs, req.RedirectURI) {
		return nil, domainerrors.ErrCredentialMismatch.WrapMessage("redirect URI not allowed")
	}

	oauthUser, err := h.verifier.VerifyIDToken(ctx, req.Credential)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrCredentialMismatch, err.Error())
	}
	if !oauthUser.EmailVerified || oauthUser.Email == "" {
		return nil, domainerrors.ErrCredentialMismatch.WrapMessage("email not verified by " + h.verifier.Provider())
	}

	return oauthUser, nil
}

// LoadUser verifies the ID token to learn who is logging in, then loads the
// account registered under the verified email.
func (h *googleHandler) LoadUser(ctx context.Context, req *entity.LoginRequest) (*entity.User, error) {
	if err := requireScheme(req, entity.SchemeGoogle); err != nil {
		return nil, err
	}

	oauthUser, err := h.verify(ctx, req)
	if err != nil {
		return nil, err
	}
	req.Canonicalize(strings.ToLower(oauthUser.Email))

	return findUser(ctx, h.users.FindByEmail, req.Identifier)
}

func (h *googleHandler) IsMatched(ctx context.Context, req *entity.LoginRequest, user *entity.User) (bool, error) {
	if err := requireScheme(req, entity.SchemeGoogle); err != nil {
		return false, err
	}

	oauthUser, err := h.verify(ctx, req)
	if err != nil {
		return false, nil //nolint:nilerr
	}

	return strings.EqualFold(oauthUser.Email, user.Email), nil
}
