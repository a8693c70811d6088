package impl

import (
	"context"
	"log/slog"
	"time"

	"passport/config"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"

	"go.uber.org/fx"
)

// codeHandler logs users in with a code delivered to their phone or mailbox.
type codeHandler struct {
	scheme   entity.Scheme
	users    repository.UserRepository
	provider service.PreAuthProvider
}

// CodeSchemeParams holds dependencies for the SMS and EMAIL schemes, injected by Fx.
type CodeSchemeParams struct {
	fx.In

	Config   *config.Config
	Users    repository.UserRepository
	Captchas repository.CaptchaRepository
	Logger   *slog.Logger
}

// NewSMSScheme registers the SMS scheme.
func NewSMSScheme(params CodeSchemeParams) SchemeRegistration {
	return newCodeScheme(entity.SchemeSMS, params.Config.Captcha.SMS, params)
}

// NewEmailScheme registers the EMAIL scheme.
func NewEmailScheme(params CodeSchemeParams) SchemeRegistration {
	return newCodeScheme(entity.SchemeEmail, params.Config.Captcha.Email, params)
}

func newCodeScheme(scheme entity.Scheme, channel config.CodeChannel, params CodeSchemeParams) SchemeRegistration {
	provider := NewCodeProvider(scheme, params.Captchas, CodePolicy{
		Length:         params.Config.Captcha.Length,
		TTL:            channel.TTL,
		ResendInterval: params.Config.Captcha.ResendInterval,
		ResendBurst:    params.Config.Captcha.ResendBurst,
	}, time.Now, params.Logger)

	return SchemeRegistration{
		Scheme:   scheme,
		Handler:  NewCodeHandler(scheme, params.Users, provider),
		Provider: provider,
	}
}

// NewCodeHandler creates the handler for a one-time code scheme.
func NewCodeHandler(scheme entity.Scheme, users repository.UserRepository, provider service.PreAuthProvider) service.SchemeHandler {
	return &codeHandler{scheme: scheme, users: users, provider: provider}
}

func (h *codeHandler) Scheme() entity.Scheme {
	return h.scheme
}

func (h *codeHandler) LoadUser(ctx context.Context, req *entity.LoginRequest) (*entity.User, error) {
	if err := requireScheme(req, h.scheme); err != nil {
		return nil, err
	}
	if h.scheme == entity.SchemeSMS {
		return findUser(ctx, h.users.FindByPhone, req.Identifier)
	}

	return findUser(ctx, h.users.FindByEmail, req.Identifier)
}

func (h *codeHandler) IsMatched(ctx context.Context, req *entity.LoginRequest, _ *entity.User) (bool, error) {
	return h.provider.IsMatched(ctx, req)
}
