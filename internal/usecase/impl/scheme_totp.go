package impl

import (
	"context"
	"log/slog"
	"time"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const totpPeriod = 30 * time.Second

// totpHandler logs users in with a passcode from an enrolled authenticator
// app. Each accepted passcode is claimed per user for the validation window,
// so it is accepted at most once.
type totpHandler struct {
	users    repository.UserRepository
	otp      service.OTPService
	captchas repository.CaptchaRepository
	window   time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// TOTPSchemeParams holds dependencies for the TOTP scheme, injected by Fx.
type TOTPSchemeParams struct {
	fx.In

	Config   *config.Config
	Users    repository.UserRepository
	OTP      service.OTPService
	Captchas repository.CaptchaRepository
	Logger   *slog.Logger
}

// NewTOTPScheme registers the TOTP scheme.
func NewTOTPScheme(params TOTPSchemeParams) SchemeRegistration {
	return SchemeRegistration{
		Scheme:  entity.SchemeTOTP,
		Handler: NewTOTPHandler(params.Users, params.OTP, params.Captchas, params.Config.TOTP.Skew, time.Now, params.Logger),
	}
}

// NewTOTPHandler creates the TOTP handler.
func NewTOTPHandler(users repository.UserRepository, otp service.OTPService, captchas repository.CaptchaRepository, skew uint, now func() time.Time, logger *slog.Logger) service.SchemeHandler {
	return &totpHandler{
		users:    users,
		otp:      otp,
		captchas: captchas,
		window:   time.Duration(2*skew+1) * totpPeriod,
		now:      now,
		logger:   logger,
	}
}

func (h *totpHandler) Scheme() entity.Scheme {
	return entity.SchemeTOTP
}

func (h *totpHandler) LoadUser(ctx context.Context, req *entity.LoginRequest) (*entity.User, error) {
	if err := requireScheme(req, entity.SchemeTOTP); err != nil {
		return nil, err
	}

	return findByLogin(ctx, h.users, req.Identifier)
}

func (h *totpHandler) IsMatched(ctx context.Context, req *entity.LoginRequest, user *entity.User) (bool, error) {
	if err := requireScheme(req, entity.SchemeTOTP); err != nil {
		return false, err
	}

	secret := user.Attr(entity.ExtensionTOTPSecret)
	if secret == "" {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Debug("TOTP login for a user without enrollment",
			slog.String("user_id", user.ID.String()),
		)

		return false, nil
	}

	now := h.now()
	if !h.otp.Validate(req.Credential, secret, now) {
		return false, nil
	}

	entry := &entity.CaptchaEntry{Code: req.Credential, IssuedAt: now, TTL: h.window}
	claimed, err := h.captchas.SaveIfAbsent(ctx, entity.SchemeTOTP, user.ID.String()+":"+req.Credential, entry)
	if err != nil {
		return false, errors.Wrap(err, "failed to claim passcode")
	}
	if !claimed {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Warn("TOTP passcode replayed",
			slog.String("user_id", user.ID.String()),
		)
	}

	return claimed, nil
}
