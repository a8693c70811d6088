// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/registry"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// loginState names the steps of a login attempt for the debug trail.
type loginState string

const (
	stateReceived           loginState = "RECEIVED"
	stateUserResolved       loginState = "USER_RESOLVED"
	stateCredentialMatched  loginState = "CREDENTIAL_MATCHED"
	stateSessionEstablished loginState = "SESSION_ESTABLISHED"
	stateUserNotFound       loginState = "USER_NOT_FOUND"
	stateCredentialRejected loginState = "CREDENTIAL_REJECTED"
)

// authService implements the AuthUsecase interface.
type authService struct {
	handlers  *registry.Registry[entity.Scheme, service.SchemeHandler]
	providers *registry.Registry[entity.Scheme, service.PreAuthProvider]
	templates map[entity.Scheme]config.CodeChannel
	users     repository.UserRepository
	sender    service.MessageSender
	otp       service.OTPService
	qrcode    service.QRCodeService
	now       func() time.Time
	logger    *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Config  *config.Config
	Users   repository.UserRepository
	Sender  service.MessageSender
	OTP     service.OTPService
	QRCode  service.QRCodeService
	Schemes []SchemeRegistration `group:"schemes"`
	Logger  *slog.Logger
}

// NewAuthService builds the scheme registries from the registered schemes.
// Schemes listed in auth.schemes must all be registered.
func NewAuthService(params AuthServiceParams) (usecase.AuthUsecase, error) {
	enabled, err := enabledSchemes(params.Config.Auth.Schemes)
	if err != nil {
		return nil, err
	}

	srv := &authService{
		handlers:  registry.New[entity.Scheme, service.SchemeHandler]("scheme handler"),
		providers: registry.New[entity.Scheme, service.PreAuthProvider]("code provider"),
		templates: map[entity.Scheme]config.CodeChannel{
			entity.SchemeSMS:   params.Config.Captcha.SMS,
			entity.SchemeEmail: params.Config.Captcha.Email,
		},
		users:  params.Users,
		sender: params.Sender,
		otp:    params.OTP,
		qrcode: params.QRCode,
		now:    time.Now,
		logger: params.Logger,
	}

	for _, reg := range params.Schemes {
		if reg.Handler == nil {
			params.Logger.Debug("Scheme not configured", slog.String("scheme", reg.Scheme.String()))

			continue
		}
		if enabled != nil && !enabled[reg.Scheme] {
			continue
		}
		if !srv.handlers.Register(reg.Scheme, reg.Handler) {
			params.Logger.Warn("Duplicate scheme registration ignored", slog.String("scheme", reg.Scheme.String()))

			continue
		}
		if reg.Provider != nil {
			srv.providers.Register(reg.Scheme, reg.Provider)
		}
	}

	for scheme := range enabled {
		if err := srv.handlers.Require(scheme); err != nil {
			return nil, err
		}
	}

	var unavailable []entity.Scheme
	for _, scheme := range entity.Schemes() {
		if !srv.handlers.Has(scheme) {
			unavailable = append(unavailable, scheme)
		}
	}

	params.Logger.Info("Login schemes registered",
		slog.Any("schemes", srv.handlers.Keys()),
		slog.Any("unavailable", unavailable),
	)

	return srv, nil
}

// enabledSchemes parses auth.schemes; nil means every registered scheme.
func enabledSchemes(names []string) (map[entity.Scheme]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}

	enabled := make(map[entity.Scheme]bool, len(names))
	for _, name := range names {
		scheme, ok := entity.ParseScheme(name)
		if !ok {
			return nil, errors.Wrapf(domainerrors.ErrConfigurationMissing, "unknown scheme %q in auth.schemes", name)
		}
		enabled[scheme] = true
	}

	return enabled, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *authService) trace(ctx context.Context, state loginState, req *entity.LoginRequest) {
	srv.log(ctx).Debug("Login state",
		slog.String("state", string(state)),
		slog.String("scheme", req.Scheme().String()),
		slog.String("identifier", req.Identifier),
	)
}

// Login sequences user resolution, credential matching and session creation.
func (srv *authService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.Session, error) {
	srv.trace(ctx, stateReceived, req)

	handler, err := srv.handlers.Lookup(req.Scheme())
	if err != nil {
		srv.log(ctx).Error("Login for unregistered scheme", slog.String("scheme", req.Scheme().String()))

		return nil, err
	}

	user, err := handler.LoadUser(ctx, req)
	if err != nil {
		if domainerrors.IsAuthFailure(err) {
			return nil, srv.reject(ctx, req, err)
		}

		return nil, errors.Wrap(err, "failed to resolve user")
	}
	srv.trace(ctx, stateUserResolved, req)

	matched, err := handler.IsMatched(ctx, req, user)
	if err != nil {
		if domainerrors.IsAuthFailure(err) {
			return nil, srv.reject(ctx, req, err)
		}

		return nil, errors.Wrap(err, "failed to match credential")
	}
	if !matched {
		return nil, srv.reject(ctx, req, domainerrors.ErrCredentialMismatch)
	}
	srv.trace(ctx, stateCredentialMatched, req)

	session := entity.NewSession(user, req, srv.now())
	srv.trace(ctx, stateSessionEstablished, req)
	srv.log(ctx).Info("Login succeeded",
		slog.String("scheme", session.Scheme.String()),
		slog.String("user_id", session.Subject()),
	)

	return session, nil
}

// reject logs a failed attempt with its audit data and wraps it into an AuthError.
func (srv *authService) reject(ctx context.Context, req *entity.LoginRequest, cause error) error {
	base, state := domainerrors.ErrCredentialMismatch, stateCredentialRejected
	if errors.Is(cause, domainerrors.ErrUserNotFound) {
		base = domainerrors.ErrUserNotFound
		state = stateUserNotFound
	}

	srv.log(ctx).Warn("Login rejected",
		slog.String("state", string(state)),
		slog.String("scheme", req.Scheme().String()),
		slog.String("identifier", req.Identifier),
		slog.Any("error", cause),
	)

	return domainerrors.NewAuthError(base, req.Scheme(), req.Identifier)
}

// Authorize passes through to the scheme's code provider.
func (srv *authService) Authorize(ctx context.Context, req *entity.LoginRequest, ttl time.Duration) (string, error) {
	provider, err := srv.providers.Lookup(req.Scheme())
	if err != nil {
		return "", err
	}

	return provider.Authorize(ctx, req.Identifier, ttl)
}

// SendCode issues a code and delivers it to the request identifier.
func (srv *authService) SendCode(ctx context.Context, req *entity.LoginRequest) (*usecase.SendCodeOutput, error) {
	code, err := srv.Authorize(ctx, req, 0)
	if err != nil {
		return nil, err
	}

	channel := srv.templates[req.Scheme()]
	receipt, err := srv.sender.Send(ctx, &service.Message{
		Template: channel.Template,
		Params: map[string]string{
			"code": code,
			"ttl":  strconv.Itoa(int(channel.TTL.Seconds())),
		},
		Recipients: []string{req.Identifier},
	})
	if err != nil {
		srv.log(ctx).Error("Failed to deliver code",
			slog.String("scheme", req.Scheme().String()),
			slog.String("identifier", req.Identifier),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(domainerrors.ErrDeliveryFailed, err.Error())
	}

	return &usecase.SendCodeOutput{
		Scheme:    req.Scheme(),
		Receipt:   receipt.ID,
		Provider:  receipt.Provider,
		ExpiresIn: channel.TTL,
	}, nil
}

// LoadLogged resolves the user without matching the credential.
func (srv *authService) LoadLogged(ctx context.Context, req *entity.LoginRequest) (*entity.Session, error) {
	handler, err := srv.handlers.Lookup(req.Scheme())
	if err != nil {
		return nil, err
	}

	user, err := handler.LoadUser(ctx, req)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return entity.NewSession(user, req, srv.now()), nil
}

// EnrollTOTP generates a new secret for subject and stores it on the user.
func (srv *authService) EnrollTOTP(ctx context.Context, subject string) (*usecase.TOTPEnrollment, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("subject is not a user id")
	}

	user, err := findUser(ctx, func(ctx context.Context, _ string) (*entity.User, error) {
		return srv.users.FindByID(ctx, id)
	}, subject)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, err.Error())
	}

	account := user.Email
	if account == "" {
		account = user.Username
	}

	key, err := srv.otp.Generate(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate TOTP secret")
	}

	png, err := srv.qrcode.Encode(key.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render TOTP QR code")
	}

	if err := srv.users.SetAttribute(ctx, user.ID, entity.ExtensionTOTPSecret, key.Secret); err != nil {
		return nil, errors.Wrap(err, "failed to store TOTP secret")
	}

	srv.log(ctx).Info("TOTP enrolled", slog.String("user_id", subject))

	return &usecase.TOTPEnrollment{Secret: key.Secret, URL: key.URL, QRCode: png}, nil
}
