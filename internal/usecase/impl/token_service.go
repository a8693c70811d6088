package impl

import (
	"context"
	"log/slog"
	"time"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenService implements the TokenUsecase interface.
type tokenService struct {
	builders      service.TokenBuilders
	rotation      *RefreshRotation
	refreshTokens repository.RefreshTokenRepository
	users         repository.UserRepository
	defaultType   entity.TokenType
	now           func() time.Time
	logger        *slog.Logger
}

// TokenServiceParams holds dependencies for TokenService, injected by Fx.
type TokenServiceParams struct {
	fx.In

	Config        *config.Config
	Builders      service.TokenBuilders
	RefreshTokens repository.RefreshTokenRepository
	Users         repository.UserRepository
	Logger        *slog.Logger
}

// NewTokenService is the constructor for tokenService.
func NewTokenService(params TokenServiceParams) usecase.TokenUsecase {
	return &tokenService{
		builders:      params.Builders,
		rotation:      NewRefreshRotation(params.RefreshTokens, params.Logger),
		refreshTokens: params.RefreshTokens,
		users:         params.Users,
		defaultType:   entity.TokenType(params.Config.Token.DefaultType),
		now:           time.Now,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *tokenService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Issue mints the token pair for a fresh session.
func (srv *tokenService) Issue(ctx context.Context, session *entity.Session, tokenType entity.TokenType) (*usecase.TokenOutput, error) {
	if session == nil || session.Subject() == "" {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("no session to issue tokens for")
	}
	if tokenType == "" {
		tokenType = srv.defaultType
	}

	builder, err := srv.builders.Builder(tokenType)
	if err != nil {
		return nil, err
	}

	access, err := builder.AccessOf(ctx, session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint access token")
	}

	out := srv.output(access)
	refresh, err := builder.RefreshOf(ctx, session)
	switch {
	case errors.Is(err, domainerrors.ErrRefreshUnsupported):
	case err != nil:
		srv.revokeAccess(ctx, builder, access)

		return nil, errors.Wrap(err, "failed to mint refresh token")
	default:
		out.RefreshToken = refresh.Token
	}

	srv.log(ctx).Debug("Tokens issued",
		slog.String("type", tokenType.String()),
		slog.String("subject", access.Subject),
		slog.Bool("refreshable", out.RefreshToken != ""),
	)

	return out, nil
}

func (srv *tokenService) output(access *entity.TokenRecord) *usecase.TokenOutput {
	out := &usecase.TokenOutput{
		AccessToken: access.Token,
		TokenType:   access.Type,
		Subject:     access.Subject,
	}
	if !access.ExpiresAt.IsZero() {
		out.ExpiresIn = int64(access.ExpiresAt.Sub(srv.now()).Round(time.Second).Seconds())
	}

	return out
}

// builderFor maps a header classification to the builder that validates it.
func builderFor(kind entity.CredentialKind) (entity.TokenType, bool) {
	switch kind {
	case entity.CredentialBasic:
		return entity.TokenTypeBasic, true
	case entity.CredentialBearerOpaque:
		return entity.TokenTypeOpaque, true
	case entity.CredentialBearerStructured:
		return entity.TokenTypeJWT, true
	default:
		return "", false
	}
}

// Validate classifies header and asks the matching builder for its subject.
func (srv *tokenService) Validate(ctx context.Context, header string) (*usecase.Introspection, error) {
	kind := entity.DetectCredentialKind(header)
	tokenType, ok := builderFor(kind)
	if !ok {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("unsupported credential kind " + kind.String())
	}

	builder, err := srv.builders.Builder(tokenType)
	if err != nil {
		srv.log(ctx).Debug("Credential kind without builder", slog.String("kind", kind.String()))

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, err.Error())
	}

	record, err := builder.SubjectOf(ctx, entity.SchemePayload(header))
	if err != nil {
		return nil, err
	}

	return &usecase.Introspection{Kind: kind, Record: record}, nil
}

// Refresh rotates refreshToken into a new token pair of the same type.
func (srv *tokenService) Refresh(ctx context.Context, refreshToken string) (*usecase.TokenOutput, error) {
	var (
		builder    service.TokenBuilder
		access     *entity.TokenRecord
		newRefresh *entity.RefreshTokenRecord
	)

	mint := func(ctx context.Context, record *entity.RefreshTokenRecord) (string, error) {
		id, err := uuid.Parse(record.Subject)
		if err != nil {
			return "", errors.Wrap(err, "refresh token subject")
		}
		user, err := srv.users.FindByID(ctx, id)
		if err != nil {
			return "", errors.Wrap(err, "load refresh token subject")
		}

		builder, err = srv.builders.Builder(record.Type)
		if err != nil {
			return "", err
		}

		session := entity.RestoreSession(user, record.Scheme, srv.now())
		if access, err = builder.AccessOf(ctx, session); err != nil {
			return "", err
		}
		if newRefresh, err = builder.RefreshOf(ctx, session); err != nil {
			return "", err
		}

		return access.Token, nil
	}

	token, err := srv.rotation.RefreshOf(ctx, refreshToken, mint)
	if err != nil || token == "" {
		srv.discard(ctx, builder, access, newRefresh)

		return nil, err
	}

	out := srv.output(access)
	out.RefreshToken = newRefresh.Token

	return out, nil
}

// discard withdraws tokens minted for a refresh that did not go through.
func (srv *tokenService) discard(ctx context.Context, builder service.TokenBuilder, access *entity.TokenRecord, refresh *entity.RefreshTokenRecord) {
	if refresh != nil {
		if err := srv.refreshTokens.Revoke(ctx, refresh.Token); err != nil {
			srv.log(ctx).Error("Failed to discard refresh token", slog.Any("error", err))
		}
	}
	if builder != nil && access != nil {
		srv.revokeAccess(ctx, builder, access)
	}
}

func (srv *tokenService) revokeAccess(ctx context.Context, builder service.TokenBuilder, access *entity.TokenRecord) {
	revoker, ok := builder.(service.TokenRevoker)
	if !ok {
		return
	}
	if err := revoker.Revoke(ctx, access.Token); err != nil {
		srv.log(ctx).Error("Failed to discard access token", slog.Any("error", err))
	}
}

// Logout revokes the refresh token and, for cache-bound access tokens, the
// access token in the Authorization header.
func (srv *tokenService) Logout(ctx context.Context, input usecase.LogoutInput) error {
	if input.RefreshToken != "" {
		if err := srv.refreshTokens.Revoke(ctx, input.RefreshToken); err != nil {
			return errors.Wrap(err, "failed to revoke refresh token")
		}
	}

	if entity.DetectCredentialKind(input.AuthorizationHeader) != entity.CredentialBearerOpaque {
		return nil
	}

	builder, err := srv.builders.Builder(entity.TokenTypeOpaque)
	if err != nil {
		return nil //nolint:nilerr
	}
	if revoker, ok := builder.(service.TokenRevoker); ok {
		if err := revoker.Revoke(ctx, entity.BearerPayload(input.AuthorizationHeader)); err != nil {
			return errors.Wrap(err, "failed to revoke access token")
		}
	}

	return nil
}
