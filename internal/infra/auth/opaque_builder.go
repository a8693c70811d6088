package auth

import (
	"context"
	"strings"
	"time"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
)

// opaqueBuilder mints random r2a_ handles whose meaning lives in the token cache.
type opaqueBuilder struct {
	tokens  repository.TokenRepository
	ttl     time.Duration
	refresh *refreshMinter
	now     func() time.Time
}

func (b *opaqueBuilder) Type() entity.TokenType {
	return entity.TokenTypeOpaque
}

func (b *opaqueBuilder) AccessOf(ctx context.Context, session *entity.Session) (*entity.TokenRecord, error) {
	if session.Subject() == "" {
		return nil, errors.New("session has no subject")
	}

	body, err := randomToken(tokenEntropyBytes)
	if err != nil {
		return nil, err
	}

	record := &entity.TokenRecord{
		Token:     entity.OpaqueTokenPrefix + body,
		Subject:   session.Subject(),
		Scheme:    session.Scheme,
		Type:      entity.TokenTypeOpaque,
		Roles:     session.User.Roles.ToStrings(),
		ExpiresAt: b.now().Add(b.ttl),
	}
	if err := b.tokens.Save(ctx, record); err != nil {
		return nil, errors.Wrap(err, "store access token")
	}

	return record, nil
}

func (b *opaqueBuilder) SubjectOf(ctx context.Context, token string) (*entity.TokenRecord, error) {
	if !strings.HasPrefix(token, entity.OpaqueTokenPrefix) {
		return nil, domainerrors.ErrTokenNotFound.WrapMessage("not an opaque token")
	}

	record, err := b.tokens.Find(ctx, token)
	if err != nil {
		return nil, errors.Wrap(err, "load access token")
	}
	if record == nil {
		return nil, domainerrors.ErrTokenNotFound.WrapMessage("unknown opaque token")
	}
	if record.Expired(b.now()) {
		return nil, domainerrors.ErrTokenExpired.WrapMessage("opaque token expired")
	}

	return record, nil
}

func (b *opaqueBuilder) RefreshOf(ctx context.Context, session *entity.Session) (*entity.RefreshTokenRecord, error) {
	return b.refresh.mint(ctx, session, entity.TokenTypeOpaque)
}

// Revoke forgets token before its natural expiry.
func (b *opaqueBuilder) Revoke(ctx context.Context, token string) error {
	return b.tokens.Delete(ctx, token)
}

var _ service.TokenBuilder = (*opaqueBuilder)(nil)
