package auth

import (
	"context"
	"time"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"

	"github.com/pkg/errors"
)

// refreshMinter issues cache-bound refresh tokens on behalf of builders that
// support refresh.
type refreshMinter struct {
	repo repository.RefreshTokenRepository
	ttl  time.Duration
	now  func() time.Time
}

func (m *refreshMinter) mint(ctx context.Context, session *entity.Session, tokenType entity.TokenType) (*entity.RefreshTokenRecord, error) {
	if session.Subject() == "" {
		return nil, errors.New("session has no subject")
	}

	body, err := randomToken(tokenEntropyBytes)
	if err != nil {
		return nil, err
	}

	record := &entity.RefreshTokenRecord{
		Token:     body,
		Subject:   session.Subject(),
		Scheme:    session.Scheme,
		Type:      tokenType,
		ExpiresAt: m.now().Add(m.ttl),
	}
	if err := m.repo.Save(ctx, record); err != nil {
		return nil, errors.Wrap(err, "store refresh token")
	}

	return record, nil
}
