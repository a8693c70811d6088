package auth

import (
	"context"
	"time"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const accessTokenUse = "access"

// accessClaims defines the custom claims for access tokens.
type accessClaims struct {
	Scheme string   `json:"scheme,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	Use    string   `json:"type"`
	jwt.RegisteredClaims
}

// jwtBuilder mints self-contained HS256 access tokens that validate without
// any shared state.
type jwtBuilder struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	refresh *refreshMinter
	now     func() time.Time
}

func (b *jwtBuilder) Type() entity.TokenType {
	return entity.TokenTypeJWT
}

func (b *jwtBuilder) AccessOf(_ context.Context, session *entity.Session) (*entity.TokenRecord, error) {
	if session.Subject() == "" {
		return nil, errors.New("session has no subject")
	}

	now := b.now()
	expiresAt := now.Add(b.ttl)
	roles := session.User.Roles.ToStrings()

	claims := accessClaims{
		Scheme: session.Scheme.String(),
		Roles:  roles,
		Use:    accessTokenUse,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   session.Subject(),
			Issuer:    b.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.secret)
	if err != nil {
		return nil, errors.Wrap(err, "sign access token")
	}

	return &entity.TokenRecord{
		Token:     signed,
		Subject:   session.Subject(),
		Scheme:    session.Scheme,
		Type:      entity.TokenTypeJWT,
		Roles:     roles,
		ExpiresAt: expiresAt,
	}, nil
}

func (b *jwtBuilder) SubjectOf(_ context.Context, token string) (*entity.TokenRecord, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(b.now),
		jwt.WithExpirationRequired(),
	}
	if b.issuer != "" {
		opts = append(opts, jwt.WithIssuer(b.issuer))
	}

	var claims accessClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return b.secret, nil
	}, opts...)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, domainerrors.ErrTokenExpired.WrapMessage("jwt expired")
	case err != nil:
		return nil, errors.Wrap(domainerrors.ErrTokenNotFound, err.Error())
	case claims.Use != accessTokenUse || claims.Subject == "":
		return nil, domainerrors.ErrTokenNotFound.WrapMessage("not an access token")
	}

	return &entity.TokenRecord{
		Token:     token,
		Subject:   claims.Subject,
		Scheme:    entity.Scheme(claims.Scheme),
		Type:      entity.TokenTypeJWT,
		Roles:     claims.Roles,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (b *jwtBuilder) RefreshOf(ctx context.Context, session *entity.Session) (*entity.RefreshTokenRecord, error) {
	return b.refresh.mint(ctx, session, entity.TokenTypeJWT)
}

var _ service.TokenBuilder = (*jwtBuilder)(nil)
