package auth

import (
	"context"
	"encoding/base64"
	"strings"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"

	"github.com/pkg/errors"
)

// basicBuilder serves legacy clients that keep sending identifier:credential
// as their access token. Validation replays the password login.
type basicBuilder struct {
	authenticator service.Authenticator
}

func (b *basicBuilder) Type() entity.TokenType {
	return entity.TokenTypeBasic
}

func (b *basicBuilder) AccessOf(_ context.Context, session *entity.Session) (*entity.TokenRecord, error) {
	if session.Scheme != entity.SchemePassword {
		return nil, domainerrors.ErrSchemeMismatch.WrapMessage("basic tokens require a password session")
	}
	if session.Credential() == "" || strings.Contains(session.Identifier, ":") {
		return nil, domainerrors.ErrCredentialMismatch.WrapMessage("session cannot be echoed")
	}

	raw := session.Identifier + ":" + session.Credential()

	return &entity.TokenRecord{
		Token:   base64.StdEncoding.EncodeToString([]byte(raw)),
		Subject: session.Subject(),
		Scheme:  session.Scheme,
		Type:    entity.TokenTypeBasic,
		Roles:   session.User.Roles.ToStrings(),
	}, nil
}

func (b *basicBuilder) SubjectOf(ctx context.Context, token string) (*entity.TokenRecord, error) {
	identifier, credential, err := DecodeBasic(token)
	if err != nil {
		return nil, err
	}

	session, err := b.authenticator.Login(ctx, entity.NewPasswordLogin(identifier, credential, entity.Scope{}))
	if err != nil {
		return nil, errors.Wrap(err, "basic credential rejected")
	}

	return &entity.TokenRecord{
		Token:   token,
		Subject: session.Subject(),
		Scheme:  session.Scheme,
		Type:    entity.TokenTypeBasic,
		Roles:   session.User.Roles.ToStrings(),
	}, nil
}

func (b *basicBuilder) RefreshOf(context.Context, *entity.Session) (*entity.RefreshTokenRecord, error) {
	return nil, domainerrors.ErrRefreshUnsupported.WrapMessage("basic tokens are never refreshed")
}

// DecodeBasic splits a base64 "identifier:credential" payload.
func DecodeBasic(token string) (identifier, credential string, err error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return "", "", domainerrors.ErrTokenNotFound.WrapMessage("malformed basic credential")
	}

	identifier, credential, ok := strings.Cut(string(raw), ":")
	if !ok || identifier == "" {
		return "", "", domainerrors.ErrTokenNotFound.WrapMessage("malformed basic credential")
	}

	return identifier, credential, nil
}

var _ service.TokenBuilder = (*basicBuilder)(nil)
