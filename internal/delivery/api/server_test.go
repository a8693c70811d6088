package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"passport/config"
	apimiddleware "passport/internal/delivery/api/middleware"
	"passport/internal/delivery/api/router"
	"passport/internal/delivery/api/router/handler"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/infra/auth"
	mockUsecase "passport/internal/mocks/usecase"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data  json.RawMessage         `json:"data"`
	Error *domainerrors.ErrorInfo `json:"error"`
	Meta  *domainerrors.MetaInfo  `json:"meta"`
}

type apiFixture struct {
	e      *echo.Echo
	auth   *mockUsecase.MockAuthUsecase
	tokens *mockUsecase.MockTokenUsecase
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &apiFixture{
		auth:   mockUsecase.NewMockAuthUsecase(t),
		tokens: mockUsecase.NewMockTokenUsecase(t),
	}

	builders := auth.NewBuilderRegistry()
	builders.Register(entity.TokenTypeJWT, func() (service.TokenBuilder, error) { return nil, nil })
	builders.Register(entity.TokenTypeOpaque, func() (service.TokenBuilder, error) { return nil, nil })

	f.e = NewEcho(&config.Config{}, logger, router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			Auth:     f.auth,
			Tokens:   f.tokens,
			Builders: builders,
			Logger:   logger,
		}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(f.tokens),
	})

	return f
}

func (f *apiFixture) do(t *testing.T, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, *envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	env := new(envelope)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), env), rec.Body.String())

	return rec, env
}

func aliceSession() *entity.Session {
	user := &entity.User{ID: uuid.MustParse("8f14e45f-ceea-4e7a-9b2d-0c3b6f1b5a10"), Username: "alice"}

	return entity.NewSession(user, entity.NewPasswordLogin("alice", "pw", entity.Scope{}), time.Now())
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rec, env := f.do(t, http.MethodGet, "/health", "", map[string]string{deliverycontext.HeaderXRequestID: "req-42"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
	assert.Equal(t, "req-42", env.Meta.RequestID)
	assert.Equal(t, "req-42", rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestLogin(t *testing.T) {
	f := newAPIFixture(t)
	session := aliceSession()

	f.auth.EXPECT().
		Login(mock.Anything, mock.MatchedBy(func(req *entity.LoginRequest) bool {
			return req.Scheme() == entity.SchemePassword && req.Identifier == "alice" && req.Credential == "pw" && req.Scope.App == "console"
		})).
		Return(session, nil).
		Once()
	f.tokens.EXPECT().
		Issue(mock.Anything, session, entity.TokenTypeOpaque).
		Return(&usecase.TokenOutput{
			AccessToken:  "r2a_access",
			RefreshToken: "refresh",
			TokenType:    entity.TokenTypeOpaque,
			ExpiresIn:    900,
			Subject:      session.Subject(),
		}, nil).
		Once()

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/login/password",
		`{"identifier":"alice","credential":"pw","tokenType":"opaque","app":"console"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"accessToken":"r2a_access","refreshToken":"refresh","tokenType":"opaque","expiresIn":900}`, string(env.Data))
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		setup    func(f *apiFixture)
		wantCode int
		wantErr  string
	}{
		{
			name:     "unknown user collapses to invalid credentials",
			path:     "/api/v1/auth/login/password",
			body:     `{"identifier":"nobody","credential":"pw"}`,
			wantCode: http.StatusUnauthorized,
			wantErr:  "INVALID_CREDENTIALS",
			setup: func(f *apiFixture) {
				f.auth.EXPECT().Login(mock.Anything, mock.Anything).
					Return(nil, domainerrors.NewAuthError(domainerrors.ErrUserNotFound, entity.SchemePassword, "nobody")).Once()
			},
		},
		{
			name:     "wrong credential collapses to invalid credentials",
			path:     "/api/v1/auth/login/password",
			body:     `{"identifier":"alice","credential":"bad"}`,
			wantCode: http.StatusUnauthorized,
			wantErr:  "INVALID_CREDENTIALS",
			setup: func(f *apiFixture) {
				f.auth.EXPECT().Login(mock.Anything, mock.Anything).
					Return(nil, domainerrors.NewAuthError(domainerrors.ErrCredentialMismatch, entity.SchemePassword, "alice")).Once()
			},
		},
		{
			name:     "unknown scheme",
			path:     "/api/v1/auth/login/carrier-pigeon",
			body:     `{"identifier":"alice","credential":"pw"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "SCHEME_MISMATCH",
		},
		{
			name:     "missing credential",
			path:     "/api/v1/auth/login/password",
			body:     `{"identifier":"alice"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_FAILED",
		},
		{
			name:     "unsupported token type",
			path:     "/api/v1/auth/login/password",
			body:     `{"identifier":"alice","credential":"pw","tokenType":"paseto"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "VALIDATION_FAILED",
		},
		{
			name:     "directory unavailable",
			path:     "/api/v1/auth/login/directory",
			body:     `{"identifier":"jdoe","credential":"pw"}`,
			wantCode: http.StatusServiceUnavailable,
			wantErr:  "DIRECTORY_UNAVAILABLE",
			setup: func(f *apiFixture) {
				f.auth.EXPECT().Login(mock.Anything, mock.Anything).
					Return(nil, domainerrors.ErrDirectoryUnavailable.WrapMessage("dial tcp: i/o timeout")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			rec, env := f.do(t, http.MethodPost, tt.path, tt.body, nil)
			assert.Equal(t, tt.wantCode, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantErr, env.Error.Code)
			assert.NotContains(t, rec.Body.String(), "nobody")
		})
	}
}

func TestSendCode(t *testing.T) {
	f := newAPIFixture(t)

	f.auth.EXPECT().
		SendCode(mock.Anything, mock.MatchedBy(func(req *entity.LoginRequest) bool {
			return req.Scheme() == entity.SchemeSMS && req.Identifier == "+15550100"
		})).
		Return(&usecase.SendCodeOutput{Scheme: entity.SchemeSMS, Receipt: "msg-1", Provider: "log", ExpiresIn: time.Minute}, nil).
		Once()

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/code/sms", `{"identifier":"+15550100"}`, nil)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"scheme":"SMS","receipt":"msg-1","provider":"log","expiresIn":60}`, string(env.Data))

	rec, env = f.do(t, http.MethodPost, "/api/v1/auth/code/password", `{"identifier":"alice"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "SCHEME_MISMATCH", env.Error.Code)
}

func TestRefresh(t *testing.T) {
	f := newAPIFixture(t)

	f.tokens.EXPECT().Refresh(mock.Anything, "used").Return(nil, nil).Once()
	f.tokens.EXPECT().Refresh(mock.Anything, "live").
		Return(&usecase.TokenOutput{AccessToken: "AT1", RefreshToken: "RT2", TokenType: entity.TokenTypeJWT, ExpiresIn: 900}, nil).Once()

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/refresh", `{"refreshToken":"used"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "REFRESH_TOKEN_INVALID", env.Error.Code)

	rec, env = f.do(t, http.MethodPost, "/api/v1/auth/refresh", `{"refreshToken":"live"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"accessToken":"AT1","refreshToken":"RT2","tokenType":"jwt","expiresIn":900}`, string(env.Data))
}

func TestIntrospect(t *testing.T) {
	f := newAPIFixture(t)

	f.tokens.EXPECT().Validate(mock.Anything, "Bearer r2a_live").
		Return(&usecase.Introspection{
			Kind:   entity.CredentialBearerOpaque,
			Record: &entity.TokenRecord{Subject: "user-1", Type: entity.TokenTypeOpaque, Scheme: entity.SchemeSMS},
		}, nil).Once()
	f.tokens.EXPECT().Validate(mock.Anything, "Bearer r2a_gone").
		Return(nil, domainerrors.ErrTokenNotFound).Once()

	rec, env := f.do(t, http.MethodGet, "/api/v1/auth/introspect", "", map[string]string{echo.HeaderAuthorization: "Bearer r2a_live"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subject":"user-1","kind":"BEARER_OPAQUE","tokenType":"opaque","scheme":"SMS"}`, string(env.Data))

	rec, env = f.do(t, http.MethodGet, "/api/v1/auth/introspect", "", map[string]string{echo.HeaderAuthorization: "Bearer r2a_gone"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_NOT_FOUND", env.Error.Code)
}

func TestLogout(t *testing.T) {
	f := newAPIFixture(t)

	f.tokens.EXPECT().
		Logout(mock.Anything, usecase.LogoutInput{RefreshToken: "RT", AuthorizationHeader: "Bearer r2a_live"}).
		Return(nil).Once()

	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/logout", `{"refreshToken":"RT"}`,
		map[string]string{echo.HeaderAuthorization: "Bearer r2a_live"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"loggedOut":true}`, string(env.Data))
}

func TestEnrollTOTP(t *testing.T) {
	f := newAPIFixture(t)

	f.tokens.EXPECT().Validate(mock.Anything, "").Return(nil, domainerrors.ErrUnauthorized).Once()
	rec, env := f.do(t, http.MethodPost, "/api/v1/auth/totp/enroll", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	f.tokens.EXPECT().Validate(mock.Anything, "Bearer eyJ.a.b").
		Return(&usecase.Introspection{
			Kind:   entity.CredentialBearerStructured,
			Record: &entity.TokenRecord{Subject: "user-1", Type: entity.TokenTypeJWT},
		}, nil).Once()
	f.auth.EXPECT().EnrollTOTP(mock.Anything, "user-1").
		Return(&usecase.TOTPEnrollment{Secret: "SECRET", URL: "otpauth://totp/x", QRCode: []byte{0x89, 'P', 'N', 'G'}}, nil).Once()

	rec, env = f.do(t, http.MethodPost, "/api/v1/auth/totp/enroll", "", map[string]string{echo.HeaderAuthorization: "Bearer eyJ.a.b"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"secret":"SECRET","url":"otpauth://totp/x","qrCode":"iVBORw=="}`, string(env.Data))
}

func TestAdminTokenTypes(t *testing.T) {
	f := newAPIFixture(t)

	f.tokens.EXPECT().Validate(mock.Anything, "Bearer user").
		Return(&usecase.Introspection{Record: &entity.TokenRecord{Subject: "u", Roles: []string{"user"}}}, nil).Once()
	f.tokens.EXPECT().Validate(mock.Anything, "Bearer admin").
		Return(&usecase.Introspection{Record: &entity.TokenRecord{Subject: "a", Roles: []string{"admin"}}}, nil).Once()

	rec, env := f.do(t, http.MethodGet, "/api/v1/admin/token-types", "", map[string]string{echo.HeaderAuthorization: "Bearer user"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	rec, env = f.do(t, http.MethodGet, "/api/v1/admin/token-types", "", map[string]string{echo.HeaderAuthorization: "Bearer admin"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tokenTypes":["jwt","opaque"]}`, string(env.Data))
}
