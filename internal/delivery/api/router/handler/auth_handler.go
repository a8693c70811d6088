// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"passport/internal/delivery/api/response"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// LoginRequest is the body of POST /auth/login/:scheme.
type LoginRequest struct {
	Identifier  string `json:"identifier" validate:"max=320"`
	Credential  string `json:"credential" validate:"required,max=4096"`
	TokenType   string `json:"tokenType" validate:"omitempty,oneof=jwt opaque basic"`
	DirectoryID string `json:"directoryId" validate:"max=128"`
	RedirectURI string `json:"redirectUri" validate:"omitempty,url"`
	App         string `json:"app" validate:"max=64"`
	Tenant      string `json:"tenant" validate:"max=64"`
}

// SendCodeRequest is the body of POST /auth/code/:scheme.
type SendCodeRequest struct {
	Identifier string `json:"identifier" validate:"required,max=320"`
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LogoutRequest is the body of POST /auth/logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// TokenResponse carries an issued token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
}

// SendCodeResponse acknowledges a delivered code.
type SendCodeResponse struct {
	Scheme    string `json:"scheme"`
	Receipt   string `json:"receipt"`
	Provider  string `json:"provider"`
	ExpiresIn int64  `json:"expiresIn"`
}

// IntrospectionResponse describes the caller's credential.
type IntrospectionResponse struct {
	Subject   string     `json:"subject"`
	Kind      string     `json:"kind"`
	TokenType string     `json:"tokenType"`
	Scheme    string     `json:"scheme,omitempty"`
	Roles     []string   `json:"roles,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// TOTPEnrollmentResponse is returned once per enrollment. QRCode is a base64 PNG.
type TOTPEnrollmentResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
	QRCode []byte `json:"qrCode"`
}

// AuthHandler exposes login, code delivery and the token lifecycle.
type AuthHandler struct {
	auth     usecase.AuthUsecase
	tokens   usecase.TokenUsecase
	builders service.TokenBuilders
	logger   *slog.Logger
}

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Auth     usecase.AuthUsecase
	Tokens   usecase.TokenUsecase
	Builders service.TokenBuilders
	Logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		auth:     params.Auth,
		tokens:   params.Tokens,
		builders: params.Builders,
		logger:   params.Logger,
	}
}

func bindAndValidate(c echo.Context, input any) error {
	if err := c.Bind(input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("malformed request body")
	}

	return errors.WithStack(c.Validate(input))
}

func schemeParam(c echo.Context) (entity.Scheme, error) {
	scheme, ok := entity.ParseScheme(c.Param("scheme"))
	if !ok {
		return "", domainerrors.ErrSchemeMismatch.WrapMessage("unknown scheme " + c.Param("scheme"))
	}

	return scheme, nil
}

func newLoginRequest(scheme entity.Scheme, input *LoginRequest) *entity.LoginRequest {
	scope := entity.Scope{App: input.App, Tenant: input.Tenant}
	switch scheme {
	case entity.SchemeDirectory:
		return entity.NewDirectoryLogin(input.Identifier, input.Credential, input.DirectoryID, scope)
	case entity.SchemeGoogle:
		return entity.NewGoogleLogin(input.Credential, input.RedirectURI, scope)
	default:
		return entity.NewLoginRequest(scheme, input.Identifier, input.Credential, scope)
	}
}

func toTokenResponse(out *usecase.TokenOutput) *TokenResponse {
	return &TokenResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		TokenType:    out.TokenType.String(),
		ExpiresIn:    out.ExpiresIn,
	}
}

// Login authenticates with the scheme named in the route and issues tokens.
func (h *AuthHandler) Login(c echo.Context) error {
	scheme, err := schemeParam(c)
	if err != nil {
		return err
	}

	input := new(LoginRequest)
	if err := bindAndValidate(c, input); err != nil {
		return err
	}

	ctx := c.Request().Context()
	session, err := h.auth.Login(ctx, newLoginRequest(scheme, input))
	if err != nil {
		return errors.WithStack(err)
	}

	out, err := h.tokens.Issue(ctx, session, entity.TokenType(input.TokenType))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toTokenResponse(out))
}

// SendCode delivers a one-time code for the SMS or EMAIL scheme.
func (h *AuthHandler) SendCode(c echo.Context) error {
	scheme, err := schemeParam(c)
	if err != nil {
		return err
	}
	if !scheme.UsesOneTimeCode() {
		return domainerrors.ErrSchemeMismatch.WrapMessage(scheme.String() + " does not use delivered codes")
	}

	input := new(SendCodeRequest)
	if err := bindAndValidate(c, input); err != nil {
		return err
	}

	out, err := h.auth.SendCode(c.Request().Context(), entity.NewCodeLogin(scheme, input.Identifier, "", entity.Scope{}))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, &SendCodeResponse{
		Scheme:    out.Scheme.String(),
		Receipt:   out.Receipt,
		Provider:  out.Provider,
		ExpiresIn: int64(out.ExpiresIn / time.Second),
	})
}

// Refresh exchanges a refresh token for a new token pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	input := new(RefreshRequest)
	if err := bindAndValidate(c, input); err != nil {
		return err
	}

	out, err := h.tokens.Refresh(c.Request().Context(), input.RefreshToken)
	if err != nil {
		return errors.WithStack(err)
	}
	if out == nil {
		return domainerrors.ErrRefreshTokenInvalid
	}

	return response.Success(c, http.StatusOK, toTokenResponse(out))
}

// Introspect reports what the Authorization header asserts.
func (h *AuthHandler) Introspect(c echo.Context) error {
	introspection, err := h.tokens.Validate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return errors.WithStack(err)
	}

	record := introspection.Record
	out := &IntrospectionResponse{
		Subject:   record.Subject,
		Kind:      introspection.Kind.String(),
		TokenType: record.Type.String(),
		Scheme:    record.Scheme.String(),
		Roles:     record.Roles,
	}
	if !record.ExpiresAt.IsZero() {
		out.ExpiresAt = &record.ExpiresAt
	}

	return response.Success(c, http.StatusOK, out)
}

// Logout revokes the refresh token and, when possible, the access token.
func (h *AuthHandler) Logout(c echo.Context) error {
	input := new(LogoutRequest)
	if err := bindAndValidate(c, input); err != nil {
		return err
	}

	err := h.tokens.Logout(c.Request().Context(), usecase.LogoutInput{
		RefreshToken:        input.RefreshToken,
		AuthorizationHeader: c.Request().Header.Get(echo.HeaderAuthorization),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"loggedOut": true})
}

// EnrollTOTP creates an authenticator secret for the authenticated caller.
func (h *AuthHandler) EnrollTOTP(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	enrollment, err := h.auth.EnrollTOTP(c.Request().Context(), principal.Subject)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, &TOTPEnrollmentResponse{
		Secret: enrollment.Secret,
		URL:    enrollment.URL,
		QRCode: enrollment.QRCode,
	})
}

// TokenTypes lists the registered token formats.
func (h *AuthHandler) TokenTypes(c echo.Context) error {
	types := h.builders.Types()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}

	return response.Success(c, http.StatusOK, map[string][]string{"tokenTypes": names})
}
