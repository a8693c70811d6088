package middleware

import (
	"slices"

	"passport/internal/delivery/api/response"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware authenticates requests by their Authorization header. Every
// credential kind the token service understands is accepted.
type AuthMiddleware struct {
	tokens usecase.TokenUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokens usecase.TokenUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate validates the credential and stores the caller's token record.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		introspection, err := m.tokens.Validate(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetPrincipal(c, introspection.Record)

		return next(c)
	}
}

// RequireRole rejects callers whose token lacks role. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := deliverycontext.GetPrincipal(c)
			if !ok {
				return response.Unauthorized(c, "UNAUTHORIZED", "authentication required")
			}
			if !slices.Contains(principal.Roles, role.String()) {
				return response.Forbidden(c, "FORBIDDEN", "requires the "+role.String()+" role")
			}

			return next(c)
		}
	}
}
