package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/domain"
)

type AuthMiddleware struct {
	auth domain.AuthUseCase
}

func New(auth domain.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Auth requires a valid bearer token and stores the proven address on the
// echo context under "address".
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

// OptionalAuth validates the token when one is sent but lets anonymous
// requests through.
func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			return len(auth) == 0
		},
		Validator: m.validateAuthToken,
	})
}

func (m *AuthMiddleware) validateAuthToken(token string, c echo.Context) (bool, error) {
	context := c.Get("ctx").(ctx.Ctx)

	address, err := m.auth.ParseToken(context, token)
	if err != nil {
		return false, err
	}

	c.Set("address", address)
	return true, nil
}
