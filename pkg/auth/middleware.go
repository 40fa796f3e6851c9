package auth

import (
	"strings"

	"github.com/footagedesk/catalogsync/pkg/errcodes"
	"github.com/labstack/echo/v4"
)

type Middleware struct {
	authService *Service
}

func NewMiddleware(authService *Service) *Middleware {
	return &Middleware{authService}
}

// Authenticate requires a valid bearer token and stores the username on the
// context.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return errcodes.Unauthorized("Missing authorization header.")
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return errcodes.Unauthorized("Authorization header must be a bearer token.")
		}

		username, err := m.authService.VerifyToken(tokenString)
		if err != nil {
			return err
		}

		c.Set("username", username)
		return next(c)
	}
}
