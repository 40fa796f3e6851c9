package auth

import (
	"github.com/footagedesk/catalogsync/pkg/config"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the token endpoint and returns the auth service
// for middleware construction.
func RegisterRoutes(e *echo.Echo, cfg *config.Config) *Service {
	authService := NewService(cfg)

	h := &handler{authService: authService}

	e.POST("/auth/token", h.token)

	return authService
}
