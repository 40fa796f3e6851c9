package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	authService *Service
}

func (h *handler) token(c echo.Context) error {
	params := TokenPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	token, err := h.authService.IssueToken(params.Username, params.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
	}))
}
