package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/footagedesk/catalogsync/pkg/errcodes"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthedContext(t *testing.T, header string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestAuthenticate_AllowsValidToken(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	m := NewMiddleware(svc)

	token, err := svc.IssueToken("admin", "password")
	require.NoError(t, err)

	c := newAuthedContext(t, "Bearer "+token)
	called := false
	err = m.Authenticate(func(c echo.Context) error {
		called = true
		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "admin", c.Get("username"))
}

func TestAuthenticate_RejectsMissingHeader(t *testing.T) {
	t.Parallel()

	m := NewMiddleware(newTestService())

	c := newAuthedContext(t, "")
	err := m.Authenticate(func(c echo.Context) error {
		t.Fatal("handler should not be called")
		return nil
	})(c)

	require.Error(t, err)

	codeErr := &errcodes.Error{}
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, http.StatusUnauthorized, codeErr.HTTPCode)
}

func TestAuthenticate_RejectsNonBearerHeader(t *testing.T) {
	t.Parallel()

	m := NewMiddleware(newTestService())

	c := newAuthedContext(t, "Basic YWRtaW46cGFzc3dvcmQ=")
	err := m.Authenticate(func(c echo.Context) error {
		t.Fatal("handler should not be called")
		return nil
	})(c)

	require.Error(t, err)
}

func TestAuthenticate_RejectsInvalidToken(t *testing.T) {
	t.Parallel()

	m := NewMiddleware(newTestService())

	c := newAuthedContext(t, "Bearer garbage")
	err := m.Authenticate(func(c echo.Context) error {
		t.Fatal("handler should not be called")
		return nil
	})(c)

	require.Error(t, err)

	codeErr := &errcodes.Error{}
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, http.StatusUnauthorized, codeErr.HTTPCode)
}
