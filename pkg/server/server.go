package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/footagedesk/catalogsync/pkg/auth"
	"github.com/footagedesk/catalogsync/pkg/binder"
	"github.com/footagedesk/catalogsync/pkg/catalog"
	"github.com/footagedesk/catalogsync/pkg/config"
	"github.com/footagedesk/catalogsync/pkg/dictionary"
	"github.com/footagedesk/catalogsync/pkg/errcodes"
	"github.com/footagedesk/catalogsync/pkg/payments"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

// New wires the HTTP surface. The database handle and payments API are
// constructed by the caller and injected; a nil payments API runs the service
// in store-only mode.
func New(cfg *config.Config, db *bun.DB, paymentsAPI payments.API) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	authService := auth.RegisterRoutes(e, cfg)
	authMiddleware := auth.NewMiddleware(authService)

	// Catalog synchronization routes
	catalogGroup := e.Group("")
	catalogGroup.Use(authMiddleware.Authenticate)
	catalog.RegisterRoutesWithGroup(catalogGroup, db, paymentsAPI, cfg)

	// Keyword dictionary routes
	keywordsGroup := e.Group("/keywords")
	keywordsGroup.Use(authMiddleware.Authenticate)
	dictionary.RegisterRoutesWithGroup(keywordsGroup, db)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
