package catalog

import (
	"github.com/footagedesk/catalogsync/pkg/config"
	"github.com/footagedesk/catalogsync/pkg/payments"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers the sync and upload routes on a
// pre-configured group. A nil payments API disables catalog reconciliation;
// store-only syncs keep working.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, api payments.API, cfg *config.Config) {
	store := NewService(db)

	var reconciler *payments.Reconciler
	if api != nil {
		reconciler = payments.NewReconciler(api, cfg.ProductImageBaseURL)
	}

	h := &handler{
		syncer: NewSyncer(store, reconciler, cfg.StrictStructuredFields),
	}

	g.POST("/sync", h.sync)
	g.POST("/upload", h.upload)
}
