package dictionary

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers the keyword-curation routes on a
// pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		dictionaryService: NewService(db),
	}

	g.GET("/search", h.search)
	g.POST("/dictionary", h.upsert)
	g.DELETE("/dictionary", h.deleteKeywords)
	g.GET("/diff", h.diff)
}
