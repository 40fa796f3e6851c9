package dictionary

import (
	"net/http"

	"github.com/footagedesk/catalogsync/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	dictionaryService *Service
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	entries, err := h.dictionaryService.Search(ctx, params.Query)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, entries))
}

func (h *handler) upsert(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpsertPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// An empty english translation is stored as NULL, not "".
	english := params.InputEnglish
	if english != nil && *english == "" {
		english = nil
	}

	err := h.dictionaryService.Upsert(ctx, &models.DictionaryEntry{
		Answer:        params.Answer,
		InputHiragana: params.InputHiragana,
		InputRomaji:   params.InputRomaji,
		InputEnglish:  english,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	}))
}

func (h *handler) deleteKeywords(c echo.Context) error {
	ctx := c.Request().Context()

	params := DeletePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	deleted, err := h.dictionaryService.Delete(ctx, params.Keywords)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"deleted": deleted,
	}))
}

func (h *handler) diff(c echo.Context) error {
	ctx := c.Request().Context()

	missing, err := h.dictionaryService.MissingKeywords(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	unused, err := h.dictionaryService.UnusedKeywords(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]interface{}{
		"missing": missing,
		"unused":  unused,
	}))
}
