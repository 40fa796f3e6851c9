package catalog

import (
	"io"
	"net/http"

	"github.com/footagedesk/catalogsync/pkg/errcodes"
	"github.com/footagedesk/catalogsync/pkg/spreadsheet"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

// Uploaded catalogs are small curated sheets; anything bigger is a mistake.
const maxUploadBytes = 32 << 20

type handler struct {
	syncer *Syncer
}

type syncResponse struct {
	BatchID   string      `json:"batch_id"`
	Message   string      `json:"message"`
	Logs      []string    `json:"logs"`
	Results   []RowResult `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

func newSyncResponse(report *Report) syncResponse {
	return syncResponse{
		BatchID:   report.BatchID,
		Message:   report.Message(),
		Logs:      report.Logs(),
		Results:   report.Results,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
	}
}

func (h *handler) sync(c echo.Context) error {
	ctx := c.Request().Context()

	params := SyncPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}
	target, err := ParseTarget(params.UpdateTarget)
	if err != nil {
		return errcodes.ValidationError(err.Error())
	}

	report := h.syncer.SyncRows(ctx, params.Items, target)

	log := logger.FromContext(ctx)
	log.Info("sync batch finished", logger.Data{
		"batch_id":  report.BatchID,
		"target":    string(target),
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	})

	return errors.WithStack(c.JSON(http.StatusOK, newSyncResponse(report)))
}

func (h *handler) upload(c echo.Context) error {
	ctx := c.Request().Context()

	params := UploadPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	items := params.Items
	if fh := params.FormFiles["file"]; fh != nil {
		f, err := fh.Open()
		if err != nil {
			return errors.WithStack(err)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
		if err != nil {
			return errors.WithStack(err)
		}
		if len(data) > maxUploadBytes {
			return errcodes.ValidationError(`"file" is too large`)
		}

		rows, err := spreadsheet.Parse(fh.Filename, data)
		if err != nil {
			switch {
			case errors.Is(err, spreadsheet.ErrUnsupportedFormat):
				return errcodes.UnsupportedFileFormat()
			case errors.Is(err, spreadsheet.ErrEmptyInput):
				return errcodes.EmptyUpload()
			}
			return errors.WithStack(err)
		}

		items = make([]Row, len(rows))
		for i, row := range rows {
			items[i] = Row(row)
		}
	}
	if len(items) == 0 {
		return errcodes.ValidationError(`either "file" or "items" is required`)
	}

	if !params.Sync {
		return errors.WithStack(c.JSON(http.StatusOK, map[string]interface{}{
			"items": items,
		}))
	}

	target, err := ParseTarget(params.UpdateTarget)
	if err != nil {
		return errcodes.ValidationError(err.Error())
	}
	report := h.syncer.SyncRows(ctx, items, target)

	return errors.WithStack(c.JSON(http.StatusOK, newSyncResponse(report)))
}
