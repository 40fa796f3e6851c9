package catalog

import (
	"context"
	"database/sql"
	"time"

	"github.com/footagedesk/catalogsync/pkg/errcodes"
	"github.com/footagedesk/catalogsync/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service is the catalog store writer. Both tables are keyed by vid; writes
// are idempotent upserts with vid as the conflict column. There is no
// cross-table transaction: a failure on the second table leaves the first
// table's write committed.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// UpsertVideoInfo writes the record and reports whether it was new. The
// new-vs-updated classification comes from a separate existence read, so two
// concurrent syncs of the same vid can both report "new"; the upsert itself
// stays safe either way.
func (svc *Service) UpsertVideoInfo(ctx context.Context, video *models.VideoInfo) (bool, error) {
	exists, err := svc.db.
		NewSelect().
		Model((*models.VideoInfo)(nil)).
		Where("vid = ?", video.VID).
		Exists(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	now := time.Now()
	video.CreatedAt = now
	video.UpdatedAt = now

	_, err = svc.db.
		NewInsert().
		Model(video).
		On("CONFLICT (vid) DO UPDATE").
		Set("cut = EXCLUDED.cut").
		Set("title = EXCLUDED.title").
		Set("keyword = EXCLUDED.keyword").
		Set("detail = EXCLUDED.detail").
		Set("format = EXCLUDED.format").
		Set("framerate = EXCLUDED.framerate").
		Set("resolution = EXCLUDED.resolution").
		Set("metadata = EXCLUDED.metadata").
		Set("footage_server = EXCLUDED.footage_server").
		Set("duration = EXCLUDED.duration").
		Set("df = EXCLUDED.df").
		Set("push = EXCLUDED.push").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return !exists, nil
}

// UpsertDownloadVariant writes the tier id/size columns for a video,
// reporting whether the row was new. Absent tiers overwrite with NULL so a
// re-upload that drops a tier clears it.
func (svc *Service) UpsertDownloadVariant(ctx context.Context, variant *models.DownloadVariant) (bool, error) {
	exists, err := svc.db.
		NewSelect().
		Model((*models.DownloadVariant)(nil)).
		Where("vid = ?", variant.VID).
		Exists(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	now := time.Now()
	variant.CreatedAt = now
	variant.UpdatedAt = now

	_, err = svc.db.
		NewInsert().
		Model(variant).
		On("CONFLICT (vid) DO UPDATE").
		Set(`ex_id = EXCLUDED.ex_id`).
		Set(`"12k_id" = EXCLUDED."12k_id"`).
		Set(`"8k_id" = EXCLUDED."8k_id"`).
		Set(`"6k_id" = EXCLUDED."6k_id"`).
		Set(`"4k_id" = EXCLUDED."4k_id"`).
		Set(`ex_size = EXCLUDED.ex_size`).
		Set(`"12k_size" = EXCLUDED."12k_size"`).
		Set(`"8k_size" = EXCLUDED."8k_size"`).
		Set(`"6k_size" = EXCLUDED."6k_size"`).
		Set(`"4k_size" = EXCLUDED."4k_size"`).
		Set(`updated_at = EXCLUDED.updated_at`).
		Exec(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}

	return !exists, nil
}

// RetrieveVideoInfo returns one record by vid.
func (svc *Service) RetrieveVideoInfo(ctx context.Context, vid string) (*models.VideoInfo, error) {
	video := &models.VideoInfo{}
	err := svc.db.
		NewSelect().
		Model(video).
		Where("vid = ?", vid).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Video")
		}
		return nil, errors.WithStack(err)
	}
	return video, nil
}

// RetrieveDownloadVariant returns one variant row by vid.
func (svc *Service) RetrieveDownloadVariant(ctx context.Context, vid string) (*models.DownloadVariant, error) {
	variant := &models.DownloadVariant{}
	err := svc.db.
		NewSelect().
		Model(variant).
		Where("vid = ?", vid).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Download variant")
		}
		return nil, errors.WithStack(err)
	}
	return variant, nil
}

// CountVideoInfo returns the number of stored records for a vid, for tests
// and sanity checks.
func (svc *Service) CountVideoInfo(ctx context.Context, vid string) (int, error) {
	count, err := svc.db.
		NewSelect().
		Model((*models.VideoInfo)(nil)).
		Where("vid = ?", vid).
		Count(ctx)
	return count, errors.WithStack(err)
}
