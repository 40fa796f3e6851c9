package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Tiers are the download quality variants a video can carry, in the order
// they appear as column pairs on a catalog row.
var Tiers = []string{"EX", "12K", "8K", "6K", "4K"}

// DownloadVariant holds the per-tier download ids and sizes for one video,
// sharing the vid key with VideoInfo. A tier that is absent from the source
// row stays NULL, never zero.
type DownloadVariant struct {
	bun.BaseModel `bun:"table:download_vid,alias:dv"`

	VID       string    `bun:"vid,pk" json:"vid"`
	EXID      *int64    `bun:"ex_id" json:"ex_id"`
	ID12K     *int64    `bun:"12k_id" json:"12k_id"`
	ID8K      *int64    `bun:"8k_id" json:"8k_id"`
	ID6K      *int64    `bun:"6k_id" json:"6k_id"`
	ID4K      *int64    `bun:"4k_id" json:"4k_id"`
	EXSize    *string   `bun:"ex_size" json:"ex_size"`
	Size12K   *string   `bun:"12k_size" json:"12k_size"`
	Size8K    *string   `bun:"8k_size" json:"8k_size"`
	Size6K    *string   `bun:"6k_size" json:"6k_size"`
	Size4K    *string   `bun:"4k_size" json:"4k_size"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasData reports whether any tier carries an id or a size. Variants without
// data are not written to the store.
func (dv *DownloadVariant) HasData() bool {
	for _, id := range []*int64{dv.EXID, dv.ID12K, dv.ID8K, dv.ID6K, dv.ID4K} {
		if id != nil {
			return true
		}
	}
	for _, size := range []*string{dv.EXSize, dv.Size12K, dv.Size8K, dv.Size6K, dv.Size4K} {
		if size != nil {
			return true
		}
	}
	return false
}
