package models

import (
	"time"

	"github.com/uptrace/bun"
)

// VideoInfo is one logical video in the storefront catalog, keyed by its
// natural id. Re-uploading a row with an existing vid updates it in place;
// sync never deletes rows.
type VideoInfo struct {
	bun.BaseModel `bun:"table:video_info,alias:vi"`

	VID           string    `bun:"vid,pk" json:"vid"`
	Cut           string    `bun:",nullzero" json:"cut"`
	Title         string    `bun:",nullzero" json:"title"`
	Keyword       string    `bun:",nullzero" json:"keyword"`
	Detail        string    `bun:",nullzero" json:"detail"`
	Format        string    `bun:",nullzero" json:"format"`
	Framerate     string    `bun:",nullzero" json:"framerate"`
	Resolution    JSONMap   `bun:"resolution" json:"resolution"`
	Metadata      JSONMap   `bun:"metadata" json:"metadata"`
	FootageServer string    `bun:"footage_server,nullzero" json:"footage_server"`
	Duration      string    `bun:",nullzero" json:"duration"`
	DropFrame     bool      `bun:"df" json:"df"`
	Push          bool      `bun:"push" json:"push"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
