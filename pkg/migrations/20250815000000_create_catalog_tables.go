package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	// Column types are kept dialect-neutral so the same migrations run
	// against the managed Postgres backend and the in-memory sqlite used in
	// tests.
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE video_info (
				vid TEXT PRIMARY KEY,
				cut TEXT,
				title TEXT,
				keyword TEXT,
				detail TEXT,
				format TEXT,
				framerate TEXT,
				resolution TEXT,
				metadata TEXT,
				footage_server TEXT,
				duration TEXT,
				df BOOLEAN NOT NULL DEFAULT FALSE,
				push BOOLEAN NOT NULL DEFAULT FALSE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = db.Exec(`
			CREATE TABLE download_vid (
				vid TEXT PRIMARY KEY,
				ex_id INTEGER,
				"12k_id" INTEGER,
				"8k_id" INTEGER,
				"6k_id" INTEGER,
				"4k_id" INTEGER,
				ex_size TEXT,
				"12k_size" TEXT,
				"8k_size" TEXT,
				"6k_size" TEXT,
				"4k_size" TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return errors.WithStack(err)
		}

		// Keyword column feeds the dictionary diff queries.
		_, err = db.Exec(`CREATE INDEX ix_video_info_keyword ON video_info(keyword)`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DROP TABLE IF EXISTS download_vid")
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec("DROP TABLE IF EXISTS video_info")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
