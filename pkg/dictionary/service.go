package dictionary

import (
	"context"
	"strings"
	"time"

	"github.com/footagedesk/catalogsync/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const searchLimit = 50

// Service manages the search-keyword dictionary: upserts keyed by the answer
// string, batch deletes, substring search, and the missing/unused diff.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// Search returns entries whose answer or any translation contains the query,
// case-insensitively, ordered by answer. An empty query returns an empty
// result without touching the database.
func (svc *Service) Search(ctx context.Context, query string) ([]*models.DictionaryEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.DictionaryEntry{}, nil
	}

	pattern := "%" + strings.ToLower(query) + "%"
	entries := []*models.DictionaryEntry{}
	err := svc.db.
		NewSelect().
		Model(&entries).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("LOWER(d.answer) LIKE ?", pattern).
				WhereOr("LOWER(d.input_hiragana) LIKE ?", pattern).
				WhereOr("LOWER(d.input_romaji) LIKE ?", pattern).
				WhereOr("LOWER(d.input_english) LIKE ?", pattern)
		}).
		Order("answer ASC").
		Limit(searchLimit).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return entries, nil
}

// Upsert writes an entry keyed by answer; an existing answer is updated with
// the latest translations.
func (svc *Service) Upsert(ctx context.Context, entry *models.DictionaryEntry) error {
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	_, err := svc.db.
		NewInsert().
		Model(entry).
		On("CONFLICT (answer) DO UPDATE").
		Set("input_hiragana = EXCLUDED.input_hiragana").
		Set("input_romaji = EXCLUDED.input_romaji").
		Set("input_english = EXCLUDED.input_english").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return errors.WithStack(err)
}

// Delete removes the given answers and returns how many rows existed. Keys
// that don't exist are a no-op, not an error.
func (svc *Service) Delete(ctx context.Context, keywords []string) (int, error) {
	if len(keywords) == 0 {
		return 0, nil
	}

	result, err := svc.db.
		NewDelete().
		Model((*models.DictionaryEntry)(nil)).
		Where("answer IN (?)", bun.In(keywords)).
		Exec(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	n, _ := result.RowsAffected()
	return int(n), nil
}

// MissingKeywords returns video keywords that have no dictionary entry. The
// set difference runs entirely database-side.
func (svc *Service) MissingKeywords(ctx context.Context) ([]string, error) {
	keywords := []string{}
	err := svc.db.
		NewSelect().
		Model((*models.VideoInfo)(nil)).
		ColumnExpr("DISTINCT vi.keyword").
		Where("vi.keyword IS NOT NULL").
		Where("vi.keyword <> ''").
		Where("vi.keyword NOT IN (SELECT answer FROM dictionary)").
		OrderExpr("vi.keyword ASC").
		Scan(ctx, &keywords)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return keywords, nil
}

// UnusedKeywords returns dictionary answers no video references.
func (svc *Service) UnusedKeywords(ctx context.Context) ([]string, error) {
	keywords := []string{}
	err := svc.db.
		NewSelect().
		Model((*models.DictionaryEntry)(nil)).
		ColumnExpr("d.answer").
		Where("d.answer NOT IN (SELECT keyword FROM video_info WHERE keyword IS NOT NULL AND keyword <> '')").
		OrderExpr("d.answer ASC").
		Scan(ctx, &keywords)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return keywords, nil
}
