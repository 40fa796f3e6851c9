package dictionary

import (
	"context"
	"database/sql"
	"testing"

	"github.com/footagedesk/catalogsync/pkg/migrations"
	"github.com/footagedesk/catalogsync/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func seedEntry(ctx context.Context, t *testing.T, svc *Service, answer, hiragana, romaji string) {
	t.Helper()

	err := svc.Upsert(ctx, &models.DictionaryEntry{
		Answer:        answer,
		InputHiragana: hiragana,
		InputRomaji:   romaji,
	})
	require.NoError(t, err)
}

func seedVideoKeyword(ctx context.Context, t *testing.T, db *bun.DB, vid, keyword string) {
	t.Helper()

	_, err := db.NewInsert().Model(&models.VideoInfo{VID: vid, Keyword: keyword}).Exec(ctx)
	require.NoError(t, err)
}

func TestServiceSearch_MatchesAnyColumn(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seedEntry(ctx, t, svc, "sunset", "さんせっと", "sansetto")
	seedEntry(ctx, t, svc, "harbor", "はーばー", "haabaa")

	entries, err := svc.Search(ctx, "sansetto")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sunset", entries[0].Answer)

	entries, err = svc.Search(ctx, "はーばー")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "harbor", entries[0].Answer)
}

func TestServiceSearch_CaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seedEntry(ctx, t, svc, "Sunset", "", "Sansetto")
	seedEntry(ctx, t, svc, "sunrise", "", "sanraizu")

	entries, err := svc.Search(ctx, "SUN")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Ordered by answer.
	assert.Equal(t, "Sunset", entries[0].Answer)
	assert.Equal(t, "sunrise", entries[1].Answer)
}

func TestServiceSearch_EmptyQueryReturnsNothing(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seedEntry(ctx, t, svc, "sunset", "", "")

	entries, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestServiceUpsert_UpdatesExistingAnswer(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seedEntry(ctx, t, svc, "sunset", "さんせっと", "sansetto")

	english := "sunset sky"
	err := svc.Upsert(ctx, &models.DictionaryEntry{
		Answer:        "sunset",
		InputHiragana: "ゆうひ",
		InputRomaji:   "yuuhi",
		InputEnglish:  &english,
	})
	require.NoError(t, err)

	entries, err := svc.Search(ctx, "sunset")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ゆうひ", entries[0].InputHiragana)
	assert.Equal(t, "yuuhi", entries[0].InputRomaji)
	require.NotNil(t, entries[0].InputEnglish)
	assert.Equal(t, "sunset sky", *entries[0].InputEnglish)
}

func TestServiceDelete_ReportsAffectedRows(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seedEntry(ctx, t, svc, "sunset", "", "")
	seedEntry(ctx, t, svc, "harbor", "", "")

	n, err := svc.Delete(ctx, []string{"sunset", "does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	entries, err := svc.Search(ctx, "sunset")
	require.NoError(t, err)
	assert.Empty(t, entries)

	n, err = svc.Delete(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestServiceMissingKeywords(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seedVideoKeyword(ctx, t, db, "V001", "sunset")
	seedVideoKeyword(ctx, t, db, "V002", "harbor")
	seedVideoKeyword(ctx, t, db, "V003", "sunset")
	seedVideoKeyword(ctx, t, db, "V004", "")

	seedEntry(ctx, t, svc, "sunset", "", "")

	missing, err := svc.MissingKeywords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"harbor"}, missing)
}

func TestServiceUnusedKeywords(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	seedVideoKeyword(ctx, t, db, "V001", "sunset")

	seedEntry(ctx, t, svc, "sunset", "", "")
	seedEntry(ctx, t, svc, "harbor", "", "")
	seedEntry(ctx, t, svc, "alley", "", "")

	unused, err := svc.UnusedKeywords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alley", "harbor"}, unused)
}
