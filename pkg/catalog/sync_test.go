package catalog

import (
	"context"
	"testing"

	"github.com/footagedesk/catalogsync/pkg/payments"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSyncer(t *testing.T) (*Syncer, *Service, *payments.Fake) {
	t.Helper()

	db := newTestDB(t)
	store := NewService(db)
	fake := payments.NewFake()
	syncer := NewSyncer(store, payments.NewReconciler(fake, ""), false)

	return syncer, store, fake
}

func TestSyncRows_BothTargets(t *testing.T) {
	t.Parallel()

	syncer, store, fake := newTestSyncer(t)
	ctx := context.Background()

	report := syncer.SyncRows(ctx, []Row{
		{"vid": "V001", "title": "Sunset", "cut": "_cut01", "EX_ID": "100", "EX_price": "55000"},
		{"vid": "V002", "title": "Harbor", "cut": "_cut02"},
	}, TargetBoth)

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.NotEmpty(t, report.BatchID)

	video, err := store.RetrieveVideoInfo(ctx, "V001")
	require.NoError(t, err)
	assert.Equal(t, "Sunset_cut01", video.Title)

	variant, err := store.RetrieveDownloadVariant(ctx, "V001")
	require.NoError(t, err)
	require.NotNil(t, variant.EXID)
	assert.Equal(t, int64(100), *variant.EXID)

	// V002 carried no tier data, so no variant row exists.
	_, err = store.RetrieveDownloadVariant(ctx, "V002")
	require.Error(t, err)

	assert.Equal(t, 2, fake.ProductCount())
}

func TestSyncRows_StoreOnlySkipsCatalog(t *testing.T) {
	t.Parallel()

	syncer, store, fake := newTestSyncer(t)
	ctx := context.Background()

	report := syncer.SyncRows(ctx, []Row{
		{"vid": "V001", "title": "Sunset", "EX_price": "55000"},
	}, TargetStore)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 0, fake.ProductCount())

	_, err := store.RetrieveVideoInfo(ctx, "V001")
	require.NoError(t, err)
}

func TestSyncRows_CatalogOnlySkipsStore(t *testing.T) {
	t.Parallel()

	syncer, store, fake := newTestSyncer(t)
	ctx := context.Background()

	report := syncer.SyncRows(ctx, []Row{
		{"vid": "V001", "title": "Sunset", "EX_price": "55000"},
	}, TargetCatalog)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, fake.ProductCount())

	count, err := store.CountVideoInfo(ctx, "V001")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSyncRows_RowFailureIsIsolated(t *testing.T) {
	t.Parallel()

	syncer, store, _ := newTestSyncer(t)
	ctx := context.Background()

	report := syncer.SyncRows(ctx, []Row{
		{"title": "no vid here"},
		{"vid": "V002", "title": "Harbor"},
	}, TargetBoth)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed)

	_, err := store.RetrieveVideoInfo(ctx, "V002")
	require.NoError(t, err)

	require.NotEmpty(t, report.Results)
	assert.Equal(t, OutcomeFailed, report.Results[0].Outcome)
	assert.Equal(t, OpNormalize, report.Results[0].Operation)
}

func TestSyncRows_CatalogFailureKeepsStoreWrite(t *testing.T) {
	t.Parallel()

	syncer, store, fake := newTestSyncer(t)
	ctx := context.Background()

	fake.Fail = errors.New("provider unavailable")

	report := syncer.SyncRows(ctx, []Row{
		{"vid": "V001", "title": "Sunset"},
	}, TargetBoth)

	assert.Equal(t, 0, report.Succeeded)
	assert.Equal(t, 1, report.Failed)

	// The store write committed before the catalog step failed.
	_, err := store.RetrieveVideoInfo(ctx, "V001")
	require.NoError(t, err)
}

func TestSyncRows_NilReconcilerReportsSkip(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	syncer := NewSyncer(NewService(db), nil, false)

	report := syncer.SyncRows(context.Background(), []Row{
		{"vid": "V001", "title": "Sunset"},
	}, TargetBoth)

	assert.Equal(t, 1, report.Succeeded)

	var skip *RowResult
	for i := range report.Results {
		if report.Results[i].Operation == OpProduct {
			skip = &report.Results[i]
		}
	}
	require.NotNil(t, skip)
	assert.Equal(t, OutcomeSkipped, skip.Outcome)
	assert.Equal(t, "payments disabled", skip.Detail)
}

func TestSyncRows_SecondRunIsIdempotent(t *testing.T) {
	t.Parallel()

	syncer, _, fake := newTestSyncer(t)
	ctx := context.Background()

	rows := []Row{
		{"vid": "V001", "title": "Sunset", "EX_price": "55000", "4K_price": "11000"},
	}

	first := syncer.SyncRows(ctx, rows, TargetBoth)
	assert.Equal(t, 1, first.Succeeded)

	second := syncer.SyncRows(ctx, rows, TargetBoth)
	assert.Equal(t, 1, second.Succeeded)
	assert.Equal(t, 0, second.Failed)

	assert.Equal(t, 1, fake.ProductCount())

	outcomes := map[string]Outcome{}
	for _, result := range second.Results {
		outcomes[result.Operation] = result.Outcome
	}
	assert.Equal(t, OutcomeUpdated, outcomes[OpStoreVideo])
	assert.Equal(t, OutcomeUpdated, outcomes[OpProduct])
	assert.Equal(t, OutcomeSkipped, outcomes[OpPrice])
}

func TestReportMessage(t *testing.T) {
	t.Parallel()

	report := &Report{Succeeded: 3, Failed: 1}
	assert.Equal(t, "synced 3 rows, 1 failed", report.Message())

	report.add(RowResult{VID: "V001", Operation: OpStoreVideo, Outcome: OutcomeCreated})
	report.addFailed("V002", OpProduct, errors.New("boom"))

	logs := report.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, "video_info created: V001", logs[0])
	assert.Equal(t, "product failed: V002 (boom)", logs[1])
}
