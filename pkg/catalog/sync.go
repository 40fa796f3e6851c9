package catalog

import (
	"context"

	"github.com/footagedesk/catalogsync/pkg/payments"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Target selects which backends a sync batch writes to.
type Target string

const (
	TargetStore   Target = "store"
	TargetCatalog Target = "catalog"
	TargetBoth    Target = "both"
)

// ParseTarget normalizes a caller-supplied target flag. The old admin tool
// named the targets after the backing vendors; those aliases stay accepted.
func ParseTarget(s string) (Target, error) {
	switch s {
	case "store", "supabase":
		return TargetStore, nil
	case "catalog", "stripe":
		return TargetCatalog, nil
	case "both", "":
		return TargetBoth, nil
	}
	return "", errors.Errorf("unknown update target %q", s)
}

func (t Target) wantsStore() bool {
	return t == TargetStore || t == TargetBoth
}

func (t Target) wantsCatalog() bool {
	return t == TargetCatalog || t == TargetBoth
}

// Syncer runs the catalog synchronization procedure: normalize each row, then
// write the selected backends. Rows are processed strictly sequentially, and
// every failure is isolated to its row.
type Syncer struct {
	store      *Service
	reconciler *payments.Reconciler // nil when no payment key is configured
	strict     bool
}

func NewSyncer(store *Service, reconciler *payments.Reconciler, strictStructuredFields bool) *Syncer {
	return &Syncer{
		store:      store,
		reconciler: reconciler,
		strict:     strictStructuredFields,
	}
}

// SyncRows processes the batch and returns the per-row report. It never
// returns an error: failures land in the report.
func (s *Syncer) SyncRows(ctx context.Context, rows []Row, target Target) *Report {
	report := &Report{BatchID: uuid.NewString()}
	for _, row := range rows {
		if s.syncRow(ctx, row, target, report) {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report
}

func (s *Syncer) syncRow(ctx context.Context, row Row, target Target, report *Report) bool {
	normalized, err := NormalizeRow(row, NormalizeOptions{StrictStructuredFields: s.strict})
	if err != nil {
		report.addFailed(cellString(row["vid"]), OpNormalize, err)
		return false
	}

	vid := normalized.Video.VID
	for _, warning := range normalized.Warnings {
		report.add(RowResult{VID: vid, Operation: OpNormalize, Outcome: OutcomeSuccess, Detail: warning})
	}

	ok := true
	if target.wantsStore() {
		ok = s.syncStore(ctx, normalized, report) && ok
	}
	if target.wantsCatalog() {
		ok = s.syncCatalog(ctx, normalized, report) && ok
	}
	return ok
}

func (s *Syncer) syncStore(ctx context.Context, normalized *NormalizedRow, report *Report) bool {
	vid := normalized.Video.VID

	created, err := s.store.UpsertVideoInfo(ctx, normalized.Video)
	if err != nil {
		report.addFailed(vid, OpStoreVideo, err)
		return false
	}
	report.add(RowResult{VID: vid, Operation: OpStoreVideo, Outcome: storeOutcome(created)})

	if normalized.Variant == nil {
		return true
	}

	created, err = s.store.UpsertDownloadVariant(ctx, normalized.Variant)
	if err != nil {
		// The video_info write above stays committed; partial progress is
		// reported, not rolled back.
		report.addFailed(vid, OpStoreVariant, err)
		return false
	}
	report.add(RowResult{VID: vid, Operation: OpStoreVariant, Outcome: storeOutcome(created)})
	return true
}

func (s *Syncer) syncCatalog(ctx context.Context, normalized *NormalizedRow, report *Report) bool {
	vid := normalized.Video.VID

	if s.reconciler == nil {
		report.add(RowResult{VID: vid, Operation: OpProduct, Outcome: OutcomeSkipped, Detail: "payments disabled"})
		return true
	}

	productResult, err := s.reconciler.ReconcileProduct(ctx, normalized.Video)
	if err != nil {
		report.addFailed(vid, OpProduct, err)
		return false
	}
	report.add(RowResult{VID: vid, Operation: OpProduct, Outcome: storeOutcome(productResult.Created)})

	priceResults, err := s.reconciler.ReconcilePrices(ctx, productResult.Product.ID, normalized.Prices)
	for _, pr := range priceResults {
		outcome := OutcomeCreated
		if pr.Skipped {
			outcome = OutcomeSkipped
		}
		report.add(RowResult{VID: vid, Operation: OpPrice, Outcome: outcome, Detail: pr.Tier})
	}
	if err != nil {
		report.addFailed(vid, OpPrice, err)
		return false
	}
	return true
}

func storeOutcome(created bool) Outcome {
	if created {
		return OutcomeCreated
	}
	return OutcomeUpdated
}
