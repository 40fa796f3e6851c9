package payments

import (
	"context"
	"time"

	"github.com/footagedesk/catalogsync/pkg/models"
	"github.com/pkg/errors"
)

// Currency is fixed for the storefront; amounts are yen, already in minor
// units.
const Currency = "jpy"

// ProductResult reports whether reconciliation created or updated the remote
// product for a vid.
type ProductResult struct {
	Product *Product
	Created bool
}

// PriceResult reports the action taken for one tier.
type PriceResult struct {
	Tier    string
	Amount  int64
	Skipped bool
}

// Reconciler makes the remote product/price catalog match locally
// authoritative video records.
type Reconciler struct {
	api          API
	imageBaseURL string
}

func NewReconciler(api API, imageBaseURL string) *Reconciler {
	return &Reconciler{api: api, imageBaseURL: imageBaseURL}
}

// ReconcileProduct ensures exactly one remote product represents the video.
// The product is found by the vid stored in its metadata; an exact display
// name match is kept as a fallback for products created before metadata
// tagging. The scan covers the full catalog, so a miss really means the
// product does not exist. Two concurrent syncs of the same vid can still
// both miss and create duplicates; there is no mutual exclusion around
// find-or-create.
func (r *Reconciler) ReconcileProduct(ctx context.Context, video *models.VideoInfo) (*ProductResult, error) {
	products, err := r.api.ListProducts(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	name := video.Title + "_" + video.VID
	params := ProductParams{
		Name: name,
		Metadata: map[string]string{
			"vid":         video.VID,
			"cut":         video.Cut,
			"last_synced": time.Now().Format("2006-01-02"),
		},
	}
	if r.imageBaseURL != "" {
		params.ImageURL = r.imageBaseURL + "/" + video.VID + ".jpg"
	}

	var found *Product
	for _, p := range products {
		if p.Metadata["vid"] == video.VID {
			found = p
			break
		}
	}
	if found == nil {
		for _, p := range products {
			if p.Name == name {
				found = p
				break
			}
		}
	}

	if found != nil {
		updated, err := r.api.UpdateProduct(ctx, found.ID, params)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		return &ProductResult{Product: updated}, nil
	}

	created, err := r.api.CreateProduct(ctx, params)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &ProductResult{Product: created, Created: true}, nil
}

// ReconcilePrices makes the product's active prices match the supplied tier
// set. A tier whose active price already matches both nickname and amount is
// left alone; otherwise the active prices carrying that nickname are
// deactivated before the replacement is created, so at most one active price
// per tier survives. Tiers absent from the input are not touched.
func (r *Reconciler) ReconcilePrices(ctx context.Context, productID string, tiers []TierPrice) ([]PriceResult, error) {
	if len(tiers) == 0 {
		return nil, nil
	}

	results := make([]PriceResult, 0, len(tiers))
	for _, tier := range tiers {
		prices, err := r.api.ListPrices(ctx, productID)
		if err != nil {
			return results, errors.WithStack(err)
		}

		matched := false
		stale := []*Price{}
		for _, p := range prices {
			if !p.Active || p.Nickname != tier.Tier {
				continue
			}
			if p.Amount == tier.Amount {
				matched = true
			} else {
				stale = append(stale, p)
			}
		}

		if matched {
			results = append(results, PriceResult{Tier: tier.Tier, Amount: tier.Amount, Skipped: true})
			continue
		}

		for _, p := range stale {
			if err := r.api.DeactivatePrice(ctx, p.ID); err != nil {
				return results, errors.WithStack(err)
			}
		}

		_, err = r.api.CreatePrice(ctx, PriceParams{
			ProductID: productID,
			Amount:    tier.Amount,
			Currency:  Currency,
			Nickname:  tier.Tier,
		})
		if err != nil {
			return results, errors.WithStack(err)
		}
		results = append(results, PriceResult{Tier: tier.Tier, Amount: tier.Amount})
	}

	return results, nil
}
