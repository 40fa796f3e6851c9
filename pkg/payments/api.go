// Package payments reconciles the storefront's remote product and price
// catalog against locally authoritative video records. The provider client is
// injected behind a narrow interface so the synchronization procedure can be
// exercised against an in-memory double.
package payments

import "context"

// Product is the provider's product record, logically keyed by the vid stored
// in its metadata.
type Product struct {
	ID       string
	Name     string
	ImageURL string
	Metadata map[string]string
}

// Price is one provider price belonging to a product. Amount is in minor
// units; Nickname carries the quality tier.
type Price struct {
	ID        string
	ProductID string
	Amount    int64
	Currency  string
	Nickname  string
	Active    bool
}

type ProductParams struct {
	Name     string
	ImageURL string
	Metadata map[string]string
}

type PriceParams struct {
	ProductID string
	Amount    int64
	Currency  string
	Nickname  string
}

// API is the subset of the payment provider the reconciler needs.
// Implementations must page through the full product catalog on ListProducts;
// a single-page scan produces false "not found" results on large catalogs.
type API interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	CreateProduct(ctx context.Context, params ProductParams) (*Product, error)
	UpdateProduct(ctx context.Context, id string, params ProductParams) (*Product, error)
	ListPrices(ctx context.Context, productID string) ([]*Price, error)
	CreatePrice(ctx context.Context, params PriceParams) (*Price, error)
	DeactivatePrice(ctx context.Context, id string) error
}

// TierPrice is one (quality tier, minor-unit amount) pair supplied by a
// catalog row.
type TierPrice struct {
	Tier   string
	Amount int64
}
