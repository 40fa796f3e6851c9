package payments

import (
	"context"
	"fmt"
	"sync"
)

// Fake is an in-memory API implementation for tests. It mimics the provider's
// behavior closely enough for reconciliation: opaque generated ids, products
// with metadata, prices with an active flag.
type Fake struct {
	mu       sync.Mutex
	seq      int
	products map[string]*Product
	prices   map[string]*Price

	// Fail, when set, makes every call return this error.
	Fail error
}

var _ API = (*Fake)(nil)

func NewFake() *Fake {
	return &Fake{
		products: map[string]*Product{},
		prices:   map[string]*Price{},
	}
}

func (f *Fake) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s_%06d", prefix, f.seq)
}

func (f *Fake) ListProducts(_ context.Context) ([]*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}

	products := []*Product{}
	for _, p := range f.products {
		clone := *p
		products = append(products, &clone)
	}
	return products, nil
}

func (f *Fake) CreateProduct(_ context.Context, params ProductParams) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}

	p := &Product{
		ID:       f.nextID("prod"),
		Name:     params.Name,
		ImageURL: params.ImageURL,
		Metadata: params.Metadata,
	}
	f.products[p.ID] = p
	clone := *p
	return &clone, nil
}

func (f *Fake) UpdateProduct(_ context.Context, id string, params ProductParams) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}

	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("no such product: %s", id)
	}
	p.Name = params.Name
	if params.ImageURL != "" {
		p.ImageURL = params.ImageURL
	}
	p.Metadata = params.Metadata
	clone := *p
	return &clone, nil
}

func (f *Fake) ListPrices(_ context.Context, productID string) ([]*Price, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}

	prices := []*Price{}
	for _, p := range f.prices {
		if p.ProductID == productID {
			clone := *p
			prices = append(prices, &clone)
		}
	}
	return prices, nil
}

func (f *Fake) CreatePrice(_ context.Context, params PriceParams) (*Price, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return nil, f.Fail
	}

	p := &Price{
		ID:        f.nextID("price"),
		ProductID: params.ProductID,
		Amount:    params.Amount,
		Currency:  params.Currency,
		Nickname:  params.Nickname,
		Active:    true,
	}
	f.prices[p.ID] = p
	clone := *p
	return &clone, nil
}

func (f *Fake) DeactivatePrice(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail != nil {
		return f.Fail
	}

	p, ok := f.prices[id]
	if !ok {
		return fmt.Errorf("no such price: %s", id)
	}
	p.Active = false
	return nil
}

// ActivePrices returns the product's active prices, for assertions.
func (f *Fake) ActivePrices(productID string) []*Price {
	f.mu.Lock()
	defer f.mu.Unlock()

	prices := []*Price{}
	for _, p := range f.prices {
		if p.ProductID == productID && p.Active {
			clone := *p
			prices = append(prices, &clone)
		}
	}
	return prices
}

// ProductCount returns the number of products, for assertions.
func (f *Fake) ProductCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.products)
}
