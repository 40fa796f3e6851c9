package payments

import (
	"context"

	"github.com/pkg/errors"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

const listPageSize = 100

// StripeAPI implements API against the Stripe product/price catalog.
type StripeAPI struct {
	client *client.API
}

var _ API = (*StripeAPI)(nil)

func NewStripeAPI(secretKey string) *StripeAPI {
	return &StripeAPI{client: client.New(secretKey, nil)}
}

// ListProducts pages through the entire product catalog.
func (s *StripeAPI) ListProducts(ctx context.Context) ([]*Product, error) {
	params := &stripe.ProductListParams{
		ListParams: stripe.ListParams{
			Context: ctx,
			Limit:   stripe.Int64(listPageSize),
		},
	}

	products := []*Product{}
	iter := s.client.Products.List(params)
	for iter.Next() {
		products = append(products, productFromStripe(iter.Product()))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return products, nil
}

func (s *StripeAPI) CreateProduct(ctx context.Context, params ProductParams) (*Product, error) {
	p, err := s.client.Products.New(productParamsToStripe(ctx, params))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return productFromStripe(p), nil
}

func (s *StripeAPI) UpdateProduct(ctx context.Context, id string, params ProductParams) (*Product, error) {
	p, err := s.client.Products.Update(id, productParamsToStripe(ctx, params))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return productFromStripe(p), nil
}

func (s *StripeAPI) ListPrices(ctx context.Context, productID string) ([]*Price, error) {
	params := &stripe.PriceListParams{
		ListParams: stripe.ListParams{
			Context: ctx,
			Limit:   stripe.Int64(listPageSize),
		},
		Product: stripe.String(productID),
	}

	prices := []*Price{}
	iter := s.client.Prices.List(params)
	for iter.Next() {
		prices = append(prices, priceFromStripe(iter.Price()))
	}
	if err := iter.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return prices, nil
}

func (s *StripeAPI) CreatePrice(ctx context.Context, params PriceParams) (*Price, error) {
	p, err := s.client.Prices.New(&stripe.PriceParams{
		Params:     stripe.Params{Context: ctx},
		Product:    stripe.String(params.ProductID),
		UnitAmount: stripe.Int64(params.Amount),
		Currency:   stripe.String(params.Currency),
		Nickname:   stripe.String(params.Nickname),
		Active:     stripe.Bool(true),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return priceFromStripe(p), nil
}

func (s *StripeAPI) DeactivatePrice(ctx context.Context, id string) error {
	_, err := s.client.Prices.Update(id, &stripe.PriceParams{
		Params: stripe.Params{Context: ctx},
		Active: stripe.Bool(false),
	})
	return errors.WithStack(err)
}

func productParamsToStripe(ctx context.Context, params ProductParams) *stripe.ProductParams {
	p := &stripe.ProductParams{
		Params: stripe.Params{Context: ctx},
		Name:   stripe.String(params.Name),
	}
	if params.ImageURL != "" {
		p.Images = stripe.StringSlice([]string{params.ImageURL})
	}
	for k, v := range params.Metadata {
		p.AddMetadata(k, v)
	}
	return p
}

func productFromStripe(p *stripe.Product) *Product {
	imageURL := ""
	if len(p.Images) > 0 {
		imageURL = p.Images[0]
	}
	return &Product{
		ID:       p.ID,
		Name:     p.Name,
		ImageURL: imageURL,
		Metadata: p.Metadata,
	}
}

func priceFromStripe(p *stripe.Price) *Price {
	productID := ""
	if p.Product != nil {
		productID = p.Product.ID
	}
	return &Price{
		ID:        p.ID,
		ProductID: productID,
		Amount:    p.UnitAmount,
		Currency:  string(p.Currency),
		Nickname:  p.Nickname,
		Active:    p.Active,
	}
}
