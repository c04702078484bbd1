package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
	"github.com/ayush735bahuguna/fake-store-api-cart/internal/repository"
)

// ProductFetcher is the slice of the catalog gateway the aggregator needs.
type ProductFetcher interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

// CartService joins persisted cart line items with live catalog data.
type CartService struct {
	repo    repository.CartRepository
	catalog ProductFetcher
	logger  zerolog.Logger
}

func NewCartService(repo repository.CartRepository, catalog ProductFetcher, logger zerolog.Logger) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
	}
}

// GetCart lists all line items, fetches each distinct product exactly once
// for this call, joins them, and totals price*qty over the surviving items.
// Line items whose lookup came back absent are dropped from the result;
// the dedup map lives and dies with this one call, there is no cross-request
// product cache.
func (s *CartService) GetCart(ctx context.Context) (*domain.CartView, error) {
	lineItems, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	distinct := make(map[string]struct{}, len(lineItems))
	for _, li := range lineItems {
		distinct[li.ProductID] = struct{}{}
	}

	products := make(map[string]*domain.Product, len(distinct))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for productID := range distinct {
		g.Go(func() error {
			product, err := s.catalog.GetProduct(gctx, productID)
			if err != nil {
				return err
			}
			mu.Lock()
			products[productID] = product
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view := &domain.CartView{Items: []domain.EnrichedCartItem{}}
	for _, li := range lineItems {
		product := products[li.ProductID]
		if product == nil {
			s.logger.Warn().
				Str("id", li.ID.Hex()).
				Str("productId", li.ProductID).
				Msg("dropping cart item: product lookup failed")
			continue
		}

		enriched := domain.EnrichedCartItem{
			ID:          li.ID.Hex(),
			ProductID:   li.ProductID,
			Name:        product.Title,
			Price:       product.Price,
			Qty:         li.Qty,
			ImageURL:    product.Image,
			Category:    product.Category,
			Description: product.Description,
		}
		if product.Rating != nil {
			rate := product.Rating.Rate
			enriched.Rating = &rate
		}

		view.Items = append(view.Items, enriched)
		view.Total += product.Price * float64(li.Qty)
	}

	return view, nil
}
