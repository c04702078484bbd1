package web

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
)

const defaultDebounce = 500 * time.Millisecond

// CartState is the shared cart state container behind every view. It applies
// mutations to local state first, issues the backend call, and reverts to the
// snapshot captured before the mutation when the call fails. Quantity updates
// are debounced per line-item id, so the backend lags the display until a
// quantity settles for one debounce window.
type CartState struct {
	api    *APIClient
	logger zerolog.Logger
	delay  time.Duration

	mu     sync.Mutex
	items  []domain.EnrichedCartItem
	timers map[string]*time.Timer
}

func NewCartState(api *APIClient, logger zerolog.Logger) *CartState {
	return &CartState{
		api:    api,
		logger: logger,
		delay:  defaultDebounce,
		timers: make(map[string]*time.Timer),
	}
}

// Refresh replaces local state with the authoritative aggregate cart.
func (s *CartState) Refresh(ctx context.Context) error {
	view, err := s.api.FetchCart(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load cart")
		return err
	}

	s.mu.Lock()
	s.items = view.Items
	s.mu.Unlock()
	return nil
}

// Items returns a copy of the current local cart.
func (s *CartState) Items() []domain.EnrichedCartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.EnrichedCartItem(nil), s.items...)
}

// Total sums price*qty over the local cart.
func (s *CartState) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Qty)
	}
	return total
}

// AddToCart merges qty into an existing line for the same product or appends
// a new line under a temporary local id, then issues the backend add and
// re-fetches the authoritative cart. On failure the pre-update snapshot is
// restored.
func (s *CartState) AddToCart(ctx context.Context, product domain.Product, qty int) error {
	if qty <= 0 {
		qty = 1
	}
	productID := strconv.FormatInt(product.ID, 10)

	s.mu.Lock()
	prev := append([]domain.EnrichedCartItem(nil), s.items...)
	merged := false
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		item := domain.EnrichedCartItem{
			ID:          "local-" + uuid.NewString(),
			ProductID:   productID,
			Name:        product.Title,
			Price:       product.Price,
			Qty:         qty,
			ImageURL:    product.Image,
			Category:    product.Category,
			Description: product.Description,
		}
		if product.Rating != nil {
			rate := product.Rating.Rate
			item.Rating = &rate
		}
		s.items = append(s.items, item)
	}
	s.mu.Unlock()

	if err := s.api.AddItem(ctx, productID, qty); err != nil {
		s.logger.Error().Err(err).Str("productId", productID).Msg("failed to add to cart")
		s.restore(prev)
		return err
	}

	// Reconcile: the authoritative cart replaces any temporary local id.
	return s.Refresh(ctx)
}

// RemoveFromCart drops the line locally, cancels its pending debounced
// write, and issues the backend delete.
func (s *CartState) RemoveFromCart(ctx context.Context, id string) error {
	s.mu.Lock()
	prev := append([]domain.EnrichedCartItem(nil), s.items...)
	kept := s.items[:0:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.cancelTimerLocked(id)
	s.mu.Unlock()

	if err := s.api.RemoveItem(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("id", id).Msg("failed to remove from cart")
		s.restore(prev)
		return err
	}
	return nil
}

// UpdateQty sets the local quantity immediately and schedules a debounced
// backend write. Repeated updates to the same id within the window collapse
// into one write carrying the latest quantity. Quantities at or below zero
// turn into a remove.
func (s *CartState) UpdateQty(ctx context.Context, id string, qty int) error {
	if qty <= 0 {
		return s.RemoveFromCart(ctx, id)
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Qty = qty
			break
		}
	}
	if t, ok := s.timers[id]; ok {
		t.Stop()
	}
	s.timers[id] = time.AfterFunc(s.delay, func() {
		s.flushQuantity(id, qty)
	})
	s.mu.Unlock()
	return nil
}

func (s *CartState) flushQuantity(id string, qty int) {
	s.mu.Lock()
	delete(s.timers, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.api.UpdateQuantity(ctx, id, qty); err != nil {
		s.logger.Error().Err(err).Str("id", id).Int("qty", qty).Msg("failed to update quantity")
	}
}

// ClearCart empties the local cart, cancels every pending debounced write,
// and deletes the previous items on the backend in parallel. If any delete
// fails the snapshot is restored.
func (s *CartState) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	prev := append([]domain.EnrichedCartItem(nil), s.items...)
	s.items = nil
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for _, item := range prev {
		g.Go(func() error {
			return s.api.RemoveItem(gctx, item.ID)
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear cart")
		s.restore(prev)
		return err
	}
	return nil
}

// restore puts back the snapshot captured before an optimistic update.
// Edits made while the failed request was in flight are overwritten.
func (s *CartState) restore(prev []domain.EnrichedCartItem) {
	s.mu.Lock()
	s.items = prev
	s.mu.Unlock()
}

// cancelTimerLocked stops and forgets the debounce timer for id, if any.
// The caller must hold s.mu.
func (s *CartState) cancelTimerLocked(id string) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}
