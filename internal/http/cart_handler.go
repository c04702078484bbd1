package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
	"github.com/ayush735bahuguna/fake-store-api-cart/internal/repository"
)

// CartReader aggregates the persisted cart into its display-ready form.
type CartReader interface {
	GetCart(ctx context.Context) (*domain.CartView, error)
}

type CartHandler struct {
	store  repository.CartRepository
	carts  CartReader
	logger zerolog.Logger
}

func NewCartHandler(store repository.CartRepository, carts CartReader, logger zerolog.Logger) *CartHandler {
	return &CartHandler{store: store, carts: carts, logger: logger}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// AddItem merges into an existing line item for the same productId or
// creates a new one. The productId is not validated against the catalog.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "ProductId and qty required")
		return
	}
	if req.ProductID == "" || req.Qty <= 0 {
		respondError(w, http.StatusBadRequest, "ProductId and qty required")
		return
	}

	item, err := h.store.AddItem(r.Context(), req.ProductID, req.Qty)
	if err != nil {
		h.logger.Error().Err(err).Str("productId", req.ProductID).Msg("failed to add cart item")
		respondError(w, http.StatusInternalServerError, "Failed to add item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// GetCart returns the aggregate cart with live product details and total.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.carts.GetCart(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load cart")
		respondError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}

	respondJSON(w, http.StatusOK, view)
}

type updateQuantityRequest struct {
	Qty *float64 `json:"qty"`
}

// UpdateQuantity overwrites a line item's quantity. Quantities below 1 are
// rejected; clients that want to drop an item issue a DELETE instead.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Qty == nil || *req.Qty < 1 {
		respondError(w, http.StatusBadRequest, "Quantity must be a number greater than 0")
		return
	}

	item, err := h.store.SetQuantity(r.Context(), id, int(*req.Qty))
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "Cart item not found")
			return
		}
		h.logger.Error().Err(err).Str("id", id).Msg("failed to update quantity")
		respondError(w, http.StatusInternalServerError, "Failed to update quantity")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// RemoveItem deletes a line item. Removal is idempotent: unknown ids still
// succeed.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.RemoveItem(r.Context(), id); err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("failed to remove cart item")
		respondError(w, http.StatusInternalServerError, "Failed to remove item")
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "Item removed"})
}
