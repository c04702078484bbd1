package http

import (
	"encoding/json"
	"net/http"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
	"github.com/ayush735bahuguna/fake-store-api-cart/internal/service"
)

type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

type checkoutRequest struct {
	CartItems []domain.ReceiptItem `json:"cartItems"`
}

// Checkout recomputes a total over the submitted items and hands back a
// timestamped receipt. Stateless: no persistence, no catalog re-pricing,
// no idempotency key.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CartItems == nil {
		respondError(w, http.StatusBadRequest, "cartItems array required")
		return
	}

	respondJSON(w, http.StatusOK, service.Checkout(req.CartItems))
}
