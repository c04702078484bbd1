package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
)

// Catalog is the gateway surface the HTTP layer depends on.
// Consumers define this interface, not the upstream client.
type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

type ProductHandler struct {
	catalog Catalog
	logger  zerolog.Logger
}

func NewProductHandler(catalog Catalog, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// List relays the full upstream catalog, or a 500 when the upstream call
// fails. No partial results.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch products from Fake Store API")
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	respondJSON(w, http.StatusOK, products)
}

// Get relays one product. The gateway reports lookup failures as absence,
// which maps to a 404 here.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	product, err := h.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		h.logger.Error().Err(err).Str("productId", productID).Msg("failed to fetch product")
		respondError(w, http.StatusInternalServerError, "Failed to fetch product")
		return
	}
	if product == nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	respondJSON(w, http.StatusOK, product)
}
