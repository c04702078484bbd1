package repository

import (
	"context"
	"errors"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
)

var ErrItemNotFound = errors.New("cart item not found")

// CartRepository defines the interface for cart line-item persistence.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	// AddItem upserts the line item for productID, incrementing its quantity
	// by qty, and returns the resulting document.
	AddItem(ctx context.Context, productID string, qty int) (*domain.CartLineItem, error)
	// ListItems returns every persisted line item in no particular order.
	ListItems(ctx context.Context) ([]domain.CartLineItem, error)
	// SetQuantity overwrites the quantity of the line item with the given id.
	// Returns ErrItemNotFound if no such item exists.
	SetQuantity(ctx context.Context, id string, qty int) (*domain.CartLineItem, error)
	// RemoveItem deletes the line item with the given id. Deleting an id
	// that does not exist is not an error.
	RemoveItem(ctx context.Context, id string) error
}
