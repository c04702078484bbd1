package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartLineItem is one persisted (productId, quantity) pair. The store keeps
// at most one line item per productId: adding a product that is already in
// the cart increments its quantity instead of inserting a second document.
type CartLineItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID string             `bson:"productId" json:"productId"`
	Qty       int                `bson:"qty" json:"qty"`
}

// EnrichedCartItem is a CartLineItem joined with live catalog data at read
// time. Never persisted; it exists only when the product lookup succeeded.
type EnrichedCartItem struct {
	ID          string   `json:"id"`
	ProductID   string   `json:"productId"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Qty         int      `json:"qty"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating"`
}

// CartView is the aggregate cart returned by GET /api/cart.
type CartView struct {
	Items []EnrichedCartItem `json:"items"`
	Total float64            `json:"total"`
}

// ReceiptItem is a client-submitted checkout line, echoed back verbatim on
// the receipt. Only price and qty are read server-side.
type ReceiptItem map[string]interface{}

// Receipt is the mock checkout result. Never persisted server-side.
type Receipt struct {
	Total     float64       `json:"total"`
	Timestamp time.Time     `json:"timestamp"`
	Items     []ReceiptItem `json:"items"`
}
