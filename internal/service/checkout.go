package service

import (
	"time"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
)

// Checkout builds a receipt from client-submitted items. The total is
// recomputed server-side from the submitted prices, but the items are not
// cross-checked against the catalog or the cart store, nothing is persisted,
// and resubmission simply yields a fresh receipt with a new timestamp.
func Checkout(items []domain.ReceiptItem) domain.Receipt {
	var total float64
	for _, item := range items {
		total += numberField(item, "price") * numberField(item, "qty")
	}

	return domain.Receipt{
		Total:     total,
		Timestamp: time.Now().UTC(),
		Items:     items,
	}
}

func numberField(item domain.ReceiptItem, key string) float64 {
	v, ok := item[key].(float64)
	if !ok {
		return 0
	}
	return v
}
