package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
)

func TestCheckout_TotalsSubmittedItems(t *testing.T) {
	items := []domain.ReceiptItem{
		{"productId": "1", "name": "Backpack", "price": 50.0, "qty": 2.0},
		{"productId": "2", "name": "T-Shirt", "price": 30.0, "qty": 1.0},
	}

	receipt := Checkout(items)
	assert.InDelta(t, 130, receipt.Total, 0.001)
	// Submitted items come back verbatim, unknown fields included.
	require.Len(t, receipt.Items, 2)
	assert.Equal(t, "Backpack", receipt.Items[0]["name"])
	assert.WithinDuration(t, time.Now(), receipt.Timestamp, time.Minute)
}

func TestCheckout_EmptyItems(t *testing.T) {
	receipt := Checkout([]domain.ReceiptItem{})
	assert.Zero(t, receipt.Total)
	assert.Empty(t, receipt.Items)
}

func TestCheckout_IgnoresNonNumericFields(t *testing.T) {
	items := []domain.ReceiptItem{
		{"price": "not a number", "qty": 2.0},
		{"price": 10.0}, // qty missing
		{"price": 10.0, "qty": 3.0},
	}

	receipt := Checkout(items)
	assert.InDelta(t, 30, receipt.Total, 0.001)
}

func TestCheckout_FreshTimestampPerCall(t *testing.T) {
	items := []domain.ReceiptItem{{"price": 1.0, "qty": 1.0}}

	first := Checkout(items)
	time.Sleep(5 * time.Millisecond)
	second := Checkout(items)

	assert.True(t, second.Timestamp.After(first.Timestamp))
}
