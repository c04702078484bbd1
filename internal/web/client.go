package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
)

// APIClient is the typed HTTP client for the backend API.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *APIClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		if msg.Message == "" {
			msg.Message = http.StatusText(resp.StatusCode)
		}
		return fmt.Errorf("%s %s: %s (%d)", method, path, msg.Message, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *APIClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *APIClient) FetchCart(ctx context.Context) (*domain.CartView, error) {
	var view domain.CartView
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *APIClient) AddItem(ctx context.Context, productID string, qty int) error {
	payload := map[string]interface{}{"productId": productID, "qty": qty}
	return c.do(ctx, http.MethodPost, "/api/cart", payload, nil)
}

func (c *APIClient) UpdateQuantity(ctx context.Context, id string, qty int) error {
	payload := map[string]interface{}{"qty": qty}
	return c.do(ctx, http.MethodPut, "/api/cart/"+id, payload, nil)
}

func (c *APIClient) RemoveItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/cart/"+id, nil, nil)
}

func (c *APIClient) Checkout(ctx context.Context, items []domain.ReceiptItem) (*domain.Receipt, error) {
	payload := map[string]interface{}{"cartItems": items}
	var receipt domain.Receipt
	if err := c.do(ctx, http.MethodPost, "/api/checkout", payload, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}
