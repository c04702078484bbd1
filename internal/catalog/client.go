package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
)

// DefaultBaseURL is the public Fake Store API endpoint.
const DefaultBaseURL = "https://fakestoreapi.com"

// Client is a pass-through gateway to the external product catalog.
// No caching, no retries: every call is one upstream request.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL string, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// ListProducts fetches the full catalog. Transport and upstream failures are
// returned to the caller; there are no partial results.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch products: upstream returned %d", resp.StatusCode)
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	return products, nil
}

// GetProduct fetches a single product by id. Absence is a normal outcome:
// any failure (network, not-found, malformed body) yields (nil, nil) and
// callers must treat a nil product as "not available right now".
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/"+productID, nil)
	if err != nil {
		c.logger.Warn().Err(err).Str("productId", productID).Msg("build product request failed")
		return nil, nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("productId", productID).Msg("product fetch failed")
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("productId", productID).Msg("product fetch failed")
		return nil, nil
	}

	var product *domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		c.logger.Warn().Err(err).Str("productId", productID).Msg("product decode failed")
		return nil, nil
	}

	// The upstream API answers unknown ids with a 200 and an empty or null
	// body, so a nil product after a clean decode still means absent.
	return product, nil
}
