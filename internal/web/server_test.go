package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
)

func newTestServer(t *testing.T, backend *stubBackend) (*Server, *CartState) {
	t.Helper()
	srv := backend.server(t)
	api := NewAPIClient(srv.URL)
	state := NewCartState(api, zerolog.Nop())
	state.delay = 20 * time.Millisecond

	server, err := NewServer(api, state, zerolog.Nop())
	require.NoError(t, err)
	return server, state
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestProductsPage_RendersCatalog(t *testing.T) {
	backend := &stubBackend{products: []domain.Product{
		{ID: 1, Title: "Backpack", Price: 109.95, Image: "https://img/1.jpg"},
		{ID: 2, Title: "T-Shirt", Price: 22.3, Image: "https://img/2.jpg"},
	}}
	server, _ := newTestServer(t, backend)
	routes := server.Routes()

	rec := get(t, routes, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Backpack")
	assert.Contains(t, rec.Body.String(), "T-Shirt")
}

func TestProductsPage_UpstreamFailure(t *testing.T) {
	backend := &stubBackend{failList: true}
	server, _ := newTestServer(t, backend)

	rec := get(t, server.Routes(), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load products")
}

func TestCartPage_ShowsLocalState(t *testing.T) {
	backend := &stubBackend{}
	server, state := newTestServer(t, backend)
	state.items = []domain.EnrichedCartItem{enriched("a", "1", 100, 5)}

	rec := get(t, server.Routes(), "/cart")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "item 1")
	assert.Contains(t, rec.Body.String(), "₹500.00")
}

func TestAddForm_RedirectsToCart(t *testing.T) {
	backend := &stubBackend{}
	server, _ := newTestServer(t, backend)

	rec := postForm(t, server.Routes(), "/cart/add", url.Values{
		"productId": {"1"},
		"title":     {"Backpack"},
		"price":     {"109.95"},
		"qty":       {"2"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
	assert.Equal(t, []addCall{{ProductID: "1", Qty: 2}}, backend.addCalls())
}

func TestCheckout_ValidatesForm(t *testing.T) {
	cases := []struct {
		name    string
		form    url.Values
		items   []domain.EnrichedCartItem
		wantMsg string
	}{
		{
			name:    "missing fields",
			form:    url.Values{"name": {""}, "email": {""}},
			items:   []domain.EnrichedCartItem{enriched("a", "1", 10, 1)},
			wantMsg: "Please fill in all fields",
		},
		{
			name:    "bad email",
			form:    url.Values{"name": {"Ada"}, "email": {"not-an-email"}},
			items:   []domain.EnrichedCartItem{enriched("a", "1", 10, 1)},
			wantMsg: "Please enter a valid email address",
		},
		{
			name:    "empty cart",
			form:    url.Values{"name": {"Ada"}, "email": {"ada@example.com"}},
			wantMsg: "Cart is empty.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &stubBackend{}
			server, state := newTestServer(t, backend)
			state.items = tc.items

			rec := postForm(t, server.Routes(), "/checkout", tc.form)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.wantMsg)
			assert.Empty(t, backend.checkouts, "no checkout call on validation failure")
		})
	}
}

func TestCheckout_RendersReceiptAndClearsCart(t *testing.T) {
	backend := &stubBackend{}
	server, state := newTestServer(t, backend)
	state.items = []domain.EnrichedCartItem{
		enriched("a", "1", 50, 2),
		enriched("b", "2", 30, 1),
	}

	rec := postForm(t, server.Routes(), "/checkout", url.Values{
		"name":  {"Ada"},
		"email": {"ada@example.com"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Order Receipt")
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "₹130.00")

	require.Len(t, backend.checkouts, 1)
	assert.Len(t, backend.checkouts[0], 2)
	assert.ElementsMatch(t, []string{"a", "b"}, backend.deleteCalls())
	assert.Empty(t, state.Items())
}

// The receipt exists only in the checkout response; navigating to /receipt
// directly has no state to show.
func TestReceiptPage_WithoutState(t *testing.T) {
	backend := &stubBackend{}
	server, _ := newTestServer(t, backend)

	rec := get(t, server.Routes(), "/receipt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No receipt found")
}

func TestUnknownPathIs404(t *testing.T) {
	backend := &stubBackend{}
	server, _ := newTestServer(t, backend)

	rec := get(t, server.Routes(), "/no-such-page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
