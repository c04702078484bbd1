package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ayush735bahuguna/fake-store-api-cart/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Server renders the four routed views (products, cart, checkout, receipt)
// over the shared cart state container.
type Server struct {
	tpl    *template.Template
	api    *APIClient
	cart   *CartState
	logger zerolog.Logger
}

func NewServer(api *APIClient, cart *CartState, logger zerolog.Logger) (*Server, error) {
	tpl, err := template.New("").Funcs(template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
		"line":  func(price float64, qty int) float64 { return price * float64(qty) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Server{tpl: tpl, api: api, cart: cart, logger: logger}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleProducts)
	mux.HandleFunc("/cart", s.handleCart)
	mux.HandleFunc("/cart/add", s.handleAdd)
	mux.HandleFunc("/cart/update", s.handleUpdate)
	mux.HandleFunc("/cart/remove", s.handleRemove)
	mux.HandleFunc("/cart/clear", s.handleClear)
	mux.HandleFunc("/checkout", s.handleCheckout)
	mux.HandleFunc("/receipt", s.handleReceipt)
	return mux
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.tpl.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("template render error")
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

type productsView struct {
	Products  []domain.Product
	CartCount int
	Error     string
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	view := productsView{CartCount: len(s.cart.Items())}
	products, err := s.api.ListProducts(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load products")
		view.Error = "Failed to load products"
	}
	view.Products = products
	s.render(w, "products.html", view)
}

type cartViewData struct {
	Items []domain.EnrichedCartItem
	Total float64
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	s.render(w, "cart.html", cartViewData{Items: s.cart.Items(), Total: s.cart.Total()})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	productID, _ := strconv.ParseInt(r.Form.Get("productId"), 10, 64)
	price, _ := strconv.ParseFloat(r.Form.Get("price"), 64)
	qty, _ := strconv.Atoi(r.Form.Get("qty"))
	if qty <= 0 {
		qty = 1
	}

	product := domain.Product{
		ID:    productID,
		Title: r.Form.Get("title"),
		Price: price,
		Image: r.Form.Get("image"),
	}

	// Failures revert local state and are logged inside the container; the
	// view simply shows whatever state survived.
	_ = s.cart.AddToCart(r.Context(), product, qty)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.Form.Get("id")
	qty, _ := strconv.Atoi(r.Form.Get("qty"))
	_ = s.cart.UpdateQty(r.Context(), id, qty)
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_ = s.cart.RemoveFromCart(r.Context(), r.Form.Get("id"))
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	_ = s.cart.ClearCart(r.Context())
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

type checkoutView struct {
	Items []domain.EnrichedCartItem
	Total float64
	Name  string
	Email string
	Error string
}

type receiptView struct {
	Receipt *domain.Receipt
	Name    string
	Email   string
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	view := checkoutView{Items: s.cart.Items(), Total: s.cart.Total()}

	if r.Method != http.MethodPost {
		s.render(w, "checkout.html", view)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view.Name = r.Form.Get("name")
	view.Email = r.Form.Get("email")

	switch {
	case view.Name == "" || view.Email == "":
		view.Error = "Please fill in all fields"
	case !emailPattern.MatchString(view.Email):
		view.Error = "Please enter a valid email address"
	case len(view.Items) == 0:
		view.Error = "Cart is empty."
	}
	if view.Error != "" {
		s.render(w, "checkout.html", view)
		return
	}

	items := make([]domain.ReceiptItem, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, domain.ReceiptItem{
			"id":        item.ID,
			"productId": item.ProductID,
			"name":      item.Name,
			"price":     item.Price,
			"qty":       item.Qty,
			"imageUrl":  item.ImageURL,
		})
	}

	receipt, err := s.api.Checkout(r.Context(), items)
	if err != nil {
		s.logger.Error().Err(err).Msg("checkout failed")
		view.Error = "Failed to submit order. Please try again."
		s.render(w, "checkout.html", view)
		return
	}

	if err := s.cart.ClearCart(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("cart clear after checkout failed")
	}

	// The receipt lives only in this response; it is not persisted anywhere
	// and a later GET /receipt has nothing to show.
	s.render(w, "receipt.html", receiptView{Receipt: receipt, Name: view.Name, Email: view.Email})
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	s.render(w, "receipt.html", receiptView{})
}
