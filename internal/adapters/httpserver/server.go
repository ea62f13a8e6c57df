package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/simosh/storefront/internal/adapters/scraper"
	"github.com/simosh/storefront/internal/domain"
	"github.com/simosh/storefront/internal/usecase"
)

type Server struct {
	mux      *http.ServeMux
	catalog  *usecase.CatalogUC
	checkout *usecase.CheckoutUC
	orders   *usecase.OrderUC
	advisor  *usecase.AdvisorUC
	images   *scraper.ImageScraper
	oauthCfg *oauth2.Config

	adminEmail string
	adminPass  string
	jwtSecret  []byte
	sessionKey []byte
}

type Options struct {
	Catalog    *usecase.CatalogUC
	Checkout   *usecase.CheckoutUC
	Orders     *usecase.OrderUC
	Advisor    *usecase.AdvisorUC
	Images     *scraper.ImageScraper
	OAuth      *oauth2.Config
	AdminEmail string
	AdminPass  string
	JWTSecret  string
	SessionKey string
}

func New(opts Options) http.Handler {
	s := &Server{
		mux:        http.NewServeMux(),
		catalog:    opts.Catalog,
		checkout:   opts.Checkout,
		orders:     opts.Orders,
		advisor:    opts.Advisor,
		images:     opts.Images,
		oauthCfg:   opts.OAuth,
		adminEmail: strings.ToLower(strings.TrimSpace(opts.AdminEmail)),
		adminPass:  opts.AdminPass,
		jwtSecret:  []byte(opts.JWTSecret),
		sessionKey: []byte(opts.SessionKey),
	}
	s.routes()
	return Chain(s.mux,
		Logging,
		Recovery,
		RequestID,
		Gzip,
		RateLimit(120),
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)
	s.mux.HandleFunc("/api/categories", s.apiCategories)
	s.mux.HandleFunc("/api/company", s.apiCompany)
	s.mux.HandleFunc("/api/about", s.apiAbout)

	s.mux.HandleFunc("/api/cart", s.handleCart)
	s.mux.HandleFunc("/api/cart/update", s.handleCartUpdate)
	s.mux.HandleFunc("/api/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("/api/promo/validate", s.apiPromoValidate)
	s.mux.HandleFunc("/api/checkout", s.apiCheckout)
	s.mux.HandleFunc("/api/advisor/chat", s.apiAdvisorChat)

	s.mux.HandleFunc("/api/me", s.apiMe)
	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)
	s.mux.HandleFunc("/logout", s.handleLogout)

	s.mux.HandleFunc("/admin/auth", s.handleAdminAuth)
	s.mux.HandleFunc("/admin/logout", s.handleAdminLogout)

	s.mux.HandleFunc("/api/admin/products", s.adminProducts)
	s.mux.HandleFunc("/api/admin/products/", s.adminProductByID)
	s.mux.HandleFunc("/api/admin/categories", s.adminCategories)
	s.mux.HandleFunc("/api/admin/categories/", s.adminCategoryByID)
	s.mux.HandleFunc("/api/admin/promos", s.adminPromos)
	s.mux.HandleFunc("/api/admin/promos/", s.adminPromoByID)
	s.mux.HandleFunc("/api/admin/company", s.adminCompany)
	s.mux.HandleFunc("/api/admin/about", s.adminAbout)
	s.mux.HandleFunc("/api/admin/orders", s.adminOrders)
	s.mux.HandleFunc("/api/admin/orders/", s.adminOrderStatus)
	s.mux.HandleFunc("/api/admin/images/search", s.adminImageSearch)

	s.mux.HandleFunc("/admin/export/orders.xlsx", s.adminExportOrders)
	s.mux.HandleFunc("/admin/export/catalog.xlsx", s.adminExportCatalog)
	s.mux.HandleFunc("/admin/import/catalog", s.adminImportCatalog)
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	list, err := s.catalog.ActiveProducts(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	q := r.URL.Query()
	lang := domain.ParseLanguage(q.Get("lang"))
	catFilter := strings.TrimSpace(q.Get("category"))
	search := strings.ToLower(strings.TrimSpace(q.Get("q")))

	now := time.Now()
	out := []map[string]any{}
	for _, p := range list {
		if catFilter != "" && p.CategoryID.String() != catFilter {
			continue
		}
		if search != "" {
			hay := strings.ToLower(p.Name.In(lang) + " " + p.Description.In(lang) + " " + p.SKU)
			if !strings.Contains(hay, search) {
				continue
			}
		}
		out = append(out, productView(p, lang, now))
	}
	writeJSON(w, 200, map[string]any{"products": out, "lang": lang})
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/products/"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	p, err := s.catalog.ProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.storeError(w, err)
		return
	}
	lang := domain.ParseLanguage(r.URL.Query().Get("lang"))
	writeJSON(w, 200, productView(*p, lang, time.Now()))
}

// productView flattens the localized fields for the requested language and
// carries the effective price next to the base price.
func productView(p domain.Product, lang domain.Language, now time.Time) map[string]any {
	v := map[string]any{
		"id":             p.ID,
		"sku":            p.SKU,
		"name":           p.Name.In(lang),
		"description":    p.Description.In(lang),
		"price":          p.Price,
		"effectivePrice": domain.EffectivePrice(p, now),
		"stock":          p.Stock,
		"categoryId":     p.CategoryID,
		"image":          p.Image,
	}
	if p.Discount != nil && p.Discount.Active {
		v["discount"] = p.Discount
	}
	return v
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	db, err := s.catalog.Database(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	lang := domain.ParseLanguage(r.URL.Query().Get("lang"))
	out := []map[string]any{}
	for _, c := range db.Categories {
		out = append(out, map[string]any{"id": c.ID, "name": c.Name.In(lang)})
	}
	writeJSON(w, 200, map[string]any{"categories": out})
}

func (s *Server) apiCompany(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	db, err := s.catalog.Database(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, db.CompanyInfo)
}

func (s *Server) apiAbout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	db, err := s.catalog.Database(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, db.About)
}

func (s *Server) apiAdvisorChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		Prompt   string `json:"prompt"`
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "prompt", 400)
		return
	}
	lang := domain.ParseLanguage(req.Language)
	// never an error: failures come back as a localized apology
	answer := s.advisor.Ask(r.Context(), req.Prompt, lang)
	writeJSON(w, 200, map[string]any{"answer": answer, "language": lang})
}

// storeError maps a document-store failure to the one blocking error the UI
// shows with a retry action.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("document store unavailable")
	writeJSON(w, http.StatusServiceUnavailable, map[string]any{
		"error": "persistence",
		"retry": true,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
