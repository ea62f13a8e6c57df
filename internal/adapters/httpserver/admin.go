package httpserver

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/simosh/storefront/internal/domain"
)

// handleAdminAuth checks the configured credentials and issues a short-lived
// JWT cookie. Sessions live only in that cookie: a restart or cleared cookie
// means logging in again, on purpose.
func (s *Server) handleAdminAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body", 400)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !secureCompare(email, s.adminEmail) || !secureCompare(req.Password, s.adminPass) {
		http.Error(w, "unauthorized", 401)
		return
	}
	exp := time.Now().Add(6 * time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  email,
		"role": "admin",
		"iss":  "simosh",
		"iat":  time.Now().Unix(),
		"exp":  exp.Unix(),
	})
	signed, err := tok.SignedString(s.jwtSecret)
	if err != nil {
		http.Error(w, "token", 500)
		return
	}
	secure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{Name: "admin_token", Value: signed, Path: "/", MaxAge: 60 * 60 * 6, HttpOnly: true, Secure: secure, SameSite: http.SameSiteStrictMode})
	writeJSON(w, 200, map[string]any{"token": signed, "exp": exp.Unix(), "email": email})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	secure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	http.SetCookie(w, &http.Cookie{Name: "admin_token", Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: secure, SameSite: http.SameSiteStrictMode})
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	raw := ""
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		raw = strings.TrimSpace(auth[7:])
	} else if c, err := r.Cookie("admin_token"); err == nil {
		raw = c.Value
	}
	if raw == "" {
		http.Error(w, "unauthorized", 401)
		return false
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !tok.Valid {
		http.Error(w, "unauthorized", 401)
		return false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "admin" {
		http.Error(w, "unauthorized", 401)
		return false
	}
	return true
}

func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) adminProducts(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		db, err := s.catalog.Database(r.Context())
		if err != nil {
			s.storeError(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"products": db.Products})
	case http.MethodPost:
		var p domain.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "body", 400)
			return
		}
		if err := s.catalog.SaveProduct(r.Context(), &p); err != nil {
			s.storeError(w, err)
			return
		}
		writeJSON(w, 200, p)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) adminProductByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/admin/products/"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.catalog.DeleteProduct(r.Context(), id); err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "deleted"})
}

func (s *Server) adminCategories(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var c domain.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "body", 400)
		return
	}
	if err := s.catalog.SaveCategory(r.Context(), &c); err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, c)
}

func (s *Server) adminCategoryByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/admin/categories/"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.catalog.DeleteCategory(r.Context(), id); err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "deleted"})
}

func (s *Server) adminPromos(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		db, err := s.catalog.Database(r.Context())
		if err != nil {
			s.storeError(w, err)
			return
		}
		writeJSON(w, 200, map[string]any{"promoCodes": db.PromoCodes})
	case http.MethodPost:
		var p domain.PromoCode
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "body", 400)
			return
		}
		if strings.TrimSpace(p.Code) == "" {
			http.Error(w, "code", 400)
			return
		}
		if err := s.catalog.SavePromo(r.Context(), &p); err != nil {
			s.storeError(w, err)
			return
		}
		writeJSON(w, 200, p)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) adminPromoByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodDelete {
		http.Error(w, "method", 405)
		return
	}
	id, err := uuid.Parse(strings.TrimPrefix(r.URL.Path, "/api/admin/promos/"))
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	if err := s.catalog.DeletePromo(r.Context(), id); err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "deleted"})
}

func (s *Server) adminCompany(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPut {
		http.Error(w, "method", 405)
		return
	}
	var info domain.CompanyInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		http.Error(w, "body", 400)
		return
	}
	if err := s.catalog.UpdateCompanyInfo(r.Context(), info); err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, info)
}

func (s *Server) adminAbout(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPut {
		http.Error(w, "method", 405)
		return
	}
	var about domain.About
	if err := json.NewDecoder(r.Body).Decode(&about); err != nil {
		http.Error(w, "body", 400)
		return
	}
	if err := s.catalog.UpdateAbout(r.Context(), about); err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, about)
}

func (s *Server) adminOrders(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	list, err := s.orders.List(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, 200, map[string]any{"orders": list})
}

// adminOrderStatus handles POST /api/admin/orders/{id}/status. The status is
// overwritten as-is; reverting COMPLETED or CANCELLED back to PENDING is the
// supported re-review path.
func (s *Server) adminOrderStatus(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/orders/")
	idStr, ok := strings.CutSuffix(rest, "/status")
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body", 400)
		return
	}
	if err := s.orders.SetStatus(r.Context(), id, domain.OrderStatus(strings.ToUpper(req.Status))); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Warn().Err(err).Msg("set order status")
		http.Error(w, "status", 400)
		return
	}
	writeJSON(w, 200, map[string]any{"status": "ok"})
}

func (s *Server) adminImageSearch(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	q := r.URL.Query().Get("q")
	max, _ := strconv.Atoi(r.URL.Query().Get("max"))
	images, err := s.images.SearchImages(r.Context(), q, max)
	if err != nil {
		writeJSON(w, 502, map[string]any{"error": "image_search", "detail": err.Error()})
		return
	}
	writeJSON(w, 200, map[string]any{"images": images})
}
