package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simosh/storefront/internal/domain"
)

// The cart is client session state: an HMAC-signed cookie, never persisted
// server-side outside of a finished order.
type cartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Qty       int       `json:"qty"`
}

type cartPayload struct {
	Items []cartItem `json:"items"`
}

func (s *Server) readCart(r *http.Request) cartPayload {
	c, err := r.Cookie("cart")
	if err != nil {
		return cartPayload{}
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 {
		return cartPayload{}
	}
	sig, _ := base64.RawURLEncoding.DecodeString(parts[0])
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return cartPayload{}
	}
	var cp cartPayload
	_ = json.Unmarshal(payload, &cp)
	return cp
}

func (s *Server) writeCart(w http.ResponseWriter, cp cartPayload) {
	b, _ := json.Marshal(cp)
	h := hmac.New(sha256.New, s.sessionKey)
	h.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	val := sig + "." + base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{Name: "cart", Value: val, Path: "/", MaxAge: 60 * 60 * 24 * 7, HttpOnly: true})
}

// resolveLines turns cookie items into priced cart lines, dropping anything
// that no longer exists or went inactive.
func (s *Server) resolveLines(r *http.Request, cp cartPayload) ([]domain.CartLine, error) {
	db, err := s.catalog.Database(r.Context())
	if err != nil {
		return nil, err
	}
	agg := map[uuid.UUID]int{}
	order := []uuid.UUID{}
	for _, it := range cp.Items {
		if it.Qty <= 0 {
			continue
		}
		if _, seen := agg[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		agg[it.ProductID] += it.Qty
	}
	lines := []domain.CartLine{}
	for _, id := range order {
		p := db.ProductByID(id)
		if p == nil || p.Status != domain.ProductActive {
			continue
		}
		lines = append(lines, domain.CartLine{Product: *p, Qty: agg[id]})
	}
	return lines, nil
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		cp := s.readCart(r)
		lines, err := s.resolveLines(r, cp)
		if err != nil {
			s.storeError(w, err)
			return
		}
		s.renderCart(w, r, lines)
	case http.MethodPost:
		var req struct {
			ProductID uuid.UUID `json:"productId"`
			Qty       int       `json:"qty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == uuid.Nil {
			http.Error(w, "productId", 400)
			return
		}
		if req.Qty <= 0 {
			req.Qty = 1
		}
		p, err := s.catalog.ProductByID(r.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			s.storeError(w, err)
			return
		}
		// out-of-stock products are rejected here, at the cart boundary
		if !p.InStock() || p.Status != domain.ProductActive {
			writeJSON(w, http.StatusConflict, map[string]any{"error": "out_of_stock"})
			return
		}
		cart := s.readCart(r)
		cart.Items = append(cart.Items, cartItem{ProductID: req.ProductID, Qty: req.Qty})
		s.writeCart(w, cart)
		count := 0
		for _, it := range cart.Items {
			count += it.Qty
		}
		writeJSON(w, 200, map[string]any{"status": "ok", "items": count})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		ProductID uuid.UUID `json:"productId"`
		Qty       int       `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == uuid.Nil {
		http.Error(w, "productId", 400)
		return
	}
	cart := s.readCart(r)
	newCart := cartPayload{}
	if req.Qty > 0 {
		newCart.Items = append(newCart.Items, cartItem{ProductID: req.ProductID, Qty: req.Qty})
	}
	for _, it := range cart.Items {
		if it.ProductID != req.ProductID && it.Qty > 0 {
			newCart.Items = append(newCart.Items, it)
		}
	}
	s.writeCart(w, newCart)
	lines, err := s.resolveLines(r, newCart)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.renderCart(w, r, lines)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		ProductID uuid.UUID `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == uuid.Nil {
		http.Error(w, "productId", 400)
		return
	}
	cart := s.readCart(r)
	newItems := []cartItem{}
	for _, it := range cart.Items {
		if it.ProductID != req.ProductID {
			newItems = append(newItems, it)
		}
	}
	cart.Items = newItems
	s.writeCart(w, cart)
	lines, err := s.resolveLines(r, cart)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.renderCart(w, r, lines)
}

func (s *Server) renderCart(w http.ResponseWriter, r *http.Request, lines []domain.CartLine) {
	now := time.Now()
	lang := domain.ParseLanguage(r.URL.Query().Get("lang"))
	out := []map[string]any{}
	for _, l := range lines {
		unit := domain.EffectivePrice(l.Product, now)
		out = append(out, map[string]any{
			"productId": l.Product.ID,
			"name":      l.Product.Name.In(lang),
			"image":     l.Product.Image,
			"qty":       l.Qty,
			"unitPrice": unit,
			"subtotal":  unit * int64(l.Qty),
		})
	}
	writeJSON(w, 200, map[string]any{
		"lines":    out,
		"subtotal": s.checkout.ComputeSubtotal(lines, now),
	})
}

func (s *Server) apiPromoValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "code", 400)
		return
	}
	lines, err := s.resolveLines(r, s.readCart(r))
	if err != nil {
		s.storeError(w, err)
		return
	}
	db, err := s.catalog.Database(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}
	now := time.Now()
	subtotal := s.checkout.ComputeSubtotal(lines, now)
	promo, err := domain.FindPromo(req.Code, db.PromoCodes, subtotal, now)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": promoErrorCode(err)})
		return
	}
	discount := domain.ApplyDiscount(promo, subtotal)
	total := subtotal - discount
	if total < 0 {
		total = 0
	}
	writeJSON(w, 200, map[string]any{
		"code":     promo.Code,
		"discount": discount,
		"subtotal": subtotal,
		"total":    total,
	})
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Phone     string `json:"customerPhone"`
		Comment   string `json:"comment"`
		PromoCode string `json:"promoCode"`
		Language  string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body", 400)
		return
	}
	lines, err := s.resolveLines(r, s.readCart(r))
	if err != nil {
		s.storeError(w, err)
		return
	}
	now := time.Now()

	var promo *domain.PromoCode
	if strings.TrimSpace(req.PromoCode) != "" {
		db, err := s.catalog.Database(r.Context())
		if err != nil {
			s.storeError(w, err)
			return
		}
		subtotal := s.checkout.ComputeSubtotal(lines, now)
		promo, err = domain.FindPromo(req.PromoCode, db.PromoCodes, subtotal, now)
		if err != nil {
			// recoverable: the shopper corrects the code, the cart stays
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": promoErrorCode(err)})
			return
		}
	}

	customer := domain.CustomerInfo{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Comment:   req.Comment,
		Language:  domain.ParseLanguage(req.Language),
	}
	order, err := s.checkout.BuildOrder(customer, lines, promo, now)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			writeJSON(w, 400, map[string]any{"error": "validation", "field": ve.Field})
		case errors.Is(err, domain.ErrEmptyCart):
			writeJSON(w, 400, map[string]any{"error": "empty_cart"})
		default:
			http.Error(w, "checkout", 500)
		}
		return
	}

	notified, err := s.orders.Create(r.Context(), order)
	if err != nil {
		s.storeError(w, err)
		return
	}
	s.writeCart(w, cartPayload{})
	writeJSON(w, http.StatusCreated, map[string]any{"order": order, "notified": notified})
}

func promoErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrPromoExpired):
		return "promo_expired"
	case errors.Is(err, domain.ErrPromoMinAmount):
		return "promo_min_amount"
	default:
		return "promo_not_found"
	}
}
