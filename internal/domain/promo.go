package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFixed   DiscountType = "FIXED"
)

type PromoStatus string

const (
	PromoActive   PromoStatus = "ACTIVE"
	PromoInactive PromoStatus = "INACTIVE"
)

type PromoCode struct {
	ID            uuid.UUID    `json:"id"`
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue int64        `json:"discountValue"`
	Status        PromoStatus  `json:"status"`
	MinAmount     int64        `json:"minAmount,omitempty"`
	ExpiresAt     string       `json:"expiresAt,omitempty"`
}

// FindPromo looks a code up case-insensitively among ACTIVE promos and
// validates it against the cart subtotal: expired codes and carts below the
// promo minimum are rejected. Codes are reusable; nothing is mutated.
func FindPromo(code string, promos []PromoCode, subtotal int64, now time.Time) (*PromoCode, error) {
	c := strings.TrimSpace(code)
	if c == "" {
		return nil, ErrPromoNotFound
	}
	for i := range promos {
		p := promos[i]
		if p.Status != PromoActive || !strings.EqualFold(p.Code, c) {
			continue
		}
		if p.ExpiresAt != "" {
			if exp, ok := parseWindowDate(p.ExpiresAt, true); ok && now.After(exp) {
				return nil, ErrPromoExpired
			}
		}
		if p.MinAmount > 0 && subtotal < p.MinAmount {
			return nil, ErrPromoMinAmount
		}
		return &p, nil
	}
	return nil, ErrPromoNotFound
}

// ApplyDiscount returns the raw discount amount. Fixed discounts are not
// capped here; the order aggregate clamps the final total at zero.
func ApplyDiscount(p *PromoCode, subtotal int64) int64 {
	if p == nil {
		return 0
	}
	switch p.DiscountType {
	case DiscountPercent:
		return subtotal * p.DiscountValue / 100
	case DiscountFixed:
		return p.DiscountValue
	}
	return 0
}
