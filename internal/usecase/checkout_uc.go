package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simosh/storefront/internal/domain"
)

// CheckoutUC assembles cart lines into a checkout-ready order. It has no side
// effects; persistence and notification happen in OrderUC.
type CheckoutUC struct{}

func (uc *CheckoutUC) ComputeSubtotal(lines []domain.CartLine, now time.Time) int64 {
	var total int64
	for _, l := range lines {
		if l.Qty <= 0 {
			continue
		}
		total += domain.EffectivePrice(l.Product, now) * int64(l.Qty)
	}
	return total
}

// BuildOrder validates the customer fields, prices the cart, applies an
// already-validated promo and snapshots every line's product state. Order IDs
// are random UUIDs so a double-submitted form cannot collide.
func (uc *CheckoutUC) BuildOrder(customer domain.CustomerInfo, lines []domain.CartLine, promo *domain.PromoCode, now time.Time) (*domain.Order, error) {
	if strings.TrimSpace(customer.FirstName) == "" {
		return nil, &domain.ValidationError{Field: "firstName"}
	}
	if strings.TrimSpace(customer.Phone) == "" {
		return nil, &domain.ValidationError{Field: "customerPhone"}
	}
	valid := lines[:0:0]
	for _, l := range lines {
		if l.Qty > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return nil, domain.ErrEmptyCart
	}

	subtotal := uc.ComputeSubtotal(valid, now)
	discount := domain.ApplyDiscount(promo, subtotal)
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	o := &domain.Order{
		ID:             uuid.New(),
		FirstName:      strings.TrimSpace(customer.FirstName),
		LastName:       strings.TrimSpace(customer.LastName),
		Phone:          strings.TrimSpace(customer.Phone),
		Comment:        strings.TrimSpace(customer.Comment),
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TotalPrice:     total,
		Language:       customer.Language,
		Status:         domain.OrderPending,
		CreatedAt:      now,
	}
	if promo != nil {
		o.AppliedPromo = promo.Code
	}
	for _, l := range valid {
		p := l.Product
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			UnitPrice: domain.EffectivePrice(p, now),
			Qty:       l.Qty,
			Image:     p.Image,
		})
	}
	return o, nil
}
