package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promoFixtures() []PromoCode {
	return []PromoCode{
		{ID: uuid.New(), Code: "simosh", DiscountType: DiscountPercent, DiscountValue: 10, Status: PromoActive},
		{ID: uuid.New(), Code: "fixed15", DiscountType: DiscountFixed, DiscountValue: 15000, Status: PromoActive},
		{ID: uuid.New(), Code: "old", DiscountType: DiscountPercent, DiscountValue: 50, Status: PromoActive, ExpiresAt: "2025-01-01"},
		{ID: uuid.New(), Code: "vip", DiscountType: DiscountPercent, DiscountValue: 20, Status: PromoActive, MinAmount: 200000},
		{ID: uuid.New(), Code: "off", DiscountType: DiscountPercent, DiscountValue: 30, Status: PromoInactive},
	}
}

func TestFindPromo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		p, err := FindPromo("SIMOSH", promoFixtures(), 90000, now)
		require.NoError(t, err)
		assert.Equal(t, "simosh", p.Code)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := FindPromo("nope", promoFixtures(), 90000, now)
		assert.ErrorIs(t, err, ErrPromoNotFound)
	})

	t.Run("blank code", func(t *testing.T) {
		_, err := FindPromo("   ", promoFixtures(), 90000, now)
		assert.ErrorIs(t, err, ErrPromoNotFound)
	})

	t.Run("inactive codes are invisible", func(t *testing.T) {
		_, err := FindPromo("off", promoFixtures(), 90000, now)
		assert.ErrorIs(t, err, ErrPromoNotFound)
	})

	t.Run("expired code rejected", func(t *testing.T) {
		_, err := FindPromo("old", promoFixtures(), 90000, now)
		assert.ErrorIs(t, err, ErrPromoExpired)
	})

	t.Run("expiry day itself still valid", func(t *testing.T) {
		promos := []PromoCode{{Code: "today", DiscountType: DiscountPercent, DiscountValue: 5, Status: PromoActive, ExpiresAt: "2026-03-01"}}
		_, err := FindPromo("today", promos, 90000, now)
		assert.NoError(t, err)
	})

	t.Run("subtotal below promo minimum", func(t *testing.T) {
		_, err := FindPromo("vip", promoFixtures(), 90000, now)
		assert.ErrorIs(t, err, ErrPromoMinAmount)
	})

	t.Run("subtotal at promo minimum", func(t *testing.T) {
		_, err := FindPromo("vip", promoFixtures(), 200000, now)
		assert.NoError(t, err)
	})

	t.Run("returned promo is a copy", func(t *testing.T) {
		promos := promoFixtures()
		p, err := FindPromo("simosh", promos, 90000, now)
		require.NoError(t, err)
		p.DiscountValue = 99
		assert.EqualValues(t, 10, promos[0].DiscountValue)
	})
}

func TestApplyDiscount(t *testing.T) {
	testCases := []struct {
		name     string
		promo    *PromoCode
		subtotal int64
		want     int64
	}{
		{
			name:     "percent",
			promo:    &PromoCode{DiscountType: DiscountPercent, DiscountValue: 10},
			subtotal: 100000,
			want:     10000,
		},
		{
			name:     "fixed exceeds subtotal, not capped here",
			promo:    &PromoCode{DiscountType: DiscountFixed, DiscountValue: 15000},
			subtotal: 10000,
			want:     15000,
		},
		{
			name:     "nil promo",
			promo:    nil,
			subtotal: 100000,
			want:     0,
		},
		{
			name:     "unknown discount type",
			promo:    &PromoCode{DiscountType: "BOGOF", DiscountValue: 10},
			subtotal: 100000,
			want:     0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ApplyDiscount(tc.promo, tc.subtotal))
		})
	}
}
