package domain

import "time"

const dateOnly = "2006-01-02"

// EffectivePrice returns the discounted price when the product's discount is
// active and now falls inside [StartDate, EndDate], both ends inclusive.
// Unparsable dates fail closed: the discount is skipped, never an error, so a
// bad date typed in the admin panel cannot block pricing a cart.
func EffectivePrice(p Product, now time.Time) int64 {
	d := p.Discount
	if d == nil || !d.Active {
		return p.Price
	}
	start, ok := parseWindowDate(d.StartDate, false)
	if !ok {
		return p.Price
	}
	end, ok := parseWindowDate(d.EndDate, true)
	if !ok {
		return p.Price
	}
	if now.Before(start) || now.After(end) {
		return p.Price
	}
	return d.Price
}

// parseWindowDate accepts RFC 3339 timestamps or bare dates. A bare end date
// covers its whole day, so "2026-03-01" as EndDate still matches 23:59 that day.
func parseWindowDate(s string, endOfDay bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, true
}
