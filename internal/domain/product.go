package domain

import (
	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

// Discount dates are stored as strings exactly as the admin typed them.
// Pricing parses them on every evaluation and treats anything unparsable
// as "no discount".
type Discount struct {
	Active    bool   `json:"active"`
	Price     int64  `json:"discountedPrice"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Product struct {
	ID          uuid.UUID     `json:"id"`
	SKU         string        `json:"sku"`
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
	Price       int64         `json:"price"`
	Discount    *Discount     `json:"discount,omitempty"`
	Stock       int           `json:"stock"`
	Status      ProductStatus `json:"status"`
	CategoryID  uuid.UUID     `json:"categoryId"`
	Image       string        `json:"image"`
}

func (p Product) InStock() bool { return p.Stock > 0 }

type Category struct {
	ID   uuid.UUID     `json:"id"`
	Name LocalizedText `json:"name"`
}

// CartLine is a transient (product, quantity) pair; it lives only in the
// shopper's cookie session and is never persisted on its own.
type CartLine struct {
	Product Product
	Qty     int
}
