package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// OrderItem is a snapshot of the product at checkout time. Later catalog
// edits must not change what a historical order shows or what it charged.
type OrderItem struct {
	ProductID uuid.UUID     `json:"productId"`
	SKU       string        `json:"sku"`
	Name      LocalizedText `json:"name"`
	UnitPrice int64         `json:"unitPrice"`
	Qty       int           `json:"qty"`
	Image     string        `json:"image"`
}

type Order struct {
	ID             uuid.UUID   `json:"id"`
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	Phone          string      `json:"customerPhone"`
	Comment        string      `json:"comment"`
	Items          []OrderItem `json:"items"`
	Subtotal       int64       `json:"subtotal"`
	DiscountAmount int64       `json:"discountAmount"`
	TotalPrice     int64       `json:"totalPrice"`
	AppliedPromo   string      `json:"appliedPromo,omitempty"`
	Language       Language    `json:"language"`
	Status         OrderStatus `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// CustomerInfo is what the checkout form collects.
type CustomerInfo struct {
	FirstName string
	LastName  string
	Phone     string
	Comment   string
	Language  Language
}
