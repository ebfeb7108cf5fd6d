package model

import (
	"fmt"
	"math/rand"
	"time"
)

// Order statuses. Any status may move to any other; the field is a free
// choice among the enum, not a state machine with forbidden edges.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderStatuses lists the valid order statuses.
var OrderStatuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
}

// ValidStatus reports whether s is one of the order status enum values.
func ValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// OrderLine is a frozen snapshot of one ordered variant. Price and total are
// copied from the catalogue at order time and never re-derived afterwards.
type OrderLine struct {
	ItemID   int     `json:"itemId"`
	ItemName string  `json:"itemName"`
	Size     string  `json:"size"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

// CustomerDetails is the contact snapshot captured at order time. It is
// intentionally decoupled from the live user record.
type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// Order represents a placed order.
type Order struct {
	ID              int             `json:"id" db:"id"`
	UserID          *int            `json:"userId" db:"user_id"`
	OrderNumber     string          `json:"orderNumber" db:"order_number"`
	Status          string          `json:"status" db:"status"`
	CustomerName    string          `json:"customerName" db:"customer_name"`
	CustomerDetails CustomerDetails `json:"customerDetails" db:"customer_details"`
	Items           []OrderLine     `json:"items" db:"items"`
	Total           float64         `json:"total" db:"total"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	OrderDate       time.Time       `json:"orderDate" db:"order_date"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// NewOrderNumber generates a human-facing order number of the form
// HIN<unix-millis><2-digit-random>.
func NewOrderNumber() string {
	return fmt.Sprintf("HIN%d%02d", time.Now().UnixMilli(), rand.Intn(100))
}

// OrderLineRequest is one requested line of a checkout submission.
type OrderLineRequest struct {
	ItemID   int    `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// OrderRequest is the checkout payload. The declared total is validated for
// positivity but the persisted total is always computed server-side.
type OrderRequest struct {
	Items           []OrderLineRequest `json:"items"`
	CustomerDetails CustomerDetails    `json:"customerDetails"`
	Total           float64            `json:"total"`
	PaymentMethod   string             `json:"paymentMethod"`
}

// CreatedOrder is the public projection returned on successful checkout.
type CreatedOrder struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Total           float64         `json:"total"`
	Status          string          `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
	Items           []OrderLine     `json:"items"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
}

// OrderSummary is the lightweight projection used by per-user listings.
type OrderSummary struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Total           float64         `json:"total"`
	Status          string          `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
	ItemCount       int             `json:"itemCount"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
}

// AdminOrder is the row shape of the admin order listing.
type AdminOrder struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Total           float64         `json:"total"`
	Status          string          `json:"status"`
	OrderDate       time.Time       `json:"orderDate"`
	PaymentMethod   string          `json:"paymentMethod"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	CustomerName    string          `json:"customerName"`
	ItemCount       int             `json:"itemCount"`
	Items           []OrderLine     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// OrderPage is a paginated admin order listing.
type OrderPage struct {
	Data  []AdminOrder `json:"data"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
	Limit int          `json:"limit"`
	Sort  string       `json:"sort"`
	Dir   string       `json:"dir"`
}

// OrderListParams are the admin listing filters before normalisation.
type OrderListParams struct {
	Query  string
	Status string
	Page   int
	Limit  int
	Sort   string
	Dir    string
}
