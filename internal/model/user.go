package model

import "time"

// Account roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account.
type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Phone        string    `json:"phone" db:"phone"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// RegisterRequest is the payload for account self-registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisteredUser is the public projection returned after registration.
type RegisteredUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// LoginRequest is the payload for credential exchange.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Customer is the admin-facing projection of a user with their order count.
type Customer struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	OrderCount int       `json:"orderCount"`
}

// CustomerPage is a paginated customer listing.
type CustomerPage struct {
	Data  []Customer `json:"data"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Pages int        `json:"pages"`
	Limit int        `json:"limit"`
}

// CustomerStats summarises a customer's order history.
type CustomerStats struct {
	TotalOrders       int            `json:"totalOrders"`
	TotalSpent        float64        `json:"totalSpent"`
	AverageOrderValue float64        `json:"averageOrderValue"`
	LastOrderDate     *time.Time     `json:"lastOrderDate"`
	StatusBreakdown   map[string]int `json:"statusBreakdown"`
}

// CustomerDetail is the admin view of one customer with order history.
type CustomerDetail struct {
	Customer Customer      `json:"customer"`
	Orders   []Order       `json:"orders"`
	Stats    CustomerStats `json:"stats"`
}

// CustomerOverview aggregates account counts for the admin dashboard.
type CustomerOverview struct {
	TotalCustomers      int `json:"totalCustomers"`
	TotalAdmins         int `json:"totalAdmins"`
	TotalUsers          int `json:"totalUsers"`
	RecentRegistrations int `json:"recentRegistrations"`
}
