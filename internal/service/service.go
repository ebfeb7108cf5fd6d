package service

import (
	"context"
	"io"

	"hinglaj-store/internal/model"
)

// PhotoUpload is an uploaded product photo awaiting storage.
type PhotoUpload struct {
	Filename string
	Data     io.Reader
}

// ItemService defines operations for catalogue management.
type ItemService interface {
	// List retrieves items, optionally filtered by category ("" or "all"
	// returns everything).
	List(ctx context.Context, category string) ([]model.Item, error)

	// Categories retrieves the distinct item categories.
	Categories(ctx context.Context) ([]string, error)

	// GetByID retrieves a single item.
	GetByID(ctx context.Context, id int) (*model.Item, error)

	// Create validates and creates an item with an optional photo.
	Create(ctx context.Context, in model.ItemInput, photo *PhotoUpload) (*model.Item, error)

	// Update validates and updates an item. A new photo replaces the old
	// one; deleting the old file is best-effort.
	Update(ctx context.Context, id int, in model.ItemInput, photo *PhotoUpload) (*model.Item, error)

	// Delete removes an item and best-effort deletes its photo.
	Delete(ctx context.Context, id int) error
}

// OrderService defines the order pipeline operations.
type OrderService interface {
	// Create validates a checkout submission and persists an order with a
	// server-computed total, atomically.
	Create(ctx context.Context, userID int, req *model.OrderRequest) (*model.CreatedOrder, error)

	// Get retrieves one order, enforcing owner-or-admin access.
	Get(ctx context.Context, requesterID int, requesterRole string, id int) (*model.Order, error)

	// ListMine retrieves the requester's orders, newest first.
	ListMine(ctx context.Context, userID int) ([]model.OrderSummary, error)

	// List retrieves the admin order listing with filtering, search, sort
	// and pagination.
	List(ctx context.Context, params model.OrderListParams) (*model.OrderPage, error)

	// UpdateStatus sets an order's status to any of the enum values.
	UpdateStatus(ctx context.Context, id int, status string) (*model.Order, error)

	// Delete hard-deletes an order.
	Delete(ctx context.Context, id int) error
}

// AuthService defines registration and credential issuance.
type AuthService interface {
	// Register creates a new account with role "user".
	Register(ctx context.Context, req *model.RegisterRequest) (*model.RegisteredUser, error)

	// Login verifies credentials by phone and issues a signed token.
	Login(ctx context.Context, req *model.LoginRequest) (string, error)
}

// CustomerService defines admin-facing account management.
type CustomerService interface {
	// List retrieves customers with search and pagination, each with their
	// order count.
	List(ctx context.Context, query string, page, limit int) (*model.CustomerPage, error)

	// Get retrieves one customer with order history and statistics.
	Get(ctx context.Context, id int) (*model.CustomerDetail, error)

	// Overview aggregates account counts.
	Overview(ctx context.Context) (*model.CustomerOverview, error)

	// Delete removes a customer and all orders matching their name after
	// verifying the requesting admin's own password.
	Delete(ctx context.Context, adminID, customerID int, adminPassword string) error
}
