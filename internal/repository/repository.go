package repository

import (
	"context"
	"time"

	"hinglaj-store/internal/model"

	"github.com/jackc/pgx/v5"
)

// ItemRepository defines the interface for catalogue data access operations.
type ItemRepository interface {
	// List retrieves items, newest first, optionally filtered by category.
	// An empty category or "all" returns everything.
	List(ctx context.Context, category string) ([]model.Item, error)

	// Categories retrieves the distinct non-empty categories.
	Categories(ctx context.Context) ([]string, error)

	// GetByID retrieves a single item by its ID. Returns nil if absent.
	GetByID(ctx context.Context, id int) (*model.Item, error)

	// GetByIDTx retrieves a single item within the provided transaction,
	// so checkout validation and the order write see one consistent view.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id int) (*model.Item, error)

	// Create inserts a new item and fills its generated ID and timestamps.
	Create(ctx context.Context, item *model.Item) error

	// Update persists the writable fields of an existing item.
	Update(ctx context.Context, item *model.Item) error

	// Delete removes an item by ID.
	Delete(ctx context.Context, id int) error
}

// UserRepository defines the interface for account data access operations.
type UserRepository interface {
	// Create inserts a new user and fills its generated ID and timestamps.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID. Returns nil if absent.
	GetByID(ctx context.Context, id int) (*model.User, error)

	// GetByPhone retrieves a user by phone. Returns nil if absent.
	GetByPhone(ctx context.Context, phone string) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns nil if absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmailOrPhone reports whether any account already holds the
	// email or the phone.
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)

	// List retrieves users matching the free-text query with pagination,
	// newest first, along with the total match count.
	List(ctx context.Context, query string, limit, offset int) ([]model.User, int, error)

	// Count returns the total number of accounts.
	Count(ctx context.Context) (int, error)

	// CountByRole returns the number of accounts holding the role.
	CountByRole(ctx context.Context, role string) (int, error)

	// CountCreatedSince returns the number of accounts created after t.
	CountCreatedSince(ctx context.Context, t time.Time) (int, error)

	// UpdateRole sets the role of a user.
	UpdateRole(ctx context.Context, id int, role string) error

	// Delete removes a user by ID.
	Delete(ctx context.Context, id int) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction and fills
	// its generated ID and timestamps.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by its ID. Returns nil if absent.
	GetByID(ctx context.Context, id int) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID int) ([]model.Order, error)

	// ListByCustomerName retrieves orders whose snapshot customer name
	// matches exactly, newest first.
	ListByCustomerName(ctx context.Context, name string) ([]model.Order, error)

	// List retrieves orders matching the normalised filter, sort and
	// pagination parameters, along with the total match count.
	List(ctx context.Context, params model.OrderListParams) ([]model.Order, int, error)

	// UpdateStatus sets the status of an order and returns the updated row.
	// Returns nil if the order is absent.
	UpdateStatus(ctx context.Context, id int, status string) (*model.Order, error)

	// Delete removes an order by ID. Reports whether a row was deleted.
	Delete(ctx context.Context, id int) (bool, error)

	// CountByCustomerName counts orders whose snapshot customer name
	// matches exactly.
	CountByCustomerName(ctx context.Context, name string) (int, error)

	// DeleteByCustomerName removes all orders whose snapshot customer name
	// matches exactly and returns the number removed.
	DeleteByCustomerName(ctx context.Context, name string) (int64, error)
}
