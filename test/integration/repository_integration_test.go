package integration

import (
	"context"
	"testing"
	"time"

	"hinglaj-store/internal/model"
	"hinglaj-store/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewItemRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("List returns seeded items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedItems(t, testDB.Pool)

		items, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("List filters by category", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedItems(t, testDB.Pool)

		items, err := repo.List(ctx, "snacks")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Samosa", items[0].Name)

		// "all" behaves like no filter
		items, err = repo.List(ctx, "all")
		require.NoError(t, err)
		assert.Len(t, items, 3)
	})

	t.Run("Categories returns distinct values", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedItems(t, testDB.Pool)

		categories, err := repo.Categories(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"sweets", "snacks"}, categories)
	})

	t.Run("GetByID round-trips variants", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedItems(t, testDB.Pool)

		item, err := repo.GetByID(ctx, seeded[0].ID)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "Rasgulla", item.Name)
		require.Len(t, item.Variants, 2)
		assert.Equal(t, 150.0, item.Variants[0].Price)
		assert.True(t, item.Variants[0].Available)
	})

	t.Run("GetByID returns nil for non-existent item", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		item, err := repo.GetByID(ctx, 99999)
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("Update persists variant changes", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedItems(t, testDB.Pool)

		item, err := repo.GetByID(ctx, seeded[0].ID)
		require.NoError(t, err)
		item.Variants[0].Available = false
		item.Description = "Fresh daily"

		require.NoError(t, repo.Update(ctx, item))

		got, err := repo.GetByID(ctx, seeded[0].ID)
		require.NoError(t, err)
		assert.False(t, got.Variants[0].Available)
		assert.Equal(t, "Fresh daily", got.Description)
	})

	t.Run("Delete removes the row", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seeded := SeedItems(t, testDB.Pool)

		require.NoError(t, repo.Delete(ctx, seeded[2].ID))

		item, err := repo.GetByID(ctx, seeded[2].ID)
		require.NoError(t, err)
		assert.Nil(t, item)
	})
}

func seedUser(t *testing.T, repo repository.UserRepository, name, phone, email, role string) *model.User {
	t.Helper()
	user := &model.User{
		Name:         name,
		Phone:        phone,
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         role,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewUserRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create and lookups", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := seedUser(t, repo, "Priya Sharma", "9876543210", "priya@example.com", model.RoleUser)
		assert.NotZero(t, user.ID)

		byPhone, err := repo.GetByPhone(ctx, "9876543210")
		require.NoError(t, err)
		require.NotNil(t, byPhone)
		assert.Equal(t, user.ID, byPhone.ID)

		byEmail, err := repo.GetByEmail(ctx, "priya@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)

		missing, err := repo.GetByPhone(ctx, "0000000000")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("ExistsByEmailOrPhone", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedUser(t, repo, "Priya Sharma", "9876543210", "priya@example.com", model.RoleUser)

		exists, err := repo.ExistsByEmailOrPhone(ctx, "other@example.com", "9876543210")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmailOrPhone(ctx, "other@example.com", "1111111111")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("List with search and pagination", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedUser(t, repo, "Priya Sharma", "9876543210", "priya@example.com", model.RoleUser)
		seedUser(t, repo, "Rahul Verma", "9123456780", "rahul@example.com", model.RoleUser)
		seedUser(t, repo, "Admin", "9999999999", "admin@example.com", model.RoleAdmin)

		users, total, err := repo.List(ctx, "priya", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, users, 1)
		assert.Equal(t, "Priya Sharma", users[0].Name)

		users, total, err = repo.List(ctx, "", 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, users, 2)
	})

	t.Run("Counts", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		seedUser(t, repo, "Priya Sharma", "9876543210", "priya@example.com", model.RoleUser)
		seedUser(t, repo, "Admin", "9999999999", "admin@example.com", model.RoleAdmin)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, total)

		admins, err := repo.CountByRole(ctx, model.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, 1, admins)

		recent, err := repo.CountCreatedSince(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2, recent)
	})

	t.Run("UpdateRole and Delete", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		user := seedUser(t, repo, "Priya Sharma", "9876543210", "priya@example.com", model.RoleUser)

		require.NoError(t, repo.UpdateRole(ctx, user.ID, model.RoleAdmin))
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, got.Role)

		require.NoError(t, repo.Delete(ctx, user.ID))
		got, err = repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func createOrder(t *testing.T, repo repository.OrderRepository, userID *int, customerName string, total float64, status string) *model.Order {
	t.Helper()
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	order := &model.Order{
		UserID:       userID,
		OrderNumber:  model.NewOrderNumber(),
		Status:       status,
		CustomerName: customerName,
		CustomerDetails: model.CustomerDetails{
			Name:  customerName,
			Phone: "9876543210",
		},
		Items: []model.OrderLine{
			{ItemID: 1, ItemName: "Rasgulla", Size: "500g", Price: total, Quantity: 1, Total: total},
		},
		Total:         total,
		PaymentMethod: "cash",
		OrderDate:     time.Now(),
	}
	require.NoError(t, repo.Create(ctx, tx, order))
	require.NoError(t, tx.Commit(ctx))
	return order
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create and GetByID round-trips JSON columns", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		userID := 42
		created := createOrder(t, repo, &userID, "Priya Sharma", 150, model.StatusPending)
		assert.NotZero(t, created.ID)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.OrderNumber, got.OrderNumber)
		assert.Equal(t, "Priya Sharma", got.CustomerDetails.Name)
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Rasgulla", got.Items[0].ItemName)
		assert.Equal(t, 150.0, got.Total)
	})

	t.Run("Transaction rollback leaves nothing behind", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		order := &model.Order{
			OrderNumber:  model.NewOrderNumber(),
			Status:       model.StatusPending,
			CustomerName: "Priya Sharma",
			Items:        []model.OrderLine{},
			Total:        150,
			OrderDate:    time.Now(),
		}
		require.NoError(t, repo.Create(ctx, tx, order))
		require.NoError(t, tx.Rollback(ctx))

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("List filters, searches and paginates", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		createOrder(t, repo, nil, "Priya Sharma", 150, model.StatusPending)
		createOrder(t, repo, nil, "Priya Sharma", 300, model.StatusDelivered)
		createOrder(t, repo, nil, "Rahul Verma", 90, model.StatusPending)

		orders, total, err := repo.List(ctx, model.OrderListParams{
			Status: model.StatusPending, Page: 1, Limit: 10, Sort: "createdAt", Dir: "desc",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, orders, 2)

		orders, total, err = repo.List(ctx, model.OrderListParams{
			Query: "priya", Page: 1, Limit: 10, Sort: "total", Dir: "asc",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, orders, 2)
		assert.Equal(t, 150.0, orders[0].Total)

		orders, total, err = repo.List(ctx, model.OrderListParams{
			Page: 2, Limit: 2, Sort: "createdAt", Dir: "desc",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, orders, 1)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		created := createOrder(t, repo, nil, "Priya Sharma", 150, model.StatusPending)

		updated, err := repo.UpdateStatus(ctx, created.ID, model.StatusConfirmed)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, model.StatusConfirmed, updated.Status)

		missing, err := repo.UpdateStatus(ctx, 99999, model.StatusConfirmed)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Delete", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		created := createOrder(t, repo, nil, "Priya Sharma", 150, model.StatusPending)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("Customer name snapshot queries match exactly", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		createOrder(t, repo, nil, "Priya Sharma", 150, model.StatusPending)
		createOrder(t, repo, nil, "Priya Sharma", 300, model.StatusDelivered)
		createOrder(t, repo, nil, "priya sharma", 90, model.StatusPending)

		count, err := repo.CountByCustomerName(ctx, "Priya Sharma")
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		orders, err := repo.ListByCustomerName(ctx, "Priya Sharma")
		require.NoError(t, err)
		assert.Len(t, orders, 2)

		removed, err := repo.DeleteByCustomerName(ctx, "Priya Sharma")
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		// The differently-cased sibling survives
		count, err = repo.CountByCustomerName(ctx, "priya sharma")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
