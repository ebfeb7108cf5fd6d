package service

import (
	"context"
	"fmt"
	"time"

	"hinglaj-store/internal/auth"
	"hinglaj-store/internal/model"
	"hinglaj-store/internal/repository"

	"github.com/rs/zerolog"
)

const defaultCustomerPageSize = 20

// customerService implements CustomerService. Orders are associated with
// customers by exact snapshot-name match, not by user id; see the customer
// linkage note in DESIGN.md.
type customerService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
}

// NewCustomerService creates a new customer administration service.
func NewCustomerService(
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	logger zerolog.Logger,
) CustomerService {
	return &customerService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "customer").Logger(),
	}
}

func toCustomer(u model.User, orderCount int) model.Customer {
	return model.Customer{
		ID:         u.ID,
		Name:       u.Name,
		Phone:      u.Phone,
		Email:      u.Email,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		OrderCount: orderCount,
	}
}

// List retrieves customers with search and pagination.
func (s *customerService) List(ctx context.Context, query string, page, limit int) (*model.CustomerPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultCustomerPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	users, total, err := s.userRepo.List(ctx, query, limit, (page-1)*limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	customers := make([]model.Customer, 0, len(users))
	for _, u := range users {
		count, err := s.orderRepo.CountByCustomerName(ctx, u.Name)
		if err != nil {
			s.logger.Error().Err(err).Int("user_id", u.ID).Msg("failed to count orders")
			return nil, fmt.Errorf("failed to list customers: %w", err)
		}
		customers = append(customers, toCustomer(u, count))
	}

	return &model.CustomerPage{
		Data:  customers,
		Total: total,
		Page:  page,
		Pages: (total + limit - 1) / limit,
		Limit: limit,
	}, nil
}

// Get retrieves one customer with order history and statistics.
func (s *customerService) Get(ctx context.Context, id int) (*model.CustomerDetail, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if user == nil {
		return nil, model.ErrCustomerNotFound
	}

	orders, err := s.orderRepo.ListByCustomerName(ctx, user.Name)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", id).Msg("failed to list customer orders")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	stats := model.CustomerStats{
		TotalOrders:     len(orders),
		StatusBreakdown: make(map[string]int, len(model.OrderStatuses)),
	}
	for _, status := range model.OrderStatuses {
		stats.StatusBreakdown[status] = 0
	}
	for _, o := range orders {
		stats.TotalSpent += o.Total
		stats.StatusBreakdown[o.Status]++
	}
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = stats.TotalSpent / float64(stats.TotalOrders)
		// Orders come back newest first.
		stats.LastOrderDate = &orders[0].CreatedAt
	}

	return &model.CustomerDetail{
		Customer: toCustomer(*user, len(orders)),
		Orders:   orders,
		Stats:    stats,
	}, nil
}

// Overview aggregates account counts.
func (s *customerService) Overview(ctx context.Context) (*model.CustomerOverview, error) {
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate customers: %w", err)
	}
	admins, err := s.userRepo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate customers: %w", err)
	}
	recent, err := s.userRepo.CountCreatedSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate customers: %w", err)
	}

	return &model.CustomerOverview{
		TotalCustomers:      total - admins,
		TotalAdmins:         admins,
		TotalUsers:          total,
		RecentRegistrations: recent,
	}, nil
}

// Delete removes a customer after step-up confirmation: the requesting admin
// must re-enter their own password, verified against the stored hash, on top
// of the session credential. Admin accounts are never deletable. All orders
// whose snapshot name matches the customer's name exactly are removed first.
func (s *customerService) Delete(ctx context.Context, adminID, customerID int, adminPassword string) error {
	if adminPassword == "" {
		return model.ValidationError("Admin password required")
	}

	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		s.logger.Error().Err(err).Int("admin_id", adminID).Msg("failed to get admin user")
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if admin == nil {
		return model.UnauthenticatedError("Admin user not found")
	}
	if !auth.CheckPassword(admin.PasswordHash, adminPassword) {
		s.logger.Warn().Int("admin_id", adminID).Msg("step-up confirmation failed")
		return model.UnauthenticatedError("Invalid admin password")
	}

	customer, err := s.userRepo.GetByID(ctx, customerID)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", customerID).Msg("failed to get customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if customer == nil {
		return model.ErrCustomerNotFound
	}
	if customer.Role == model.RoleAdmin {
		return model.ForbiddenError("Cannot delete admin users")
	}

	removed, err := s.orderRepo.DeleteByCustomerName(ctx, customer.Name)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", customerID).Msg("failed to delete customer orders")
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if err := s.userRepo.Delete(ctx, customerID); err != nil {
		s.logger.Error().Err(err).Int("user_id", customerID).Msg("failed to delete customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info().
		Int("user_id", customerID).
		Int64("orders_removed", removed).
		Msg("customer deleted")

	return nil
}
