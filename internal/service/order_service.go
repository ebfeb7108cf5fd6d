package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hinglaj-store/internal/model"
	"hinglaj-store/internal/repository"

	"github.com/rs/zerolog"
)

// Admin listing bounds.
const (
	defaultOrderPageSize = 10
	maxPageSize          = 100
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Create validates a checkout submission and persists an order. Line
// resolution and the order write share one transaction so the availability
// check and the persisted snapshot see the same catalogue state; a failed
// line aborts with nothing written.
func (s *orderService) Create(ctx context.Context, userID int, req *model.OrderRequest) (*model.CreatedOrder, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, model.ValidationError("Order must contain at least one item")
	}
	if req.CustomerDetails.Name == "" || req.CustomerDetails.Phone == "" {
		return nil, model.ValidationError("Customer name and phone are required")
	}
	// The declared total is only sanity-checked; the persisted total is
	// always the server-computed sum below.
	if req.Total <= 0 {
		return nil, model.ValidationError("Invalid order total")
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var (
		lines []model.OrderLine
		total float64
	)
	for _, reqLine := range req.Items {
		var item *model.Item
		item, err = s.itemRepo.GetByIDTx(ctx, tx, reqLine.ItemID)
		if err != nil {
			s.logger.Error().Err(err).Int("item_id", reqLine.ItemID).Msg("failed to resolve item")
			return nil, fmt.Errorf("failed to create order: %w", err)
		}
		if item == nil {
			err = model.ValidationError(fmt.Sprintf("Item with ID %d not found", reqLine.ItemID))
			return nil, err
		}

		variant := item.FindVariant(reqLine.Size)
		if variant == nil || !variant.Available {
			s.logger.Warn().
				Int("item_id", item.ID).
				Str("size", reqLine.Size).
				Msg("requested variant unavailable")
			err = model.ValidationError(fmt.Sprintf("Variant %s for %s is not available", reqLine.Size, item.Name))
			return nil, err
		}

		lineTotal := variant.Price * float64(reqLine.Quantity)
		total += lineTotal
		lines = append(lines, model.OrderLine{
			ItemID:   item.ID,
			ItemName: item.Name,
			Size:     reqLine.Size,
			Price:    variant.Price,
			Quantity: reqLine.Quantity,
			Total:    lineTotal,
		})
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	order := &model.Order{
		UserID:       &userID,
		OrderNumber:  model.NewOrderNumber(),
		Status:       model.StatusPending,
		CustomerName: req.CustomerDetails.Name,
		CustomerDetails: model.CustomerDetails{
			Name:    req.CustomerDetails.Name,
			Phone:   req.CustomerDetails.Phone,
			Email:   req.CustomerDetails.Email,
			Address: req.CustomerDetails.Address,
			Notes:   req.CustomerDetails.Notes,
		},
		Items:         lines,
		Total:         total,
		PaymentMethod: paymentMethod,
		OrderDate:     time.Now(),
	}

	if err = s.orderRepo.Create(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to persist order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Int("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Float64("total", order.Total).
		Int("line_count", len(order.Items)).
		Msg("order created successfully")

	return &model.CreatedOrder{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Total:           order.Total,
		Status:          order.Status,
		OrderDate:       order.OrderDate,
		Items:           order.Items,
		CustomerDetails: order.CustomerDetails,
	}, nil
}

// Get retrieves one order. The requester must own the order or hold the
// admin role; an existing order the requester may not see yields an access
// error, not a not-found, mirroring the documented contract.
func (s *orderService) Get(ctx context.Context, requesterID int, requesterRole string, id int) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if requesterRole != model.RoleAdmin {
		if order.UserID == nil || *order.UserID != requesterID {
			s.logger.Warn().
				Int("order_id", id).
				Int("requester_id", requesterID).
				Msg("order access denied")
			return nil, model.ErrAccessDenied
		}
	}

	return order, nil
}

// ListMine retrieves the requester's orders, newest first, as lightweight
// summaries.
func (s *orderService) ListMine(ctx context.Context, userID int) ([]model.OrderSummary, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("failed to list user orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	summaries := make([]model.OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, model.OrderSummary{
			ID:              o.ID,
			OrderNumber:     o.OrderNumber,
			Total:           o.Total,
			Status:          o.Status,
			OrderDate:       o.OrderDate,
			ItemCount:       len(o.Items),
			CustomerDetails: o.CustomerDetails,
		})
	}
	return summaries, nil
}

// normalizeListParams clamps pagination and maps sort/dir onto the
// allow-list; unrecognised sort keys silently fall back to createdAt.
func normalizeListParams(params model.OrderListParams) model.OrderListParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultOrderPageSize
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}

	switch params.Sort {
	case "createdAt", "orderNumber", "status", "customerName", "total":
	default:
		params.Sort = "createdAt"
	}

	if strings.ToLower(params.Dir) == "asc" {
		params.Dir = "asc"
	} else {
		params.Dir = "desc"
	}

	return params
}

// List retrieves the admin order listing.
func (s *orderService) List(ctx context.Context, params model.OrderListParams) (*model.OrderPage, error) {
	params = normalizeListParams(params)

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	data := make([]model.AdminOrder, 0, len(orders))
	for _, o := range orders {
		data = append(data, model.AdminOrder{
			ID:              o.ID,
			OrderNumber:     o.OrderNumber,
			Total:           o.Total,
			Status:          o.Status,
			OrderDate:       o.OrderDate,
			PaymentMethod:   o.PaymentMethod,
			CustomerDetails: o.CustomerDetails,
			CustomerName:    o.CustomerName,
			ItemCount:       len(o.Items),
			Items:           o.Items,
			CreatedAt:       o.CreatedAt,
		})
	}

	pages := (total + params.Limit - 1) / params.Limit

	return &model.OrderPage{
		Data:  data,
		Total: total,
		Page:  params.Page,
		Pages: pages,
		Limit: params.Limit,
		Sort:  params.Sort,
		Dir:   params.Dir,
	}, nil
}

// UpdateStatus sets an order's status. The status must be one of the enum
// values but any current status may move to any other.
func (s *orderService) UpdateStatus(ctx context.Context, id int, status string) (*model.Order, error) {
	if !model.ValidStatus(status) {
		return nil, model.ValidationError("Invalid status")
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error().Err(err).Int("order_id", id).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Int("order_id", id).
		Str("status", status).
		Msg("order status updated")

	return order, nil
}

// Delete hard-deletes an order.
func (s *orderService) Delete(ctx context.Context, id int) error {
	deleted, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int("order_id", id).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if !deleted {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Int("order_id", id).Msg("order deleted")

	return nil
}
