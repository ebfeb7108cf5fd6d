package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"hinglaj-store/internal/metrics"
	"hinglaj-store/internal/middleware"
	"hinglaj-store/internal/model"
	"hinglaj-store/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing authorization token", h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), claims.UserID, &req)
	if err != nil {
		writeServiceError(w, err, "Failed to create order", h.logger)
		return
	}

	metrics.OrdersCreated.Inc()

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// MyOrders handles GET /api/orders/my-orders requests.
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing authorization token", h.logger)
		return
	}

	orders, err := h.service.ListMine(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch orders", h.logger)
		return
	}

	if orders == nil {
		orders = []model.OrderSummary{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// List handles GET /api/orders requests (admin listing).
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	params := model.OrderListParams{
		Query:  q.Get("q"),
		Status: q.Get("status"),
		Page:   page,
		Limit:  limit,
		Sort:   q.Get("sort"),
		Dir:    q.Get("dir"),
	}

	pageResult, err := h.service.List(r.Context(), params)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pageResult)
}

// orderResponse is the single-order projection.
type orderResponse struct {
	ID              int                   `json:"id"`
	OrderNumber     string                `json:"orderNumber"`
	Total           float64               `json:"total"`
	Status          string                `json:"status"`
	OrderDate       time.Time             `json:"orderDate"`
	PaymentMethod   string                `json:"paymentMethod"`
	Items           []model.OrderLine     `json:"items"`
	CustomerDetails model.CustomerDetails `json:"customerDetails"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// Get handles GET /api/orders/{id} requests (owner or admin).
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing authorization token", h.logger)
		return
	}

	id, err := idFromPath(r.URL.Path, "/api/orders")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID", h.logger)
		return
	}

	order, err := h.service.Get(r.Context(), claims.UserID, claims.Role, id)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Total:           order.Total,
		Status:          order.Status,
		OrderDate:       order.OrderDate,
		PaymentMethod:   order.PaymentMethod,
		Items:           order.Items,
		CustomerDetails: order.CustomerDetails,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	})
}

// UpdateStatus handles PATCH /api/orders/{id}/status requests (admin).
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/api/orders")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID", h.logger)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeServiceError(w, err, "Failed to update order status", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order status updated successfully",
		"order": map[string]interface{}{
			"id":        order.ID,
			"status":    order.Status,
			"updatedAt": order.UpdatedAt,
		},
	})
}

// Delete handles DELETE /api/orders/{id} requests (admin).
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/api/orders")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted successfully"})
}
