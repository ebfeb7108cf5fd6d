package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hinglaj-store/internal/middleware"
	"hinglaj-store/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles admin customer-management HTTP requests.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// List handles GET /api/customers requests.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	customers, err := h.service.List(r.Context(), q.Get("q"), page, limit)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch customers", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, customers)
}

// Get handles GET /api/customers/{id} requests.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/api/customers")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer ID", h.logger)
		return
	}

	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch customer", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Overview handles GET /api/customers/stats/overview requests.
func (h *CustomerHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Overview(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to fetch customer stats", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

// Delete handles DELETE /api/customers/{id} requests. The requesting admin
// must resupply their own password in the body.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing authorization token", h.logger)
		return
	}

	id, err := idFromPath(r.URL.Path, "/api/customers")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer ID", h.logger)
		return
	}

	var body struct {
		AdminPassword string `json:"adminPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), claims.UserID, id, body.AdminPassword); err != nil {
		writeServiceError(w, err, "Failed to delete customer", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Customer and their orders deleted successfully"})
}
