package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hinglaj-store/internal/model"
	"hinglaj-store/internal/service"

	"github.com/rs/zerolog"
)

// maxUploadBytes bounds the in-memory part of a multipart item submission.
const maxUploadBytes = 10 << 20

// ItemHandler handles catalogue HTTP requests.
type ItemHandler struct {
	service service.ItemService
	logger  zerolog.Logger
}

// NewItemHandler creates a new item handler.
func NewItemHandler(service service.ItemService, logger zerolog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger.With().Str("handler", "item").Logger(),
	}
}

// List handles GET /api/items requests, optionally filtered by category.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeServiceError(w, err, "Failed to fetch products", h.logger)
		return
	}

	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Categories handles GET /api/items/categories requests.
func (h *ItemHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to fetch categories", h.logger)
		return
	}

	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// Get handles GET /api/items/{id} requests.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/api/items")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID", h.logger)
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to fetch product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /api/items requests (admin, multipart form).
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, photo, ok := h.parseItemForm(w, r)
	if !ok {
		return
	}

	item, err := h.service.Create(r.Context(), in, photo)
	if err != nil {
		writeServiceError(w, err, "Failed to create product", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/items/{id} requests (admin, multipart form).
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/api/items")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID", h.logger)
		return
	}

	in, photo, ok := h.parseItemForm(w, r)
	if !ok {
		return
	}

	item, err := h.service.Update(r.Context(), id, in, photo)
	if err != nil {
		writeServiceError(w, err, "Failed to update product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id} requests (admin).
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r.URL.Path, "/api/items")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete product", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

// parseItemForm decodes the multipart item submission shared by Create and
// Update. It writes the error response itself when parsing fails.
func (h *ItemHandler) parseItemForm(w http.ResponseWriter, r *http.Request) (model.ItemInput, *service.PhotoUpload, bool) {
	var in model.ItemInput

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form", h.logger)
		return in, nil, false
	}

	in.Name = r.FormValue("name")
	in.Description = r.FormValue("description")
	in.Category = r.FormValue("category")
	in.QuantityUnit = r.FormValue("quantityUnit")

	// A non-numeric quantity falls back to zero rather than failing the
	// whole submission.
	if qty, err := strconv.ParseFloat(r.FormValue("baseQuantity"), 64); err == nil {
		in.BaseQuantity = qty
	}

	if raw := r.FormValue("variants"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Variants); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid variants JSON", h.logger)
			return in, nil, false
		}
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			return in, nil, true
		}
		writeError(w, http.StatusBadRequest, "invalid photo upload", h.logger)
		return in, nil, false
	}

	return in, &service.PhotoUpload{Filename: header.Filename, Data: file}, true
}
