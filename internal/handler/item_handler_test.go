package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"hinglaj-store/internal/model"
	"hinglaj-store/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockItemService is a mock implementation of ItemService.
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) List(ctx context.Context, category string) ([]model.Item, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockItemService) GetByID(ctx context.Context, id int) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) Create(ctx context.Context, in model.ItemInput, photo *service.PhotoUpload) (*model.Item, error) {
	args := m.Called(ctx, in, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) Update(ctx context.Context, id int, in model.ItemInput, photo *service.PhotoUpload) (*model.Item, error) {
	args := m.Called(ctx, id, in, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemService) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func multipartItemRequest(t *testing.T, target string, fields map[string]string, photoName string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if photoName != "" {
		fw, err := mw.CreateFormFile("photo", photoName)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestItemHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("multipart form with photo", func(t *testing.T) {
		mockService := new(MockItemService)
		h := NewItemHandler(mockService, logger)

		wantInput := model.ItemInput{
			Name:         "Rasgulla",
			Description:  "Soft and spongy",
			Category:     "sweets",
			BaseQuantity: 10.5,
			QuantityUnit: "kg",
			Variants:     []model.Variant{{Size: "500g", Price: 150, Available: true}},
		}
		mockService.On("Create", mock.Anything, wantInput, mock.MatchedBy(func(p *service.PhotoUpload) bool {
			return p != nil && p.Filename == "rasgulla.jpg"
		})).Return(&model.Item{ID: 3, Name: "Rasgulla"}, nil)

		req := multipartItemRequest(t, "/api/items", map[string]string{
			"name":         "Rasgulla",
			"description":  "Soft and spongy",
			"category":     "sweets",
			"baseQuantity": "10.5",
			"quantityUnit": "kg",
			"variants":     `[{"size":"500g","price":150,"available":true}]`,
		}, "rasgulla.jpg")
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("photo is optional", func(t *testing.T) {
		mockService := new(MockItemService)
		h := NewItemHandler(mockService, logger)

		mockService.On("Create", mock.Anything, mock.AnythingOfType("model.ItemInput"), (*service.PhotoUpload)(nil)).
			Return(&model.Item{ID: 3}, nil)

		req := multipartItemRequest(t, "/api/items", map[string]string{
			"name":     "Rasgulla",
			"variants": `[{"size":"500g","price":150,"available":true}]`,
		}, "")
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("bad variants JSON", func(t *testing.T) {
		mockService := new(MockItemService)
		h := NewItemHandler(mockService, logger)

		req := multipartItemRequest(t, "/api/items", map[string]string{
			"name":     "Rasgulla",
			"variants": `{broken`,
		}, "")
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid variants JSON")
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non-numeric base quantity falls back to zero", func(t *testing.T) {
		mockService := new(MockItemService)
		h := NewItemHandler(mockService, logger)

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(in model.ItemInput) bool {
			return in.BaseQuantity == 0
		}), (*service.PhotoUpload)(nil)).Return(&model.Item{ID: 3}, nil)

		req := multipartItemRequest(t, "/api/items", map[string]string{
			"name":         "Rasgulla",
			"baseQuantity": "lots",
			"variants":     `[{"size":"500g","price":150,"available":true}]`,
		}, "")
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		mockService.AssertExpectations(t)
	})
}

func TestItemHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("passes category filter", func(t *testing.T) {
		mockService := new(MockItemService)
		h := NewItemHandler(mockService, logger)

		mockService.On("List", mock.Anything, "sweets").Return([]model.Item{{ID: 1, Name: "Rasgulla"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/items?category=sweets", nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var items []model.Item
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		require.Len(t, items, 1)
	})

	t.Run("empty catalogue is an array", func(t *testing.T) {
		mockService := new(MockItemService)
		h := NewItemHandler(mockService, logger)

		mockService.On("List", mock.Anything, "").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
		rec := httptest.NewRecorder()

		h.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}

func TestItemHandler_Get_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockItemService)
	h := NewItemHandler(mockService, logger)

	mockService.On("GetByID", mock.Anything, 99).Return(nil, model.ErrItemNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/items/99", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product not found")
}

func TestItemHandler_Delete(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockItemService)
	h := NewItemHandler(mockService, logger)

	mockService.On("Delete", mock.Anything, 3).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/items/3", nil)
	rec := httptest.NewRecorder()

	h.Delete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product deleted successfully")
}
