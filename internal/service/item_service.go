package service

import (
	"context"
	"fmt"

	"hinglaj-store/internal/model"
	"hinglaj-store/internal/photo"
	"hinglaj-store/internal/repository"

	"github.com/rs/zerolog"
)

// itemService implements ItemService.
type itemService struct {
	itemRepo repository.ItemRepository
	photos   photo.Store
	logger   zerolog.Logger
}

// NewItemService creates a new catalogue service.
func NewItemService(itemRepo repository.ItemRepository, photos photo.Store, logger zerolog.Logger) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		photos:   photos,
		logger:   logger.With().Str("service", "item").Logger(),
	}
}

// List retrieves items, optionally filtered by category.
func (s *itemService) List(ctx context.Context, category string) ([]model.Item, error) {
	items, err := s.itemRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Categories retrieves the distinct item categories.
func (s *itemService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.itemRepo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single item.
func (s *itemService) GetByID(ctx context.Context, id int) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, model.ErrItemNotFound
	}
	return item, nil
}

// validateInput enforces the write-time invariants: a name and at least one
// variant.
func validateInput(in *model.ItemInput) error {
	if in.Name == "" {
		return model.ValidationError("Missing name")
	}
	if len(in.Variants) == 0 {
		return model.ValidationError("Variants must be a non-empty array")
	}
	if in.QuantityUnit == "" {
		in.QuantityUnit = model.UnitKg
	}
	return nil
}

// Create validates and creates an item with an optional photo.
func (s *itemService) Create(ctx context.Context, in model.ItemInput, upload *PhotoUpload) (*model.Item, error) {
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	item := &model.Item{
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		BaseQuantity: in.BaseQuantity,
		QuantityUnit: in.QuantityUnit,
		Variants:     in.Variants,
	}

	if upload != nil {
		url, err := s.photos.Save(ctx, upload.Filename, upload.Data)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", upload.Filename).Msg("failed to store photo")
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		item.PhotoURL = url
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create item")
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info().Int("item_id", item.ID).Str("name", item.Name).Msg("item created")

	return item, nil
}

// Update validates and updates an item. When a new photo is supplied the old
// file is deleted first, best-effort: a failed delete is logged, never fatal.
func (s *itemService) Update(ctx context.Context, id int, in model.ItemInput, upload *PhotoUpload) (*model.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, model.ErrItemNotFound
	}

	if err := validateInput(&in); err != nil {
		return nil, err
	}

	if upload != nil {
		if item.PhotoURL != "" {
			if err := s.photos.Delete(ctx, item.PhotoURL); err != nil {
				s.logger.Warn().Err(err).Str("photo_url", item.PhotoURL).Msg("failed to delete old photo")
			}
		}
		url, err := s.photos.Save(ctx, upload.Filename, upload.Data)
		if err != nil {
			s.logger.Error().Err(err).Str("filename", upload.Filename).Msg("failed to store photo")
			return nil, fmt.Errorf("failed to store photo: %w", err)
		}
		item.PhotoURL = url
	}

	item.Name = in.Name
	item.Description = in.Description
	item.Category = in.Category
	item.BaseQuantity = in.BaseQuantity
	item.QuantityUnit = in.QuantityUnit
	item.Variants = in.Variants

	if err := s.itemRepo.Update(ctx, item); err != nil {
		s.logger.Error().Err(err).Int("item_id", id).Msg("failed to update item")
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info().Int("item_id", id).Msg("item updated")

	return item, nil
}

// Delete removes an item and best-effort deletes its photo.
func (s *itemService) Delete(ctx context.Context, id int) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return model.ErrItemNotFound
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("item_id", id).Msg("failed to delete item")
		return fmt.Errorf("failed to delete item: %w", err)
	}

	if item.PhotoURL != "" {
		if err := s.photos.Delete(ctx, item.PhotoURL); err != nil {
			s.logger.Warn().Err(err).Str("photo_url", item.PhotoURL).Msg("failed to delete photo")
		}
	}

	s.logger.Info().Int("item_id", id).Msg("item deleted")

	return nil
}
