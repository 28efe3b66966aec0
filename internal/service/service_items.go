package service

import (
	"context"
	"fmt"

	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/internal/store"
	"github.com/kispace/kispace-server/models"
)

// itemService is the concrete implementation of ItemService. The example
// resource has no business rules of its own; the service exists to keep the
// transport layer off the repositories and to give the item flow a place to
// grow.
type itemService struct {
	itemRepository store.ItemRepository
	logger         *logger.Logger
}

// NewItemService constructs an ItemService backed by the given repository.
func NewItemService(itemRepository store.ItemRepository, logger *logger.Logger) ItemService {
	return &itemService{
		itemRepository: itemRepository,
		logger:         logger,
	}
}

// CreateItem persists a new item. A taken name surfaces as
// store.ErrItemNameAlreadyExists.
func (s *itemService) CreateItem(ctx context.Context, name string) (models.Item, error) {
	created, err := s.itemRepository.CreateItem(ctx, name)
	if err != nil {
		return models.Item{}, fmt.Errorf("item creation ended with error: %w", err)
	}

	return created, nil
}

// GetItem loads the item with the given id, or store.ErrItemNotFound.
func (s *itemService) GetItem(ctx context.Context, id int64) (models.Item, error) {
	found, err := s.itemRepository.FindItemByID(ctx, id)
	if err != nil {
		return models.Item{}, fmt.Errorf("item search by id failed: %w", err)
	}

	return found, nil
}
