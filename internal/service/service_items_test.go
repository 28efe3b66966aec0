package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/internal/mock"
	"github.com/kispace/kispace-server/internal/store"
	"github.com/kispace/kispace-server/models"
)

func TestItemService_CreateItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockItemRepository(ctrl)
	svc := NewItemService(repo, logger.Nop())

	repo.EXPECT().CreateItem(gomock.Any(), "widget").Return(models.Item{ID: 1, Name: "widget"}, nil)

	created, err := svc.CreateItem(context.Background(), "widget")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestItemService_CreateItem_DuplicateName(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockItemRepository(ctrl)
	svc := NewItemService(repo, logger.Nop())

	repo.EXPECT().CreateItem(gomock.Any(), "widget").Return(models.Item{}, store.ErrItemNameAlreadyExists)

	_, err := svc.CreateItem(context.Background(), "widget")
	assert.ErrorIs(t, err, store.ErrItemNameAlreadyExists)
}

func TestItemService_GetItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockItemRepository(ctrl)
	svc := NewItemService(repo, logger.Nop())

	repo.EXPECT().FindItemByID(gomock.Any(), int64(7)).Return(models.Item{ID: 7, Name: "widget"}, nil)

	found, err := svc.GetItem(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "widget", found.Name)
}

func TestItemService_GetItem_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockItemRepository(ctrl)
	svc := NewItemService(repo, logger.Nop())

	repo.EXPECT().FindItemByID(gomock.Any(), int64(42)).Return(models.Item{}, store.ErrItemNotFound)

	_, err := svc.GetItem(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}
