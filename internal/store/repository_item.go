package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/models"
)

// itemRepository is the SQL-backed implementation of [ItemRepository] for
// the example resource.
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// CreateItem persists a new item and returns it with the server-assigned id.
// A name collision yields [ErrItemNameAlreadyExists].
func (r *itemRepository) CreateItem(ctx context.Context, name string) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := insertItemQuery(r.db.Builder, name)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error building query")
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.Item
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&created.ID, &created.Name); err != nil {
		if isUniqueViolation(err) {
			return models.Item{}, ErrItemNameAlreadyExists
		}
		log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error creating item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindItemByID retrieves the item with the given id, or [ErrItemNotFound].
func (r *itemRepository) FindItemByID(ctx context.Context, id int64) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectItemQuery(r.db.Builder, id)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.FindItemByID").Msg("error building query")
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.Item
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&found.ID, &found.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}
		log.Err(err).Str("func", "*itemRepository.FindItemByID").Msg("error finding item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}
