package store

import (
	"github.com/kispace/kispace-server/internal/logger"
)

// Storages aggregates every repository the application persists through.
type Storages struct {
	UserRepository UserRepository
	ItemRepository ItemRepository
}

// NewStorages wires all repositories to the given database handle.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		ItemRepository: NewItemRepository(db, logger),
	}
}
