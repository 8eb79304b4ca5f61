package database

import (
	"context"
	"fmt"

	"github.com/ifplan/ifplan/internal/config"
)

// NewInMemory opens a private in-memory database with the schema applied.
func NewInMemory(ctx context.Context) (*DB, error) {
	db, err := Open(MemoryPath, config.DatabaseConfig{}, "")
	if err != nil {
		return nil, err
	}

	if _, err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating in-memory database: %w", err)
	}

	return db, nil
}
