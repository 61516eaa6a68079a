package postgres

import (
	"context"

	"gorm.io/gorm"
)

// PostgresManifestSequence allocates sheet numbers from a single counter row.
// The allocation is one atomic upsert, so two concurrent confirmations never
// observe the same value: the row lock taken by the update serializes them
// until their transactions finish.
type PostgresManifestSequence struct {
	db *gorm.DB
}

// NewPostgresManifestSequence creates a sequence over the given connection.
// Pass a transaction handle to make allocation roll back with the caller.
func NewPostgresManifestSequence(db *gorm.DB) *PostgresManifestSequence {
	return &PostgresManifestSequence{db: db}
}

// Next returns the next sheet number, starting at 1.
func (s *PostgresManifestSequence) Next(ctx context.Context) (int, error) {
	var value int

	row := s.db.WithContext(ctx).Raw(`
		INSERT INTO manifest_counter (id, value)
		VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET value = manifest_counter.value + 1
		RETURNING value
	`).Row()

	if err := row.Scan(&value); err != nil {
		return 0, err
	}

	return value, nil
}

// ManifestCounterDTO represents the single-row table backing the sheet-number
// sequence.
type ManifestCounterDTO struct {
	ID    int `gorm:"primaryKey"`
	Value int
}

// TableName specifies the database table name for the counter.
func (ManifestCounterDTO) TableName() string {
	return "manifest_counter"
}
