package localstore

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is the single table backing the store: one row per key.
type Blob struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value []byte `gorm:"type:bytea"`
}

func (Blob) TableName() string { return "blobs" }

type gormStore struct {
	db *gorm.DB
}

// NewGormStore returns a Store backed by the given database, migrating the
// blobs table if needed.
func NewGormStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, err
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob Blob
	if err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return blob.Value, nil
}

func (s *gormStore) Set(ctx context.Context, key string, value []byte) error {
	blob := Blob{Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&blob).Error
}

func (s *gormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Blob{}, "key = ?", key).Error
}
