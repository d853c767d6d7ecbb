package tilecache

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CachedTile is one stored tile, keyed by cache namespace and tile address.
type CachedTile struct {
	ID        uint   `gorm:"primarykey"`
	Namespace string `gorm:"uniqueIndex:idx_tile_addr"`
	Zoom      int    `gorm:"uniqueIndex:idx_tile_addr"`
	X         int    `gorm:"uniqueIndex:idx_tile_addr"`
	Y         int    `gorm:"uniqueIndex:idx_tile_addr"`
	Data      []byte
	FetchedAt time.Time
}

// Store persists tiles in a GORM-backed table (SQLite in practice).
type Store struct {
	db        *gorm.DB
	namespace string
}

// NewStore migrates the tile table and returns a store scoped to the given
// cache namespace.
func NewStore(db *gorm.DB, namespace string) (*Store, error) {
	if err := db.AutoMigrate(&CachedTile{}); err != nil {
		return nil, fmt.Errorf("migrating tile table: %w", err)
	}
	return &Store{db: db, namespace: namespace}, nil
}

// Put stores a tile, replacing any previous copy at the same address.
func (s *Store) Put(t Tile, data []byte) error {
	row := CachedTile{
		Namespace: s.namespace,
		Zoom:      t.Zoom,
		X:         t.X,
		Y:         t.Y,
		Data:      data,
		FetchedAt: time.Now().UTC(),
	}
	err := s.db.Where("namespace = ? AND zoom = ? AND x = ? AND y = ?",
		s.namespace, t.Zoom, t.X, t.Y).
		Delete(&CachedTile{}).Error
	if err != nil {
		return fmt.Errorf("replacing tile: %w", err)
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("storing tile: %w", err)
	}
	return nil
}

// Has reports whether a tile is already cached.
func (s *Store) Has(t Tile) (bool, error) {
	var count int64
	err := s.db.Model(&CachedTile{}).
		Where("namespace = ? AND zoom = ? AND x = ? AND y = ?",
			s.namespace, t.Zoom, t.X, t.Y).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the number of tiles stored under this namespace.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.Model(&CachedTile{}).
		Where("namespace = ?", s.namespace).
		Count(&count).Error
	return count, err
}

// Clear bulk-deletes every tile under this namespace.
func (s *Store) Clear() error {
	err := s.db.Where("namespace = ?", s.namespace).Delete(&CachedTile{}).Error
	if err != nil {
		return fmt.Errorf("clearing tile cache: %w", err)
	}
	return nil
}
