package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one stored key/value row
type Entry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable regardless of gorm naming strategy
func (Entry) TableName() string {
	return "storage_entries"
}

// Gorm keeps entries in a single SQL table
type Gorm struct {
	db *gorm.DB
}

// NewGorm migrates the entry table and returns the backend
func NewGorm(db *gorm.DB) (*Gorm, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("migrate storage entries: %w", err)
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) ([]byte, error) {
	var e Entry
	err := g.db.WithContext(ctx).Where("key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get entry %q: %w", key, err)
	}
	return e.Value, nil
}

func (g *Gorm) Set(ctx context.Context, key string, value []byte) error {
	e := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("set entry %q: %w", key, err)
	}
	return nil
}

func (g *Gorm) Remove(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Where("key = ?", key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("remove entry %q: %w", key, err)
	}
	return nil
}
