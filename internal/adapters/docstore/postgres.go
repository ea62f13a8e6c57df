package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/simosh/storefront/internal/domain"
)

// storageKey is the fixed key the whole document lives under.
const storageKey = "simosh-db"

type documentRow struct {
	Key       string `gorm:"primaryKey;size:64"`
	Data      []byte `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (documentRow) TableName() string { return "documents" }

// Postgres keeps the entire database document as one JSONB row. That keeps
// the whole-document read/write contract intact while giving the blob a real
// home instead of a browser's local storage.
type Postgres struct{ db *gorm.DB }

func NewPostgres(db *gorm.DB) *Postgres { return &Postgres{db: db} }

func (s *Postgres) Migrate() error {
	return s.db.AutoMigrate(&documentRow{})
}

func (s *Postgres) Load(ctx context.Context) (*domain.Database, error) {
	var row documentRow
	err := s.db.WithContext(ctx).First(&row, "key = ?", storageKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		db := domain.DefaultDatabase()
		if err := s.Save(ctx, db); err != nil {
			return nil, err
		}
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	var db domain.Database
	if err := json.Unmarshal(row.Data, &db); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	db.MergeDefaults()
	return &db, nil
}

func (s *Postgres) Save(ctx context.Context, db *domain.Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return s.db.WithContext(ctx).Save(&documentRow{Key: storageKey, Data: data, UpdatedAt: time.Now()}).Error
}
