package ingest

import (
	"context"

	"github.com/easynews/core/internal/models"
	"gorm.io/gorm"
)

// Store persists enriched records. Exists is an advisory pre-check only; the
// unique index on original_id is what actually prevents duplicates under
// overlapping runs, surfacing as gorm.ErrDuplicatedKey from Create.
type Store interface {
	Exists(ctx context.Context, originalID string) (bool, error)
	Create(ctx context.Context, article *models.ArticleModel) error
}

// GormStore is the MySQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Exists(ctx context.Context, originalID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.ArticleModel{}).
		Where("original_id = ?", originalID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) Create(ctx context.Context, article *models.ArticleModel) error {
	return s.db.WithContext(ctx).Create(article).Error
}
