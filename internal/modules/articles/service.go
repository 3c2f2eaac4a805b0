package articles

import (
	"context"
	"errors"

	"github.com/easynews/core/internal/models"
	"github.com/easynews/core/internal/pkg/pagination"
	"github.com/easynews/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no article matches the requested id.
var ErrNotFound = errors.New("article not found")

// Service implements the read side over persisted articles.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns one page of articles, newest publication first. An empty
// category matches everything.
func (s *Service) List(ctx context.Context, q pagination.Query, category string) ([]models.ArticleModel, response.Pagination, error) {
	query := s.db.WithContext(ctx).Model(&models.ArticleModel{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	query = query.Order("pub_date DESC")

	var items []models.ArticleModel
	page, err := pagination.Paginate(query, q, &items)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	if items == nil {
		items = []models.ArticleModel{}
	}
	return items, page, nil
}

// GetByID returns a single article or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*models.ArticleModel, error) {
	var article models.ArticleModel
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&article).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}
