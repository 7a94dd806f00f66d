package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/backoffice/internal/category/domain"
	"github.com/railzwaylabs/backoffice/pkg/db/repository"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	*repository.Repository[domain.Category]
}

func New(s *repository.Session) *CategoryRepository {
	return &CategoryRepository{Repository: repository.For[domain.Category](s)}
}

// FindBySlug returns nil without an error when no category has the slug.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var c domain.Category
	err := r.Query(ctx).Where("slug = ?", slug).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CountProducts returns how many products reference the category.
func (r *CategoryRepository) CountProducts(ctx context.Context, id snowflake.ID) (int64, error) {
	var n int64
	err := r.Session().DB(ctx).Table("products").Where("category_id = ?", id).Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}
