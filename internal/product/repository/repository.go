package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/backoffice/internal/product/domain"
	"github.com/railzwaylabs/backoffice/pkg/db/pagination"
	"github.com/railzwaylabs/backoffice/pkg/db/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository adds reads that bring each product's category along.
type ProductRepository struct {
	*repository.Repository[domain.Product]
}

func New(s *repository.Session) *ProductRepository {
	return &ProductRepository{Repository: repository.For[domain.Product](s)}
}

func withCategory(db *gorm.DB) *gorm.DB {
	return db.Preload("Category")
}

func inCategory(categoryID snowflake.ID) repository.Predicate {
	return repository.Where("category_id = ?", categoryID)
}

func (r *ProductRepository) GetAllWithCategory(ctx context.Context) ([]domain.Product, error) {
	return r.Find(ctx, withCategory)
}

// GetByIDWithCategory returns nil without an error when the product does not exist.
func (r *ProductRepository) GetByIDWithCategory(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	var p domain.Product
	err := r.Query(ctx).Scopes(withCategory).Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByCategory(ctx context.Context, categoryID snowflake.ID) ([]domain.Product, error) {
	return r.Find(ctx, withCategory, inCategory(categoryID))
}

func (r *ProductRepository) GetFeatured(ctx context.Context) ([]domain.Product, error) {
	return r.Find(ctx, withCategory, repository.Where("is_featured = ?", true))
}

// SortedByPrice breaks price ties by id so the order is stable.
func (r *ProductRepository) SortedByPrice(ctx context.Context, ascending bool) ([]domain.Product, error) {
	var items []domain.Product
	err := r.Query(ctx).
		Scopes(withCategory).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "price"}, Desc: !ascending}).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ProductRepository) PageWithCategory(ctx context.Context, page pagination.Pagination) ([]domain.Product, error) {
	return r.page(ctx, page)
}

func (r *ProductRepository) PageByCategory(ctx context.Context, categoryID snowflake.ID, page pagination.Pagination) ([]domain.Product, error) {
	return r.page(ctx, page, inCategory(categoryID))
}

func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID snowflake.ID) (int64, error) {
	return r.Count(ctx, inCategory(categoryID))
}

func (r *ProductRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	return r.Count(ctx, repository.Where("stock <= ?", threshold))
}

func (r *ProductRepository) page(ctx context.Context, page pagination.Pagination, predicates ...repository.Predicate) ([]domain.Product, error) {
	var items []domain.Product
	stmt := r.Query(ctx).Scopes(withCategory)
	for _, p := range predicates {
		stmt = stmt.Scopes(p)
	}
	err := stmt.Order("id").Scopes(page.Scope()).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
