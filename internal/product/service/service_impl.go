package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/railzwaylabs/backoffice/internal/category/domain"
	categoryrepo "github.com/railzwaylabs/backoffice/internal/category/repository"
	"github.com/railzwaylabs/backoffice/internal/product/domain"
	productrepo "github.com/railzwaylabs/backoffice/internal/product/repository"
	"github.com/railzwaylabs/backoffice/pkg/db/pagination"
	"github.com/railzwaylabs/backoffice/pkg/db/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Params struct {
	fx.In

	Store *repository.Store
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	store *repository.Store
	log   *zap.Logger
	genID *snowflake.Node
}

func New(p Params) domain.Service {
	return &Service{
		store: p.Store,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
	}
}

func (s *Service) products() *productrepo.ProductRepository {
	return productrepo.New(s.store.Session())
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	s.log.Info("fetching all products with category")
	return s.products().GetAllWithCategory(ctx)
}

func (s *Service) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	s.log.Info("fetching featured products")
	return s.products().GetFeatured(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, categoryID snowflake.ID) ([]domain.Product, error) {
	s.log.Info("fetching products for category", zap.String("category_id", categoryID.String()))
	return s.products().GetByCategory(ctx, categoryID)
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Product, error) {
	s.log.Info("fetching product", zap.String("product_id", id.String()))
	p, err := s.products().GetByIDWithCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]categorydomain.Category, error) {
	s.log.Info("fetching all categories")
	return categoryrepo.New(s.store.Session()).GetAll(ctx)
}

func (s *Service) ListSortedByPrice(ctx context.Context, ascending bool) ([]domain.Product, error) {
	s.log.Info("fetching products sorted by price", zap.Bool("ascending", ascending))
	return s.products().SortedByPrice(ctx, ascending)
}

func (s *Service) ListPage(ctx context.Context, page pagination.Pagination) ([]domain.Product, error) {
	s.log.Info("fetching products page", zap.Int("page", page.Page), zap.Int("page_size", page.PageSize))
	return s.products().PageWithCategory(ctx, page)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	s.log.Info("fetching total product count")
	return s.products().Count(ctx)
}

func (s *Service) ListByCategoryPage(ctx context.Context, categoryID snowflake.ID, page pagination.Pagination) ([]domain.Product, error) {
	s.log.Info("fetching products page for category",
		zap.String("category_id", categoryID.String()),
		zap.Int("page", page.Page),
		zap.Int("page_size", page.PageSize),
	)
	return s.products().PageByCategory(ctx, categoryID, page)
}

func (s *Service) CountByCategory(ctx context.Context, categoryID snowflake.ID) (int64, error) {
	s.log.Info("fetching product count for category", zap.String("category_id", categoryID.String()))
	return s.products().CountByCategory(ctx, categoryID)
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	log := s.log.With(zap.String("op", "create"), zap.String("name", name))
	log.Info("creating product")

	sess := s.store.Session()
	category, err := s.validate(ctx, sess, log, name, req.CategoryID, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	p := &domain.Product{
		ID:          s.genID.Generate(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Stock:       req.Stock,
		IsFeatured:  req.IsFeatured,
		CategoryID:  req.CategoryID,
		Metadata:    toJSONMap(req.Metadata),
	}

	repo := productrepo.New(sess)
	repo.Add(p)
	affected, err := repo.SaveChanges(ctx)
	if err != nil {
		log.Error("failed to save product", zap.Error(err))
		return nil, err
	}
	if affected <= 0 {
		log.Error("save reported no affected rows", zap.Int64("affected", affected))
		return nil, fmt.Errorf("product could not be saved: %w", repository.ErrNoRowsAffected)
	}

	p.Category = category
	log.Info("product created", zap.String("product_id", p.ID.String()))
	return p, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	log := s.log.With(zap.String("op", "update"), zap.String("product_id", req.ID.String()))
	log.Info("updating product")

	sess := s.store.Session()
	category, err := s.validate(ctx, sess, log, name, req.CategoryID, req.Price, req.Stock)
	if err != nil {
		return nil, err
	}

	repo := productrepo.New(sess)
	p, err := repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		log.Warn("update requested for missing product")
		return nil, domain.ErrProductNotFound
	}

	p.Name = name
	p.Description = strings.TrimSpace(req.Description)
	p.Price = req.Price
	p.Stock = req.Stock
	p.IsFeatured = req.IsFeatured
	p.CategoryID = req.CategoryID
	p.Metadata = toJSONMap(req.Metadata)

	repo.Update(p)
	affected, err := repo.SaveChanges(ctx)
	if err != nil {
		log.Error("failed to update product", zap.Error(err))
		return nil, err
	}
	if affected <= 0 {
		log.Error("save reported no affected rows", zap.Int64("affected", affected))
		return nil, fmt.Errorf("product could not be updated: %w", repository.ErrNoRowsAffected)
	}

	p.Category = category
	log.Info("product updated")
	return p, nil
}

// Delete treats a missing product as already deleted.
func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	log := s.log.With(zap.String("op", "delete"), zap.String("product_id", id.String()))
	log.Info("deleting product")

	repo := s.products()
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		log.Warn("delete requested for non-existing product")
		return nil
	}

	repo.Remove(p)
	affected, err := repo.SaveChanges(ctx)
	if err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}
	if affected <= 0 {
		log.Error("save reported no affected rows", zap.Int64("affected", affected))
		return fmt.Errorf("product could not be deleted: %w", repository.ErrNoRowsAffected)
	}

	log.Info("product deleted")
	return nil
}

// validate checks the category reference first, then price, then stock, and
// returns the referenced category.
func (s *Service) validate(
	ctx context.Context,
	sess *repository.Session,
	log *zap.Logger,
	name string,
	categoryID snowflake.ID,
	price decimal.Decimal,
	stock int,
) (*categorydomain.Category, error) {
	if name == "" {
		log.Warn("rejecting product without a name")
		return nil, domain.ErrInvalidName
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		log.Warn("rejecting product with oversized name", zap.Int("length", utf8.RuneCountInString(name)))
		return nil, domain.ErrNameTooLong
	}

	category, err := categoryrepo.New(sess).GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		log.Warn("rejecting product with unknown category", zap.String("category_id", categoryID.String()))
		return nil, domain.ErrInvalidCategory
	}

	if price.IsNegative() {
		log.Warn("rejecting product with negative price", zap.String("price", price.String()))
		return nil, domain.ErrNegativePrice
	}

	if stock < 0 {
		log.Warn("rejecting product with negative stock", zap.Int("stock", stock))
		return nil, domain.ErrNegativeStock
	}

	return category, nil
}

func toJSONMap(in map[string]any) datatypes.JSONMap {
	if len(in) == 0 {
		return nil
	}
	return datatypes.JSONMap(in)
}
