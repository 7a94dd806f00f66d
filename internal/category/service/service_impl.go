package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/railzwaylabs/backoffice/internal/category/domain"
	categoryrepo "github.com/railzwaylabs/backoffice/internal/category/repository"
	"github.com/railzwaylabs/backoffice/pkg/db/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("category.service"),
		genID: p.GenID,
	}
}

// nameAndSlug trims raw and derives its slug. Names that slugify to nothing
// are rejected since the slug is the category's unique key.
func nameAndSlug(raw string) (string, string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", "", domain.ErrInvalidName
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", "", domain.ErrNameTooLong
	}
	categorySlug := slug.Make(name)
	if len(categorySlug) > domain.MaxSlugLength {
		categorySlug = strings.TrimRight(categorySlug[:domain.MaxSlugLength], "-")
	}
	if categorySlug == "" {
		return "", "", domain.ErrInvalidName
	}
	return name, categorySlug, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return categoryrepo.New(s.store.Session()).GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Category, error) {
	c, err := categoryrepo.New(s.store.Session()).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCategoryNotFound
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Category, error) {
	name, categorySlug, err := nameAndSlug(req.Name)
	if err != nil {
		return nil, err
	}

	repo := categoryrepo.New(s.store.Session())
	existing, err := repo.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	c := &domain.Category{
		ID:          s.genID.Generate(),
		Name:        name,
		Slug:        categorySlug,
		Description: strings.TrimSpace(req.Description),
	}
	repo.Add(c)

	affected, err := repo.SaveChanges(ctx)
	if err != nil {
		s.log.Error("failed to create category", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	if affected <= 0 {
		return nil, fmt.Errorf("category could not be saved: %w", repository.ErrNoRowsAffected)
	}

	s.log.Info("category created", zap.String("category_id", c.ID.String()), zap.String("slug", c.Slug))
	return c, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Category, error) {
	name, categorySlug, err := nameAndSlug(req.Name)
	if err != nil {
		return nil, err
	}

	repo := categoryrepo.New(s.store.Session())
	c, err := repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCategoryNotFound
	}

	clash, err := repo.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if clash != nil && clash.ID != c.ID {
		return nil, domain.ErrDuplicateName
	}

	c.Name = name
	c.Slug = categorySlug
	c.Description = strings.TrimSpace(req.Description)
	repo.Update(c)

	affected, err := repo.SaveChanges(ctx)
	if err != nil {
		s.log.Error("failed to update category", zap.String("category_id", c.ID.String()), zap.Error(err))
		return nil, err
	}
	if affected <= 0 {
		return nil, fmt.Errorf("category could not be updated: %w", repository.ErrNoRowsAffected)
	}
	return c, nil
}

// Delete refuses to remove a category that products still reference.
func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	repo := categoryrepo.New(s.store.Session())
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCategoryNotFound
	}

	inUse, err := repo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		s.log.Warn("refusing to delete referenced category",
			zap.String("category_id", id.String()),
			zap.Int64("products", inUse),
		)
		return domain.ErrCategoryInUse
	}

	repo.Remove(c)
	affected, err := repo.SaveChanges(ctx)
	if err != nil {
		return err
	}
	if affected <= 0 {
		return fmt.Errorf("category could not be deleted: %w", repository.ErrNoRowsAffected)
	}

	s.log.Info("category deleted", zap.String("category_id", id.String()))
	return nil
}
