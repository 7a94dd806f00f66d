package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/railzwaylabs/backoffice/internal/category/domain"
	"github.com/railzwaylabs/backoffice/internal/category/service"
	productdomain "github.com/railzwaylabs/backoffice/internal/product/domain"
	"github.com/railzwaylabs/backoffice/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCategoryLifecycle(t *testing.T) {
	ctx := context.Background()
	store := testdb.Store(t)
	node := testdb.Node(t)
	svc := service.New(service.Params{Store: store, Log: zap.NewNop(), GenID: node})

	created, err := svc.Create(ctx, domain.CreateRequest{Name: " Home & Garden ", Description: "outdoor"})
	require.NoError(t, err)
	assert.Equal(t, "Home & Garden", created.Name)
	assert.Equal(t, "home-and-garden", created.Slug)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "home and garden"})
	require.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidName)

	updated, err := svc.Update(ctx, domain.UpdateRequest{ID: created.ID, Name: "Garden"})
	require.NoError(t, err)
	assert.Equal(t, "garden", updated.Slug)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garden", got.Name)

	_, err = svc.Update(ctx, domain.UpdateRequest{ID: 777, Name: "x"})
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrCategoryNotFound)
}

func TestDeleteRefusesReferencedCategory(t *testing.T) {
	ctx := context.Background()
	store := testdb.Store(t)
	node := testdb.Node(t)
	svc := service.New(service.Params{Store: store, Log: zap.NewNop(), GenID: node})

	c, err := svc.Create(ctx, domain.CreateRequest{Name: "Books"})
	require.NoError(t, err)
	require.NoError(t, store.DB().Create(&productdomain.Product{
		ID:         node.Generate(),
		Name:       "Novel",
		CategoryID: c.ID,
	}).Error)

	require.ErrorIs(t, svc.Delete(ctx, c.ID), domain.ErrCategoryInUse)

	_, err = svc.Get(ctx, c.ID)
	require.NoError(t, err)
}

func TestNamesRejectedBeforeStoring(t *testing.T) {
	ctx := context.Background()
	store := testdb.Store(t)
	svc := service.New(service.Params{Store: store, Log: zap.NewNop(), GenID: testdb.Node(t)})

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"punctuation only", "!!!", domain.ErrInvalidName},
		{"dashes only", " --- ", domain.ErrInvalidName},
		{"longer than column", strings.Repeat("a", domain.MaxNameLength+1), domain.ErrNameTooLong},
	}

	existing, err := svc.Create(ctx, domain.CreateRequest{Name: "Books"})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, domain.CreateRequest{Name: tt.in})
			require.ErrorIs(t, err, tt.want)

			_, err = svc.Update(ctx, domain.UpdateRequest{ID: existing.ID, Name: tt.in})
			require.ErrorIs(t, err, tt.want)
		})
	}

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "books", all[0].Slug)

	atLimit, err := svc.Create(ctx, domain.CreateRequest{Name: strings.Repeat("a", domain.MaxNameLength)})
	require.NoError(t, err)
	assert.Len(t, atLimit.Name, domain.MaxNameLength)

	ampersands, err := svc.Create(ctx, domain.CreateRequest{Name: strings.Repeat("&", domain.MaxNameLength)})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(ampersands.Slug), domain.MaxSlugLength)
	assert.False(t, strings.HasSuffix(ampersands.Slug, "-"))
}
