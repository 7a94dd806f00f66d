package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/backoffice/pkg/db/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID    int64 `gorm:"primaryKey;autoIncrement:false"`
	Name  string
	Stock int
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	return NewStore(db, retry.Policy{})
}

func TestSaveChanges_CommitsStagedAdds(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := For[widget](store.Session())

	repo.Add(&widget{ID: 2, Name: "b", Stock: 3})
	repo.Add(&widget{ID: 1, Name: "a", Stock: 10})

	before, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, before)
	assert.Equal(t, 2, repo.Session().Pending())

	affected, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)
	assert.Zero(t, repo.Session().Pending())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.EqualValues(t, 1, all[0].ID)
	assert.EqualValues(t, 2, all[1].ID)
}

func TestSaveChanges_NothingStaged(t *testing.T) {
	store := newTestStore(t)

	affected, err := store.Session().SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestGetByID_Missing(t *testing.T) {
	store := newTestStore(t)
	repo := For[widget](store.Session())

	got, err := repo.GetByID(context.Background(), int64(42))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindAndCount(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := For[widget](store.Session())

	repo.Add(&widget{ID: 1, Name: "low", Stock: 2})
	repo.Add(&widget{ID: 2, Name: "edge", Stock: 5})
	repo.Add(&widget{ID: 3, Name: "high", Stock: 9})
	_, err := repo.SaveChanges(ctx)
	require.NoError(t, err)

	low, err := repo.Find(ctx, Where("stock <= ?", 5))
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "low", low[0].Name)
	assert.Equal(t, "edge", low[1].Name)

	n, err := repo.Count(ctx, Where("stock <= ?", 5))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestUpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := For[widget](store.Session())

	w := &widget{ID: 7, Name: "before", Stock: 1}
	repo.Add(w)
	_, err := repo.SaveChanges(ctx)
	require.NoError(t, err)

	w.Name = "after"
	w.Stock = 0
	repo.Update(w)
	affected, err := repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err := repo.GetByID(ctx, int64(7))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "after", got.Name)
	assert.Zero(t, got.Stock)

	repo.Remove(got)
	affected, err = repo.SaveChanges(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	got, err = repo.GetByID(ctx, int64(7))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdate_MissingRowAffectsNothing(t *testing.T) {
	store := newTestStore(t)
	repo := For[widget](store.Session())

	repo.Update(&widget{ID: 99, Name: "ghost"})
	affected, err := repo.SaveChanges(context.Background())
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestSaveChanges_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := For[widget](store.Session())

	repo.Add(&widget{ID: 1, Name: "first"})
	repo.Add(&widget{ID: 1, Name: "duplicate"})

	_, err := repo.SaveChanges(ctx)
	require.Error(t, err)
	assert.Equal(t, 2, repo.Session().Pending())

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSessions_AreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	first := For[widget](store.Session())
	second := For[widget](store.Session())

	first.Add(&widget{ID: 1, Name: "one"})
	second.Add(&widget{ID: 2, Name: "two"})

	affected, err := second.SaveChanges(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	assert.Equal(t, 1, first.Session().Pending())

	all, err := first.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "two", all[0].Name)
}

func TestRepositoriesShareSession(t *testing.T) {
	type gadget struct {
		ID   int64 `gorm:"primaryKey;autoIncrement:false"`
		Kind string
	}

	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.DB().AutoMigrate(&gadget{}))

	sess := store.Session()
	widgets := For[widget](sess)
	gadgets := For[gadget](sess)

	widgets.Add(&widget{ID: 1, Name: "w"})
	gadgets.Add(&gadget{ID: 1, Kind: "g"})

	affected, err := sess.SaveChanges(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)
}
