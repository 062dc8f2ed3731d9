package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-gin-watchlist/internal/core/database/dbtest"
	"go-gin-watchlist/internal/domain"
)

func migrated(t *testing.T) *gorm.DB {
	t.Helper()
	db := dbtest.Open(t)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Movie{}))
	return db
}

func TestMovieRepo_CreateListFind(t *testing.T) {
	ctx := context.Background()
	r := NewMovieRepo(migrated(t))

	empty, err := r.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	a := &domain.Movie{Title: "Leon", Year: "1994"}
	b := &domain.Movie{Title: "WALL-E", Year: "2008"}
	require.NoError(t, r.Create(ctx, a))
	require.NoError(t, r.Create(ctx, b))
	assert.NotZero(t, a.ID)
	assert.Greater(t, b.ID, a.ID)

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Leon", all[0].Title)
	assert.Equal(t, "WALL-E", all[1].Title)

	got, err := r.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, *b, *got)

	_, err = r.FindByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovieRepo_UpdateTouchesOnlyTargetRow(t *testing.T) {
	ctx := context.Background()
	r := NewMovieRepo(migrated(t))

	a := &domain.Movie{Title: "Leon", Year: "1994"}
	b := &domain.Movie{Title: "Mahjong", Year: "1996"}
	require.NoError(t, r.Create(ctx, a))
	require.NoError(t, r.Create(ctx, b))

	require.NoError(t, r.Update(ctx, &domain.Movie{ID: a.ID, Title: "Leon: The Professional", Year: "1995"}))
	// 值不变也不应报错
	require.NoError(t, r.Update(ctx, &domain.Movie{ID: b.ID, Title: "Mahjong", Year: "1996"}))

	got, err := r.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leon: The Professional", got.Title)
	assert.Equal(t, "1995", got.Year)

	other, err := r.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, *b, *other)

	err = r.Update(ctx, &domain.Movie{ID: 999, Title: "x", Year: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovieRepo_Delete(t *testing.T) {
	ctx := context.Background()
	r := NewMovieRepo(migrated(t))

	a := &domain.Movie{Title: "Leon", Year: "1994"}
	b := &domain.Movie{Title: "Mahjong", Year: "1996"}
	require.NoError(t, r.Create(ctx, a))
	require.NoError(t, r.Create(ctx, b))

	require.NoError(t, r.Delete(ctx, a.ID))
	assert.ErrorIs(t, r.Delete(ctx, a.ID), domain.ErrNotFound)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = r.FindByID(ctx, b.ID)
	assert.NoError(t, err)
}

func TestUserRepo_First(t *testing.T) {
	ctx := context.Background()
	r := NewUserRepo(migrated(t))

	u, err := r.First(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, r.Create(ctx, &domain.User{Name: "imtinge"}))
	require.NoError(t, r.Create(ctx, &domain.User{Name: "second"}))

	u, err = r.First(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "imtinge", u.Name)
}
