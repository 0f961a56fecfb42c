//go:build integration

package catalogrepo_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-petr/bookstore/internal/catalogrepo"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/internal/integrationtest"
	"github.com/go-petr/bookstore/internal/test"
	"github.com/go-petr/bookstore/pkg/configpkg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// Constraint violations abort a transaction, so these tests run on a flushed db.
func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	config, err := configpkg.Load("../../configs")
	require.NoError(t, err)

	return integrationtest.SetupDB(t, config.DBDriver, config.DBSource)
}

func TestBookRepo(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := catalogrepo.NewBookRepo(db)

	book := test.SeedBook(t, db, "12.50")

	got, err := repo.Get(ctx, book.ID)
	require.NoError(t, err)

	if diff := cmp.Diff(book, got); diff != "" {
		t.Errorf("repo.Get(ctx, %v) mismatch (-want +got):\n%s", book.ID, diff)
	}

	arg := domain.BookParams{
		Title:    "Renamed",
		Price:    "-1",
		AuthorID: book.AuthorID,
		GenreID:  book.GenreID,
	}

	_, err = repo.Update(ctx, book.ID, arg)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)

	arg.Price = "3"
	updated, err := repo.Update(ctx, book.ID, arg)
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, "3", updated.Price)

	arg.AuthorID = 424242
	_, err = repo.Create(ctx, arg)
	require.ErrorIs(t, err, domain.ErrAuthorNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, repo.Delete(ctx, book.ID))
	require.ErrorIs(t, repo.Delete(ctx, book.ID), domain.ErrBookNotFound)

	_, err = repo.Get(ctx, book.ID)
	require.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestListBooks(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := catalogrepo.NewBookRepo(db)

	for i := 0; i < 7; i++ {
		test.SeedBook(t, db, "1")
	}

	first, err := repo.List(ctx, 5, 0)
	require.NoError(t, err)
	require.Len(t, first, 5)

	rest, err := repo.List(ctx, 5, 5)
	require.NoError(t, err)
	require.Len(t, rest, 2)

	none, err := repo.List(ctx, 5, 10)
	require.NoError(t, err)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestGenreRepo(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := catalogrepo.NewGenreRepo(db)

	genre := test.SeedGenre(t, db)

	_, err := repo.Create(ctx, domain.GenreParams{Name: genre.Name})
	require.ErrorIs(t, err, domain.ErrGenreAlreadyExists)

	other, err := repo.Create(ctx, domain.GenreParams{Name: genre.Name + "x"})
	require.NoError(t, err)

	_, err = repo.Update(ctx, other.ID, domain.GenreParams{Name: genre.Name})
	require.ErrorIs(t, err, domain.ErrGenreAlreadyExists)

	_, err = repo.Update(ctx, 424242, domain.GenreParams{Name: "Nowhere"})
	require.ErrorIs(t, err, domain.ErrGenreNotFound)
}

func TestDeleteReferenced(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	book := test.SeedBook(t, db, "1")

	err := catalogrepo.NewAuthorRepo(db).Delete(ctx, book.AuthorID)
	require.ErrorIs(t, err, domain.ErrReferenced)

	err = catalogrepo.NewGenreRepo(db).Delete(ctx, book.GenreID)
	require.ErrorIs(t, err, domain.ErrReferenced)
}
