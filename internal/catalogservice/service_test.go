package catalogservice

import (
	"context"
	"sort"
	"testing"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/go-petr/bookstore/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// fakeGenres is an in-memory Repo of genres.
type fakeGenres struct {
	items  map[int32]domain.Genre
	nextID int32
	err    error
}

func newFakeGenres(n int) *fakeGenres {
	f := &fakeGenres{items: map[int32]domain.Genre{}}
	for i := 0; i < n; i++ {
		_, _ = f.Create(context.Background(), domain.GenreParams{Name: randompkg.String(8)})
	}

	return f
}

func (f *fakeGenres) Get(_ context.Context, id int32) (domain.Genre, error) {
	if f.err != nil {
		return domain.Genre{}, f.err
	}

	g, ok := f.items[id]
	if !ok {
		return domain.Genre{}, domain.ErrGenreNotFound
	}

	return g, nil
}

func (f *fakeGenres) List(_ context.Context, limit, offset int32) ([]domain.Genre, error) {
	if f.err != nil {
		return nil, f.err
	}

	ids := make([]int, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, int(id))
	}

	sort.Ints(ids)

	var out []domain.Genre

	for i := int(offset); i < len(ids) && i < int(offset+limit); i++ {
		out = append(out, f.items[int32(ids[i])])
	}

	return out, nil
}

func (f *fakeGenres) Count(context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}

	return int64(len(f.items)), nil
}

func (f *fakeGenres) Create(_ context.Context, arg domain.GenreParams) (domain.Genre, error) {
	for _, g := range f.items {
		if g.Name == arg.Name {
			return domain.Genre{}, domain.ErrGenreAlreadyExists
		}
	}

	f.nextID++
	g := domain.Genre{ID: f.nextID, Name: arg.Name}
	f.items[g.ID] = g

	return g, nil
}

func (f *fakeGenres) Update(_ context.Context, id int32, arg domain.GenreParams) (domain.Genre, error) {
	g, ok := f.items[id]
	if !ok {
		return domain.Genre{}, domain.ErrGenreNotFound
	}

	g.Name = arg.Name
	f.items[id] = g

	return g, nil
}

func (f *fakeGenres) Delete(_ context.Context, id int32) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrGenreNotFound
	}

	delete(f.items, id)

	return nil
}

func TestPage(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		total     int
		page      string
		wantNum   int32
		wantPages int32
		wantItems int
		wantNext  bool
		wantPrev  bool
	}{
		{name: "FirstPage", total: 25, page: "1", wantNum: 1, wantPages: 3, wantItems: 10, wantNext: true},
		{name: "MiddlePage", total: 25, page: "2", wantNum: 2, wantPages: 3, wantItems: 10, wantNext: true, wantPrev: true},
		{name: "LastPartialPage", total: 25, page: "3", wantNum: 3, wantPages: 3, wantItems: 5, wantPrev: true},
		{name: "NotANumber", total: 25, page: "abc", wantNum: 1, wantPages: 3, wantItems: 10, wantNext: true},
		{name: "Missing", total: 25, page: "", wantNum: 1, wantPages: 3, wantItems: 10, wantNext: true},
		{name: "BeyondLast", total: 25, page: "99", wantNum: 3, wantPages: 3, wantItems: 5, wantPrev: true},
		{name: "Zero", total: 25, page: "0", wantNum: 3, wantPages: 3, wantItems: 5, wantPrev: true},
		{name: "IntegralFloat", total: 25, page: "2.0", wantNum: 2, wantPages: 3, wantItems: 10, wantNext: true, wantPrev: true},
		{name: "Empty", total: 0, page: "1", wantNum: 1, wantPages: 1, wantItems: 0},
		{name: "ExactlyFull", total: 10, page: "2", wantNum: 1, wantPages: 1, wantItems: 10},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := New[domain.Genre, domain.GenreParams](newFakeGenres(tc.total), 10)

			got, err := s.Page(context.Background(), tc.page)
			require.NoError(t, err)

			require.Equal(t, tc.wantNum, got.Number)
			require.Equal(t, tc.wantPages, got.NumPages)
			require.Equal(t, int64(tc.total), got.Total)
			require.Len(t, got.Items, tc.wantItems)
			require.NotNil(t, got.Items)
			require.Equal(t, tc.wantNext, got.HasNext)
			require.Equal(t, tc.wantPrev, got.HasPrevious)
		})
	}
}

func TestPageRepoError(t *testing.T) {
	repo := newFakeGenres(3)
	repo.err = errorspkg.ErrInternal

	_, err := New[domain.Genre, domain.GenreParams](repo, 10).Page(context.Background(), "1")
	require.ErrorIs(t, err, errorspkg.ErrInternal)
}

func TestList(t *testing.T) {
	s := New[domain.Genre, domain.GenreParams](newFakeGenres(7), 10)

	got, err := s.List(context.Background(), 5, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int32(6), got[0].ID)
}

func TestCRUD(t *testing.T) {
	s := New[domain.Genre, domain.GenreParams](newFakeGenres(0), 10)
	ctx := context.Background()

	created, err := s.Create(ctx, domain.GenreParams{Name: "Poetry"})
	require.NoError(t, err)

	_, err = s.Create(ctx, domain.GenreParams{Name: "Poetry"})
	require.ErrorIs(t, err, domain.ErrGenreAlreadyExists)

	updated, err := s.Update(ctx, created.ID, domain.GenreParams{Name: "Drama"})
	require.NoError(t, err)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)

	if diff := cmp.Diff(updated, got); diff != "" {
		t.Errorf("Get() returned unexpected diff: %s", diff)
	}

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.Get(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrGenreNotFound)
	require.ErrorIs(t, s.Delete(ctx, created.ID), domain.ErrGenreNotFound)
}

func TestCounts(t *testing.T) {
	books := New[domain.Genre, domain.GenreParams](newFakeGenres(4), 10)
	authors := New[domain.Genre, domain.GenreParams](newFakeGenres(2), 10)
	genres := New[domain.Genre, domain.GenreParams](newFakeGenres(1), 10)

	got, err := Counts(context.Background(), books, authors, genres)
	require.NoError(t, err)
	require.Equal(t, domain.CatalogCounts{Books: 4, Authors: 2, Genres: 1}, got)

	broken := newFakeGenres(0)
	broken.err = errorspkg.ErrInternal

	_, err = Counts(context.Background(), books, New[domain.Genre, domain.GenreParams](broken, 10), genres)
	require.ErrorIs(t, err, errorspkg.ErrInternal)
}

func TestPageNumber(t *testing.T) {
	require.Equal(t, int32(1), PageNumber("1.5", 4))
	require.Equal(t, int32(4), PageNumber("-2", 4))
	require.Equal(t, int32(1), PageNumber("1e400", 4))
	require.Equal(t, int32(2), NumPages(11, 10))
	require.Equal(t, int32(1), NumPages(0, 10))
}
