// Package catalogservice manages business logic layer of the book catalog.
//
// Books, authors and genres share one generic Service parameterized by the
// entity type and its create/update params.
package catalogservice

import (
	"context"
	"math"
	"strconv"

	"github.com/go-petr/bookstore/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Repo provides data access layer interface of one catalog entity.
type Repo[T, P any] interface {
	Get(ctx context.Context, id int32) (T, error)
	List(ctx context.Context, limit, offset int32) ([]T, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, arg P) (T, error)
	Update(ctx context.Context, id int32, arg P) (T, error)
	Delete(ctx context.Context, id int32) error
}

// Service facilitates catalog service layer logic.
type Service[T, P any] struct {
	repo    Repo[T, P]
	perPage int32
}

// New returns a catalog service showing perPage items on every page.
func New[T, P any](repo Repo[T, P], perPage int32) *Service[T, P] {
	if perPage < 1 {
		perPage = 1
	}

	return &Service[T, P]{
		repo:    repo,
		perPage: perPage,
	}
}

// Get returns the entity with the given id.
func (s *Service[T, P]) Get(ctx context.Context, id int32) (T, error) {
	return s.repo.Get(ctx, id)
}

// List returns one page of entities for the API.
func (s *Service[T, P]) List(ctx context.Context, pageSize, pageID int32) ([]T, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Count returns the number of stored entities.
func (s *Service[T, P]) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Create stores a new entity.
func (s *Service[T, P]) Create(ctx context.Context, arg P) (T, error) {
	return s.repo.Create(ctx, arg)
}

// Update replaces the entity with the given id.
func (s *Service[T, P]) Update(ctx context.Context, id int32, arg P) (T, error) {
	return s.repo.Update(ctx, id, arg)
}

// Delete removes the entity with the given id.
func (s *Service[T, P]) Delete(ctx context.Context, id int32) error {
	return s.repo.Delete(ctx, id)
}

// Page returns the requested page of the public listing.
//
// A page that is not a number falls back to the first page. A number out of
// range, below one included, falls back to the last page. An empty catalog
// still has one empty page.
func (s *Service[T, P]) Page(ctx context.Context, page string) (domain.Page[T], error) {
	var result domain.Page[T]

	total, err := s.repo.Count(ctx)
	if err != nil {
		return result, err
	}

	numPages := NumPages(total, s.perPage)
	number := PageNumber(page, numPages)

	items, err := s.repo.List(ctx, s.perPage, (number-1)*s.perPage)
	if err != nil {
		return result, err
	}

	if items == nil {
		items = []T{}
	}

	result = domain.Page[T]{
		Items:       items,
		Number:      number,
		NumPages:    numPages,
		Total:       total,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
	}

	return result, nil
}

// NumPages returns how many pages of perPage items total takes, at least one.
func NumPages(total int64, perPage int32) int32 {
	if total <= 0 || perPage <= 0 {
		return 1
	}

	return int32((total + int64(perPage) - 1) / int64(perPage))
}

// PageNumber resolves the requested page against numPages.
func PageNumber(page string, numPages int32) int32 {
	n, err := strconv.ParseInt(page, 10, 32)
	if err != nil {
		// "2.0" is still page 2.
		f, ferr := strconv.ParseFloat(page, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
			return 1
		}

		n = int64(f)
	}

	if n < 1 || n > int64(numPages) {
		return numPages
	}

	return int32(n)
}

// Counter is implemented by every catalog Service.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// Counts returns the numbers of books, authors and genres.
func Counts(ctx context.Context, books, authors, genres Counter) (domain.CatalogCounts, error) {
	var result domain.CatalogCounts

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		result.Books, err = books.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		result.Authors, err = authors.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		result.Genres, err = genres.Count(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.CatalogCounts{}, err
	}

	return result, nil
}
