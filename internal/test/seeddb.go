// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/go-petr/bookstore/internal/catalogrepo"
	"github.com/go-petr/bookstore/internal/clientrepo"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/internal/entryrepo"
	"github.com/go-petr/bookstore/internal/sessionrepo"
	"github.com/go-petr/bookstore/internal/userrepo"
	"github.com/go-petr/bookstore/pkg/dbpkg"
	"github.com/go-petr/bookstore/pkg/passpkg"
	"github.com/go-petr/bookstore/pkg/randompkg"
)

// SeedUser creates random User inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(32))
	if err != nil {
		t.Fatalf("passpkg.Hash(randompkg.String(32)) returned error: %v", err)
	}

	arg := domain.CreateUserParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FullName:       randompkg.String(10),
		Email:          randompkg.Email(),
	}

	userRepo := userrepo.NewTxRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedClient creates Client with the given money for the user inside a test transaction.
func SeedClient(t *testing.T, tx dbpkg.SQLInterface, username, money string) domain.Client {
	t.Helper()

	clientRepo := clientrepo.NewRepoPGS(tx)

	client, err := clientRepo.Create(context.Background(), username, money)
	if err != nil {
		t.Fatalf("clientRepo.Create(context.Background(), %v, %v) returned error: %v", username, money, err)
	}

	return client
}

// SeedUserWithClient creates random User together with its Client holding the given money.
func SeedUserWithClient(t *testing.T, tx dbpkg.SQLInterface, money string) (domain.User, domain.Client) {
	t.Helper()

	user := SeedUser(t, tx)

	return user, SeedClient(t, tx, user.Username, money)
}

// SeedAuthor creates random Author inside a test transaction.
func SeedAuthor(t *testing.T, tx dbpkg.SQLInterface) domain.Author {
	t.Helper()

	arg := domain.AuthorParams{
		FullName: randompkg.String(6) + " " + randompkg.String(8),
		Bio:      randompkg.String(20),
	}

	author, err := catalogrepo.NewAuthorRepo(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("authorRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return author
}

// SeedGenre creates Genre with a random unique name inside a test transaction.
func SeedGenre(t *testing.T, tx dbpkg.SQLInterface) domain.Genre {
	t.Helper()

	arg := domain.GenreParams{Name: randompkg.String(12)}

	genre, err := catalogrepo.NewGenreRepo(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("genreRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return genre
}

// SeedBook creates Book with the given price, a fresh author and genre inside a test transaction.
func SeedBook(t *testing.T, tx dbpkg.SQLInterface, price string) domain.Book {
	t.Helper()

	author := SeedAuthor(t, tx)
	genre := SeedGenre(t, tx)

	arg := domain.BookParams{
		Title:       randompkg.Title(),
		Description: randompkg.String(30),
		Price:       price,
		AuthorID:    author.ID,
		GenreID:     genre.ID,
	}

	book, err := catalogrepo.NewBookRepo(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("bookRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return book
}

// SeedEntry creates top-up Entry inside a test transaction.
func SeedEntry(t *testing.T, tx dbpkg.SQLInterface, username, amount string) domain.Entry {
	t.Helper()

	arg := domain.CreateEntryParams{
		Username: username,
		Amount:   amount,
		Kind:     domain.EntryTopUp,
	}

	entry, err := entryrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("entryRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return entry
}

// SeedEntries creates Entries with random positive amounts inside a test transaction.
func SeedEntries(t *testing.T, tx dbpkg.SQLInterface, username string, count int) []domain.Entry {
	t.Helper()

	entries := make([]domain.Entry, count)

	for i := range entries {
		entries[i] = SeedEntry(t, tx, username, randompkg.MoneyAmountBetween(1, 1000))
	}

	return entries
}

// SeedSession creates Session inside a test transaction.
func SeedSession(t *testing.T, tx dbpkg.SQLInterface, arg domain.CreateSessionParams) domain.Session {
	t.Helper()

	session, err := sessionrepo.NewRepoPGS(tx).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("sessionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return session
}
