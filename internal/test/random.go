package test

import (
	"time"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/randompkg"
)

// RandomBook returns random book with the given price.
func RandomBook(price string) domain.Book {
	return domain.Book{
		ID:          randompkg.IntBetween(1, 100),
		Title:       randompkg.Title(),
		Description: randompkg.String(30),
		Price:       price,
		AuthorID:    randompkg.IntBetween(1, 100),
		GenreID:     randompkg.IntBetween(1, 100),
		CreatedAt:   time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomClient returns random client of the given user with the given money.
func RandomClient(username, money string) domain.Client {
	return domain.Client{
		Username:  username,
		Money:     money,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}
