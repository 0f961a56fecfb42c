// Package purchaseservice manages business logic layer of book purchases.
package purchaseservice

import (
	"context"
	"errors"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/metricspkg"
	"github.com/rs/zerolog"
)

// BookRepo provides book read access.
//
//go:generate mockgen -source service.go -destination service_mock.go -package purchaseservice
type BookRepo interface {
	Get(ctx context.Context, id int32) (domain.Book, error)
}

// ClientRepo provides client read access.
type ClientRepo interface {
	Get(ctx context.Context, username string) (domain.Client, error)
	OwnsBook(ctx context.Context, username string, bookID int32) (bool, error)
}

// LedgerRepo executes the purchase transaction.
type LedgerRepo interface {
	Purchase(ctx context.Context, username string, bookID int32) (domain.PurchaseTxResult, error)
}

// Service facilitates purchase service layer logic.
type Service struct {
	books   BookRepo
	clients ClientRepo
	ledger  LedgerRepo
	metrics *metricspkg.Collector
}

// New returns purchase service. m may be nil.
func New(br BookRepo, cr ClientRepo, lr LedgerRepo, m *metricspkg.Collector) *Service {
	return &Service{
		books:   br,
		clients: cr,
		ledger:  lr,
		metrics: m,
	}
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.IncPurchase(outcome)
	}
}

// Preview returns the book with the client's money and whether the client owns it.
func (s *Service) Preview(ctx context.Context, username string, bookID int32) (domain.PurchaseView, error) {
	var view domain.PurchaseView

	book, err := s.books.Get(ctx, bookID)
	if err != nil {
		return view, err
	}

	client, err := s.clients.Get(ctx, username)
	if err != nil {
		return view, err
	}

	owned, err := s.clients.OwnsBook(ctx, username, bookID)
	if err != nil {
		return view, err
	}

	view.Book = book
	view.Owned = owned
	view.Money = client.Money

	return view, nil
}

// Buy debits the book price and grants ownership.
//
// When the money does not cover the price nothing changes and the current
// state is returned together with ErrInsufficientFunds.
func (s *Service) Buy(ctx context.Context, username string, bookID int32) (domain.PurchaseView, error) {
	l := zerolog.Ctx(ctx)

	result, err := s.ledger.Purchase(ctx, username, bookID)
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			s.observe(metricspkg.OutcomeError)
			return domain.PurchaseView{}, err
		}

		s.observe(metricspkg.OutcomeRejected)

		view, previewErr := s.Preview(ctx, username, bookID)
		if previewErr != nil {
			return domain.PurchaseView{}, previewErr
		}

		return view, domain.ErrInsufficientFunds
	}

	s.observe(metricspkg.OutcomeOK)

	l.Info().
		Str("username", username).
		Int32("book_id", bookID).
		Str("price", result.Book.Price).
		Str("money", result.Client.Money).
		Msg("book purchased")

	return domain.PurchaseView{
		Book:  result.Book,
		Owned: true,
		Money: result.Client.Money,
	}, nil
}
