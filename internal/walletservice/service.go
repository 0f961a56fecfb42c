// Package walletservice manages business logic layer of client wallets.
package walletservice

import (
	"context"

	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/pkg/metricspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProfileEntriesLimit is the number of latest entries shown on the profile.
const ProfileEntriesLimit = 10

// ClientRepo provides client data access needed by wallet service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package walletservice
type ClientRepo interface {
	Get(ctx context.Context, username string) (domain.Client, error)
	ListBooks(ctx context.Context, username string) ([]domain.Book, error)
}

// EntryRepo provides ledger entries read access.
type EntryRepo interface {
	List(ctx context.Context, username string, limit, offset int32) ([]domain.Entry, error)
}

// LedgerRepo executes wallet transactions.
type LedgerRepo interface {
	TopUp(ctx context.Context, username, amount string) (domain.TopUpTxResult, error)
}

// Service facilitates wallet service layer logic.
type Service struct {
	clients ClientRepo
	entries EntryRepo
	ledger  LedgerRepo
	metrics *metricspkg.Collector
}

// New returns wallet service. m may be nil.
func New(cr ClientRepo, er EntryRepo, lr LedgerRepo, m *metricspkg.Collector) *Service {
	return &Service{
		clients: cr,
		entries: er,
		ledger:  lr,
		metrics: m,
	}
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.IncTopUp(outcome)
	}
}

// TopUp adds a positive amount to the client's money.
//
// Zero and negative amounts leave the wallet untouched and return ErrNonPositiveAmount.
func (s *Service) TopUp(ctx context.Context, username, amount string) (domain.TopUpTxResult, error) {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Str("amount", amount).Send()
		s.observe(metricspkg.OutcomeRejected)

		return domain.TopUpTxResult{}, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		l.Info().Str("username", username).Str("amount", amount).Msg("non positive top-up rejected")
		s.observe(metricspkg.OutcomeRejected)

		return domain.TopUpTxResult{}, domain.ErrNonPositiveAmount
	}

	result, err := s.ledger.TopUp(ctx, username, amountDecimal.String())
	if err != nil {
		s.observe(metricspkg.OutcomeError)
		return result, err
	}

	s.observe(metricspkg.OutcomeOK)

	return result, nil
}

// Profile returns the client wallet with owned books and latest entries.
func (s *Service) Profile(ctx context.Context, username string) (domain.Profile, error) {
	var p domain.Profile

	client, err := s.clients.Get(ctx, username)
	if err != nil {
		return p, err
	}

	books, err := s.clients.ListBooks(ctx, username)
	if err != nil {
		return p, err
	}

	entries, err := s.entries.List(ctx, username, ProfileEntriesLimit, 0)
	if err != nil {
		return p, err
	}

	p.Client = client
	p.Books = books
	p.Entries = entries

	return p, nil
}
