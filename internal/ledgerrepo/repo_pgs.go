// Package ledgerrepo manages the transactional wallet writes: top-ups and purchases.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-petr/bookstore/internal/catalogrepo"
	"github.com/go-petr/bookstore/internal/clientrepo"
	"github.com/go-petr/bookstore/internal/domain"
	"github.com/go-petr/bookstore/internal/entryrepo"
	"github.com/go-petr/bookstore/pkg/dbpkg"
	"github.com/go-petr/bookstore/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS runs the multi-table wallet writes.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns a RepoPGS opening its transactions on db.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{conn: db}
}

// knownErrs are returned to the caller as is, anything else becomes ErrInternal.
var knownErrs = []error{
	domain.ErrClientNotFound,
	domain.ErrBookNotFound,
	domain.ErrInsufficientFunds,
}

// TopUp credits the client's money by amount and records a top-up entry in
// one transaction. amount is validated as positive by the caller.
func (r *RepoPGS) TopUp(ctx context.Context, username, amount string) (domain.TopUpTxResult, error) {
	var res domain.TopUpTxResult

	err := dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) (err error) {
		if res.Client, err = clientrepo.NewRepoPGS(tx).AddMoney(ctx, username, amount); err != nil {
			return err
		}

		res.Entry, err = entryrepo.NewRepoPGS(tx).Create(ctx, domain.CreateEntryParams{
			Username: username,
			Amount:   amount,
			Kind:     domain.EntryTopUp,
		})

		return err
	})
	if err != nil {
		return domain.TopUpTxResult{}, r.fail(ctx, err)
	}

	return res, nil
}

// Purchase debits the book price and records the ownership and a purchase
// entry, all or nothing.
//
// The client row stays locked until commit, so concurrent purchases of one
// client are serialized and never spend past the balance.
func (r *RepoPGS) Purchase(ctx context.Context, username string, bookID int32) (domain.PurchaseTxResult, error) {
	var res domain.PurchaseTxResult

	err := dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) error {
		clients := clientrepo.NewRepoPGS(tx)

		client, err := clients.GetForUpdate(ctx, username)
		if err != nil {
			return err
		}

		book, err := catalogrepo.NewBookRepo(tx).Get(ctx, bookID)
		if err != nil {
			return err
		}

		money, err := decimal.NewFromString(client.Money)
		if err != nil {
			return fmt.Errorf("client %s money %q: %w", username, client.Money, err)
		}

		price, err := decimal.NewFromString(book.Price)
		if err != nil {
			return fmt.Errorf("book %d price %q: %w", bookID, book.Price, err)
		}

		if money.LessThan(price) {
			zerolog.Ctx(ctx).Info().
				Str("username", username).
				Int32("book_id", bookID).
				Str("money", client.Money).
				Str("price", book.Price).
				Msg("insufficient funds")

			return domain.ErrInsufficientFunds
		}

		debit := price.Neg().String()

		if res.Client, err = clients.AddMoney(ctx, username, debit); err != nil {
			return err
		}

		if err := clients.AddBook(ctx, username, bookID); err != nil {
			return err
		}

		res.Entry, err = entryrepo.NewRepoPGS(tx).Create(ctx, domain.CreateEntryParams{
			Username: username,
			Amount:   debit,
			Kind:     domain.EntryPurchase,
			BookID:   bookID,
		})
		res.Book = book

		return err
	})
	if err != nil {
		return domain.PurchaseTxResult{}, r.fail(ctx, err)
	}

	return res, nil
}

// fail passes known domain errors through and logs the rest behind ErrInternal.
func (r *RepoPGS) fail(ctx context.Context, err error) error {
	for _, known := range knownErrs {
		if errors.Is(err, known) {
			return known
		}
	}

	if !errors.Is(err, errorspkg.ErrInternal) {
		zerolog.Ctx(ctx).Error().Err(err).Msg("ledger transaction")
	}

	return errorspkg.ErrInternal
}
