package domain

import (
	"errors"
	"time"
)

var (
	// ErrClientNotFound indicates that the identity has no client account bound to it.
	ErrClientNotFound = errors.New("client not found")
	// ErrInvalidAmount indicates an amount that is not a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates a top-up amount that is zero or negative.
	ErrNonPositiveAmount = errors.New("only positive amounts allowed")
	// ErrInsufficientFunds indicates that the client cannot afford the book.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Client holds the wallet of a user: spendable money and owned books.
type Client struct {
	Username  string    `json:"username"`
	Money     string    `json:"money"` // never negative
	CreatedAt time.Time `json:"created_at"`
}

// Profile is everything rendered on the client profile page.
type Profile struct {
	Client  Client  `json:"client"`
	Books   []Book  `json:"books"`
	Entries []Entry `json:"entries"`
}

// TopUpTxResult is the result of the top-up transaction.
type TopUpTxResult struct {
	Client Client `json:"client"`
	Entry  Entry  `json:"entry"`
}

// PurchaseTxResult is the result of the purchase transaction.
type PurchaseTxResult struct {
	Client Client `json:"client"`
	Book   Book   `json:"book"`
	Entry  Entry  `json:"entry"`
}

// PurchaseView is the state rendered on the buy page.
type PurchaseView struct {
	Book  Book   `json:"book"`
	Owned bool   `json:"owned"`
	Money string `json:"money"`
}
