package domain

import (
	"errors"
	"time"
)

// ErrEntryNotFound indicates that the entry is not found.
var ErrEntryNotFound = errors.New("entry not found")

// Entry kinds.
const (
	EntryTopUp    = "top_up"
	EntryPurchase = "purchase"
)

// Entry holds a single change of a client's money.
type Entry struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Amount    string    `json:"amount"` // positive for top-ups, negative for purchases
	Kind      string    `json:"kind"`
	BookID    int32     `json:"book_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEntryParams is the input data to record an entry.
type CreateEntryParams struct {
	Username string
	Amount   string
	Kind     string
	BookID   int32 // zero when the entry is not tied to a book
}
