// Package randompkg generates random fixtures for tests and seeds.
package randompkg

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// Intn returns a uniform integer in [0, n). It panics when n <= 0.
func Intn(n int) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return v.Int64()
}

// IntBetween returns an integer in [min, max].
func IntBetween(min, max int) int32 {
	return int32(int64(min) + Intn(max-min+1))
}

// String returns n random lowercase letters.
func String(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[Intn(len(letters))]
	}

	return string(b)
}

// Owner returns a random username.
func Owner() string {
	return String(6)
}

// MoneyAmountBetween returns a two decimal amount in [min, max].
func MoneyAmountBetween(min, max float64) string {
	cents := IntBetween(int(min*100), int(max*100))
	return decimal.New(int64(cents), -2).StringFixed(2)
}

// Title returns a capitalised two word title.
func Title() string {
	first := String(8)
	return strings.ToUpper(first[:1]) + first[1:] + " " + String(5)
}

// Email returns a random address on email.com.
func Email() string {
	return String(10) + "@email.com"
}
