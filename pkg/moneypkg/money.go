// Package moneypkg provides common money related functionality for apps.
package moneypkg

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Zero is the balance every new client starts with.
const Zero = "0"

// IsDecimal returns true if s is a well-formed decimal amount.
func IsDecimal(s string) bool {
	_, err := decimal.NewFromString(s)
	return err == nil
}

// ValidMoney validates whether the field holds a decimal amount.
var ValidMoney validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return IsDecimal(s)
	}
	return false
}

// ValidPrice validates whether the field holds a non-negative decimal amount.
var ValidPrice validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}

	return !d.IsNegative()
}
