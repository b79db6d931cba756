// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Quantity is a stock quantity with full decimal precision.
// Movement quantities are stored as NUMERIC and may be fractional (kg, l).
type Quantity = decimal.Decimal

// Zero returns zero Quantity value.
func Zero() Quantity {
	return decimal.Zero
}

// NewQuantity creates a Quantity from an integer amount.
func NewQuantity(v int64) Quantity {
	return decimal.NewFromInt(v)
}

// NewQuantityFromString creates a Quantity from a string.
func NewQuantityFromString(s string) (Quantity, error) {
	return decimal.NewFromString(s)
}

// MustQuantity creates a Quantity from a string, panics on error.
// Use only for constants and tests.
func MustQuantity(s string) Quantity {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Float64 converts q for JSON responses. Precision loss beyond ~15 digits is acceptable there.
func Float64(q Quantity) float64 {
	return q.InexactFloat64()
}

// Format renders q without trailing zeros ("13", "2.5", "-0.125").
func Format(q Quantity) string {
	return q.String()
}

// Sum adds all quantities.
func Sum(qs ...Quantity) Quantity {
	total := decimal.Zero
	for _, q := range qs {
		total = total.Add(q)
	}
	return total
}
