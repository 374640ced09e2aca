package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money parses a decimal amount from its string form. Balances and amounts
// are decimal throughout so that cent-level arithmetic stays exact; binary
// floating point is never used for money.
func Money(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

// MustMoney is Money for literals in tests and seed data; it panics on a
// malformed value.
func MustMoney(s string) decimal.Decimal {
	d, err := Money(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FormatAmount renders an amount as currency, e.g. $2,300.00 or -$15.50.
func FormatAmount(d decimal.Decimal) string {
	sign := ""
	if d.Sign() < 0 {
		sign = "-"
	}
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
