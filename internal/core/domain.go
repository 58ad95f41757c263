package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

type (
	// Kind classifies a transaction as money coming in or going out.
	Kind string

	// Transaction is the sole persisted entity. Amount is always
	// non-negative; the sign of its contribution to the balance is
	// derived from Kind. ID is zero until the store assigns one.
	Transaction struct {
		ID       int64
		Title    string
		Amount   decimal.Decimal
		Date     time.Time
		Category string
		Kind     Kind
	}

	// CategoryStat is one row of a category breakdown. Derived per
	// reporting call, never stored.
	CategoryStat struct {
		Category string
		Amount   decimal.Decimal
		Percent  decimal.Decimal
	}
)

var (
	ErrInvalidKind    = errors.New("invalid transaction kind")
	ErrNegativeAmount = errors.New("amount cannot be negative")
	ErrEmptyTitle     = errors.New("empty title")
	ErrZeroDate       = errors.New("date cannot be zero")
)

// ParseKind matches the kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch {
	case strings.EqualFold(s, string(KindIncome)):
		return KindIncome, nil
	case strings.EqualFold(s, string(KindExpense)):
		return KindExpense, nil
	}
	return "", ErrInvalidKind
}

func (k Kind) Validate() error {
	if k != KindIncome && k != KindExpense {
		return ErrInvalidKind
	}
	return nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	return t.Kind.Validate()
}

// ParseAmount converts user input into a non-negative decimal amount.
// Malformed or negative input is sanitized to zero rather than rejected,
// so bad numeric input never surfaces as an engine error.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// SameCalendarDay reports whether both instants fall on the same calendar
// day of the same year.
func SameCalendarDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
