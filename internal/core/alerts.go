package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Alert slots. A newer alert of the same slot replaces any pending one
// at the notifier, so each slot is a stable notification identity.
const (
	SlotLowBalance     = 1
	SlotSpendingTier   = 2
	SlotBigTransaction = 5
)

// Alert is one notification decision. The evaluator never delivers
// anything itself; an external notifier dispatches these.
type Alert struct {
	Slot  int    `json:"slot"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

var (
	lowBalanceLimit = decimal.NewFromInt(100)
	bigTransaction  = decimal.NewFromInt(1000)

	// Spending brackets (lower, upper]: the containing bracket fires
	// a "crossed lower" alert. Exactly one bracket can match.
	spendingTiers = []struct {
		lower decimal.Decimal
		upper decimal.Decimal
	}{
		{decimal.NewFromInt(2000), decimal.NewFromInt(5000)},
		{decimal.NewFromInt(5000), decimal.NewFromInt(10000)},
		{decimal.NewFromInt(10000), decimal.NewFromInt(50000)},
		{decimal.NewFromInt(50000), decimal.NewFromInt(100000)},
		{decimal.NewFromInt(100000), decimal.NewFromInt(500000)},
	}
)

// EvaluateAlerts recomputes totals over the full history (which already
// includes the just-inserted transaction) and decides which alerts to
// raise. It tolerates empty and single-element histories.
func EvaluateAlerts(history []Transaction, inserted Transaction) []Alert {
	totals := Summarize(history)

	var alerts []Alert

	if totals.Balance.LessThan(lowBalanceLimit) {
		alerts = append(alerts, Alert{
			Slot:  SlotLowBalance,
			Title: "⚠️ Low Balance Alert",
			Body: fmt.Sprintf("Your balance is dangerously low — ₹%s left.",
				totals.Balance.StringFixed(2)),
		})
	}

	for _, tier := range spendingTiers {
		if totals.Expense.GreaterThan(tier.lower) && totals.Expense.LessThanOrEqual(tier.upper) {
			alerts = append(alerts, Alert{
				Slot:  SlotSpendingTier,
				Title: "💸 Spending Alert",
				Body: fmt.Sprintf("You've crossed ₹%s in expenses this month!",
					tier.lower.String()),
			})
			break
		}
	}

	if inserted.Kind == KindExpense && inserted.Amount.GreaterThan(bigTransaction) {
		alerts = append(alerts, Alert{
			Slot:  SlotBigTransaction,
			Title: "💳 Big Transaction",
			Body: fmt.Sprintf("You spent ₹%s on %s.",
				inserted.Amount.StringFixed(2), inserted.Category),
		})
	}

	return alerts
}
