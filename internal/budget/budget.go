// Package budget evaluates a month's spending against a user's limit.
package budget

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WithinBudget is the message returned when no alert is raised.
const WithinBudget = "Within budget"

// Alert is the result of one evaluation.
type Alert struct {
	Configured bool                `json:"configured"`
	Triggered  bool                `json:"triggered"`
	Message    string              `json:"message"`
	Limit      decimal.NullDecimal `json:"limit"`
	Spent      decimal.Decimal     `json:"spent"`
}

// Evaluate compares spent against limit. A missing limit never alerts.
// Reaching the limit exactly counts as exceeding it.
func Evaluate(limit decimal.NullDecimal, spent decimal.Decimal) Alert {
	a := Alert{Limit: limit, Spent: spent, Message: WithinBudget}
	if !limit.Valid {
		return a
	}
	a.Configured = true
	if spent.GreaterThanOrEqual(limit.Decimal) {
		a.Triggered = true
		a.Message = fmt.Sprintf("Alert: You have reached your monthly budget limit of %s!", limit.Decimal.String())
	}
	return a
}
