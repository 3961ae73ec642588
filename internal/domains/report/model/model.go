package model

import (
	"time"

	processModel "solireserve/internal/domains/process/model"

	"github.com/shopspring/decimal"
)

const EntityName = "report"

const (
	FieldFrom = "from"
	FieldTo   = "to"
)

var hundred = decimal.NewFromInt(100)

// SavingsFilter narrows the savings report. From and To bound the arrival date, both inclusive.
type SavingsFilter struct {
	OperatorID string
	HotelID    string
	From       *time.Time
	To         *time.Time
}

// Savings compares what was billed against what the stays would have cost at the standard rate.
type Savings struct {
	Reservations  int             `db:"reservations"`
	TotalBilled   decimal.Decimal `db:"total_billed"`
	TotalStandard decimal.Decimal `db:"total_standard"`
	TotalSavings  decimal.Decimal `db:"total_savings"`
}

// AverageReduction is the share of the standard amount that was saved, in percent.
func (s Savings) AverageReduction() decimal.Decimal {
	if !s.TotalStandard.IsPositive() {
		return decimal.Zero
	}

	return s.TotalSavings.Div(s.TotalStandard).Mul(hundred).Round(2)
}

type OperatorSavings struct {
	OperatorID   string `db:"operator_id"`
	OperatorName string `db:"operator_name"`
	Savings
}

// StatusTotals aggregates the processes sharing one aggregate status.
type StatusTotals struct {
	Status   processModel.Status `db:"statut"`
	Count    int                 `db:"total"`
	Invoiced decimal.Decimal     `db:"invoiced"`
	Paid     decimal.Decimal     `db:"paid"`
}

type ProcessSummary struct {
	ByStatus       map[processModel.Status]int
	Total          int
	CompletionRate decimal.Decimal
	Settled        decimal.Decimal
	Outstanding    decimal.Decimal
}

// Summarize folds per status totals. Cancelled processes never count as outstanding.
func Summarize(rows []StatusTotals) ProcessSummary {
	summary := ProcessSummary{
		ByStatus:       map[processModel.Status]int{},
		CompletionRate: decimal.Zero,
		Settled:        decimal.Zero,
		Outstanding:    decimal.Zero,
	}

	for _, row := range rows {
		summary.ByStatus[row.Status] += row.Count
		summary.Total += row.Count
		summary.Settled = summary.Settled.Add(row.Paid)

		if row.Status != processModel.StatusCancelled {
			summary.Outstanding = summary.Outstanding.Add(row.Invoiced.Sub(row.Paid))
		}
	}

	if summary.Total > 0 {
		completed := decimal.NewFromInt(int64(summary.ByStatus[processModel.StatusCompleted]))
		summary.CompletionRate = completed.Div(decimal.NewFromInt(int64(summary.Total))).Round(4)
	}

	return summary
}
