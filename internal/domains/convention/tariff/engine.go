// Package tariff turns a convention into the price a reservation is billed at
// and keeps the negotiated price and the reduction percentage consistent.
package tariff

import (
	"fmt"
	"time"

	"solireserve/internal/domains/convention/model"

	"github.com/shopspring/decimal"
)

type Axis string

const (
	AxisPerPerson Axis = "per_person"
	AxisPerRoom   Axis = "per_room"
)

func (a Axis) IsValid() bool {
	return a == AxisPerPerson || a == AxisPerRoom
}

// Source names the convention field a quote was priced from.
type Source string

const (
	SourceMonthly Source = "monthly"
	SourceFlat    Source = "flat"
)

// Field is a convention field that SyncPriceAndReduction can reconcile.
type Field string

const (
	FieldStandardPrice   Field = model.FieldStandardPrice
	FieldNegotiatedPrice Field = model.FieldNegotiatedPrice
	FieldReduction       Field = model.FieldReduction
)

func (f Field) IsValid() bool {
	return f == FieldStandardPrice || f == FieldNegotiatedPrice || f == FieldReduction
}

// StayContext describes what is being priced. Headcount is ignored for per-room pricing.
type StayContext struct {
	Month     model.Month
	Axis      Axis
	Headcount int
	// At is the reference date checked against the validity window.
	At time.Time
}

type Quote struct {
	UnitPrice    decimal.Decimal
	TotalForStay decimal.Decimal
	Savings      decimal.Decimal
	Source       Source
	Month        model.Month
	Axis         Axis
}

var hundred = decimal.NewFromInt(100)

// ComputeEffectivePrice resolves the unit price for the stay: a monthly override for the
// requested axis wins, otherwise the flat negotiated price applies to either axis.
func ComputeEffectivePrice(conv model.Convention, stay StayContext) (Quote, error) {
	if !stay.Axis.IsValid() {
		return Quote{}, fmt.Errorf("%w: %q", ErrInvalidPricingAxis, stay.Axis)
	}

	if !stay.Month.IsValid() {
		return Quote{}, fmt.Errorf("%w: %d", ErrInvalidMonth, stay.Month)
	}

	if stay.Axis == AxisPerPerson && stay.Headcount < 1 {
		return Quote{}, fmt.Errorf("%w: got %d", ErrInvalidHeadcount, stay.Headcount)
	}

	if err := CheckApplicable(conv, stay.At); err != nil {
		return Quote{}, err
	}

	unit, source := resolveUnitPrice(conv, stay)

	total := unit
	if stay.Axis == AxisPerPerson {
		total = unit.Mul(decimal.NewFromInt(int64(stay.Headcount)))
	}

	savings := conv.StandardPrice.Sub(unit)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	return Quote{
		UnitPrice:    unit,
		TotalForStay: total,
		Savings:      savings,
		Source:       source,
		Month:        stay.Month,
		Axis:         stay.Axis,
	}, nil
}

func resolveUnitPrice(conv model.Convention, stay StayContext) (decimal.Decimal, Source) {
	rate, ok := conv.MonthlyTariffs.Rate(stay.Month)
	if ok {
		switch {
		case stay.Axis == AxisPerPerson && rate.PerPerson != nil:
			return *rate.PerPerson, SourceMonthly
		case stay.Axis == AxisPerRoom && rate.PerRoom != nil:
			return *rate.PerRoom, SourceMonthly
		}
	}

	return conv.NegotiatedPrice, SourceFlat
}

// CheckApplicable reports ErrConventionNotApplicable unless the convention is active
// and at falls within [StartDate, EndDate] by calendar day. A missing EndDate is open ended.
func CheckApplicable(conv model.Convention, at time.Time) error {
	if !conv.Status.IsActive() {
		return fmt.Errorf("%w: status is %s", ErrConventionNotApplicable, conv.Status)
	}

	day := truncateDay(at)

	if day.Before(truncateDay(conv.StartDate)) {
		return fmt.Errorf("%w: starts on %s", ErrConventionNotApplicable, conv.StartDate.Format(time.DateOnly))
	}

	if conv.EndDate != nil && day.After(truncateDay(*conv.EndDate)) {
		return fmt.Errorf("%w: ended on %s", ErrConventionNotApplicable, conv.EndDate.Format(time.DateOnly))
	}

	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DeriveReduction returns round((standard - negotiated) / standard * 100), halves away from zero.
func DeriveReduction(standard, negotiated decimal.Decimal) (int, error) {
	if !standard.IsPositive() {
		return 0, ErrInvalidTariffBase
	}

	if negotiated.IsNegative() {
		return 0, ErrNegativeAmount
	}

	if negotiated.GreaterThan(standard) {
		return 0, fmt.Errorf("%w: %s > %s", ErrNegotiatedAboveStandard, negotiated, standard)
	}

	return int(standard.Sub(negotiated).Mul(hundred).Div(standard).Round(0).IntPart()), nil
}

// NegotiatedFromReduction returns standard * (100 - reduction) / 100 at full precision.
func NegotiatedFromReduction(standard, reduction decimal.Decimal) (decimal.Decimal, error) {
	if !standard.IsPositive() {
		return decimal.Zero, ErrInvalidTariffBase
	}

	if reduction.IsNegative() || reduction.GreaterThan(hundred) {
		return decimal.Zero, fmt.Errorf("%w: got %s", ErrInvalidReduction, reduction)
	}

	return standard.Mul(hundred.Sub(reduction)).Div(hundred), nil
}

// SyncPriceAndReduction applies an edit to one of the price fields and recomputes the other so that
// reduction always equals the rounded percentage between the standard and negotiated prices.
// Editing the standard price holds the reduction fixed.
func SyncPriceAndReduction(conv model.Convention, field Field, value decimal.Decimal) (model.Convention, error) {
	if value.IsNegative() {
		if field == FieldReduction {
			return conv, fmt.Errorf("%w: got %s", ErrInvalidReduction, value)
		}

		return conv, fmt.Errorf("%w: %s is %s", ErrNegativeAmount, field, value)
	}

	switch field {
	case FieldStandardPrice:
		negotiated, err := NegotiatedFromReduction(value, decimal.NewFromInt(int64(conv.Reduction)))
		if err != nil {
			return conv, err
		}

		conv.StandardPrice = value
		conv.NegotiatedPrice = negotiated
	case FieldNegotiatedPrice:
		reduction, err := DeriveReduction(conv.StandardPrice, value)
		if err != nil {
			return conv, err
		}

		conv.NegotiatedPrice = value
		conv.Reduction = reduction

		return conv, nil
	case FieldReduction:
		negotiated, err := NegotiatedFromReduction(conv.StandardPrice, value)
		if err != nil {
			return conv, err
		}

		conv.NegotiatedPrice = negotiated
	default:
		return conv, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	reduction, err := DeriveReduction(conv.StandardPrice, conv.NegotiatedPrice)
	if err != nil {
		return conv, err
	}

	conv.Reduction = reduction

	return conv, nil
}

// Validate checks a convention as a whole before it is stored.
func Validate(conv model.Convention) error {
	if conv.NegotiatedPrice.IsNegative() || conv.StandardPrice.IsNegative() {
		return ErrNegativeAmount
	}

	reduction, err := DeriveReduction(conv.StandardPrice, conv.NegotiatedPrice)
	if err != nil {
		return err
	}

	if reduction != conv.Reduction {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidReduction, reduction, conv.Reduction)
	}

	for _, rate := range conv.MonthlyTariffs {
		if rate.PerPerson != nil && rate.PerPerson.IsNegative() {
			return fmt.Errorf("%w: monthly per-person override", ErrNegativeAmount)
		}

		if rate.PerRoom != nil && rate.PerRoom.IsNegative() {
			return fmt.Errorf("%w: monthly per-room override", ErrNegativeAmount)
		}
	}

	if conv.EndDate != nil && truncateDay(*conv.EndDate).Before(truncateDay(conv.StartDate)) {
		return ErrInvalidValidityWindow
	}

	return nil
}
