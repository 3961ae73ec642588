package tariff_test

import (
	"testing"
	"time"

	"solireserve/internal/domains/convention/model"
	"solireserve/internal/domains/convention/tariff"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)

	return &d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseConvention() model.Convention {
	end := day(2026, time.December, 31)

	return model.Convention{
		ID:              "conv-1",
		StandardPrice:   dec("70"),
		NegotiatedPrice: dec("63"),
		Reduction:       10,
		StartDate:       day(2026, time.January, 1),
		EndDate:         &end,
		Status:          model.StatusActive,
	}
}

func TestComputeEffectivePrice(t *testing.T) {
	withOverrides := baseConvention()
	withOverrides.MonthlyTariffs.Set(model.July, model.MonthlyRate{PerRoom: decPtr("80")})
	withOverrides.MonthlyTariffs.Set(model.August, model.MonthlyRate{PerPerson: decPtr("30"), PerRoom: decPtr("50")})

	at := day(2026, time.March, 10)

	tests := []struct {
		name       string
		conv       model.Convention
		stay       tariff.StayContext
		wantUnit   string
		wantTotal  string
		wantSaving string
		wantSource tariff.Source
		wantErr    error
	}{
		{
			name:       "flat price per room",
			conv:       baseConvention(),
			stay:       tariff.StayContext{Month: model.March, Axis: tariff.AxisPerRoom, At: at},
			wantUnit:   "63",
			wantTotal:  "63",
			wantSaving: "7",
			wantSource: tariff.SourceFlat,
		},
		{
			name:       "flat price per person multiplies by headcount",
			conv:       baseConvention(),
			stay:       tariff.StayContext{Month: model.March, Axis: tariff.AxisPerPerson, Headcount: 3, At: at},
			wantUnit:   "63",
			wantTotal:  "189",
			wantSaving: "7",
			wantSource: tariff.SourceFlat,
		},
		{
			name:       "per room override wins for per room",
			conv:       withOverrides,
			stay:       tariff.StayContext{Month: model.July, Axis: tariff.AxisPerRoom, At: at},
			wantUnit:   "80",
			wantTotal:  "80",
			wantSaving: "0",
			wantSource: tariff.SourceMonthly,
		},
		{
			name:       "per room override does not affect per person",
			conv:       withOverrides,
			stay:       tariff.StayContext{Month: model.July, Axis: tariff.AxisPerPerson, Headcount: 2, At: at},
			wantUnit:   "63",
			wantTotal:  "126",
			wantSaving: "7",
			wantSource: tariff.SourceFlat,
		},
		{
			name:       "per person override",
			conv:       withOverrides,
			stay:       tariff.StayContext{Month: model.August, Axis: tariff.AxisPerPerson, Headcount: 2, At: at},
			wantUnit:   "30",
			wantTotal:  "60",
			wantSaving: "40",
			wantSource: tariff.SourceMonthly,
		},
		{
			name:       "headcount ignored per room",
			conv:       baseConvention(),
			stay:       tariff.StayContext{Month: model.March, Axis: tariff.AxisPerRoom, Headcount: 0, At: at},
			wantUnit:   "63",
			wantTotal:  "63",
			wantSaving: "7",
			wantSource: tariff.SourceFlat,
		},
		{
			name:    "per person without headcount",
			conv:    baseConvention(),
			stay:    tariff.StayContext{Month: model.March, Axis: tariff.AxisPerPerson, At: at},
			wantErr: tariff.ErrInvalidHeadcount,
		},
		{
			name:    "unknown axis",
			conv:    baseConvention(),
			stay:    tariff.StayContext{Month: model.March, Axis: "per_bed", At: at},
			wantErr: tariff.ErrInvalidPricingAxis,
		},
		{
			name:    "unknown month",
			conv:    baseConvention(),
			stay:    tariff.StayContext{Month: 13, Axis: tariff.AxisPerRoom, At: at},
			wantErr: tariff.ErrInvalidMonth,
		},
		{
			name: "suspended convention",
			conv: func() model.Convention {
				c := baseConvention()
				c.Status = model.StatusSuspended

				return c
			}(),
			stay:    tariff.StayContext{Month: model.March, Axis: tariff.AxisPerRoom, At: at},
			wantErr: tariff.ErrConventionNotApplicable,
		},
		{
			name:    "reference date after end date",
			conv:    baseConvention(),
			stay:    tariff.StayContext{Month: model.March, Axis: tariff.AxisPerRoom, At: day(2027, time.January, 1)},
			wantErr: tariff.ErrConventionNotApplicable,
		},
		{
			name:    "reference date before start date",
			conv:    baseConvention(),
			stay:    tariff.StayContext{Month: model.March, Axis: tariff.AxisPerRoom, At: day(2025, time.December, 31)},
			wantErr: tariff.ErrConventionNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := tariff.ComputeEffectivePrice(tt.conv, tt.stay)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, dec(tt.wantUnit).Equal(quote.UnitPrice), "unit price %s", quote.UnitPrice)
			assert.True(t, dec(tt.wantTotal).Equal(quote.TotalForStay), "total %s", quote.TotalForStay)
			assert.True(t, dec(tt.wantSaving).Equal(quote.Savings), "savings %s", quote.Savings)
			assert.Equal(t, tt.wantSource, quote.Source)
		})
	}
}

func TestComputeEffectivePrice_ValidityWindowIsInclusiveByDay(t *testing.T) {
	conv := baseConvention()
	lastDayEvening := time.Date(2026, time.December, 31, 23, 30, 0, 0, time.UTC)
	firstDayMorning := time.Date(2026, time.January, 1, 0, 5, 0, 0, time.UTC)

	_, err := tariff.ComputeEffectivePrice(conv, tariff.StayContext{Month: model.December, Axis: tariff.AxisPerRoom, At: lastDayEvening})
	assert.NoError(t, err)

	_, err = tariff.ComputeEffectivePrice(conv, tariff.StayContext{Month: model.January, Axis: tariff.AxisPerRoom, At: firstDayMorning})
	assert.NoError(t, err)
}

func TestComputeEffectivePrice_OpenEnded(t *testing.T) {
	conv := baseConvention()
	conv.EndDate = nil

	_, err := tariff.ComputeEffectivePrice(conv, tariff.StayContext{Month: model.May, Axis: tariff.AxisPerRoom, At: day(2040, time.May, 1)})
	assert.NoError(t, err)
}

func TestComputeEffectivePrice_Idempotent(t *testing.T) {
	conv := baseConvention()
	conv.MonthlyTariffs.Set(model.June, model.MonthlyRate{PerPerson: decPtr("21.35")})
	stay := tariff.StayContext{Month: model.June, Axis: tariff.AxisPerPerson, Headcount: 4, At: day(2026, time.June, 2)}

	first, err := tariff.ComputeEffectivePrice(conv, stay)
	require.NoError(t, err)

	second, err := tariff.ComputeEffectivePrice(conv, stay)
	require.NoError(t, err)

	assert.True(t, first.TotalForStay.Equal(second.TotalForStay))
	assert.True(t, first.UnitPrice.Equal(second.UnitPrice))
	assert.Equal(t, first.Source, second.Source)
}

func TestComputeEffectivePrice_SavingsNeverNegative(t *testing.T) {
	conv := baseConvention()
	conv.NegotiatedPrice = dec("90")

	quote, err := tariff.ComputeEffectivePrice(conv, tariff.StayContext{Month: model.March, Axis: tariff.AxisPerRoom, At: day(2026, time.March, 1)})
	require.NoError(t, err)
	assert.True(t, quote.Savings.IsZero())
}

func TestDeriveReduction(t *testing.T) {
	tests := []struct {
		name       string
		standard   string
		negotiated string
		want       int
		wantErr    error
	}{
		{name: "ten percent", standard: "70", negotiated: "63", want: 10},
		{name: "half rounds away from zero", standard: "8", negotiated: "7", want: 13},
		{name: "below half rounds down", standard: "3", negotiated: "2", want: 33},
		{name: "free stay", standard: "50", negotiated: "0", want: 100},
		{name: "no discount", standard: "50", negotiated: "50", want: 0},
		{name: "zero standard", standard: "0", negotiated: "0", wantErr: tariff.ErrInvalidTariffBase},
		{name: "negative standard", standard: "-10", negotiated: "0", wantErr: tariff.ErrInvalidTariffBase},
		{name: "negotiated above standard", standard: "50", negotiated: "60", wantErr: tariff.ErrNegotiatedAboveStandard},
		{name: "negative negotiated", standard: "50", negotiated: "-1", wantErr: tariff.ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tariff.DeriveReduction(dec(tt.standard), dec(tt.negotiated))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSyncPriceAndReduction(t *testing.T) {
	tests := []struct {
		name           string
		field          tariff.Field
		value          string
		wantStandard   string
		wantNegotiated string
		wantReduction  int
		wantErr        error
	}{
		{
			name:           "negotiated price drives reduction",
			field:          tariff.FieldNegotiatedPrice,
			value:          "63",
			wantStandard:   "70",
			wantNegotiated: "63",
			wantReduction:  10,
		},
		{
			name:           "reduction drives negotiated price",
			field:          tariff.FieldReduction,
			value:          "20",
			wantStandard:   "70",
			wantNegotiated: "56",
			wantReduction:  20,
		},
		{
			name:           "fractional reduction keeps full precision price",
			field:          tariff.FieldReduction,
			value:          "12.5",
			wantStandard:   "70",
			wantNegotiated: "61.25",
			wantReduction:  13,
		},
		{
			name:           "standard price holds reduction",
			field:          tariff.FieldStandardPrice,
			value:          "90",
			wantStandard:   "90",
			wantNegotiated: "81",
			wantReduction:  10,
		},
		{
			name:    "zero standard price",
			field:   tariff.FieldStandardPrice,
			value:   "0",
			wantErr: tariff.ErrInvalidTariffBase,
		},
		{
			name:    "negative negotiated price",
			field:   tariff.FieldNegotiatedPrice,
			value:   "-5",
			wantErr: tariff.ErrNegativeAmount,
		},
		{
			name:    "negotiated above standard",
			field:   tariff.FieldNegotiatedPrice,
			value:   "71",
			wantErr: tariff.ErrNegotiatedAboveStandard,
		},
		{
			name:    "reduction above one hundred",
			field:   tariff.FieldReduction,
			value:   "101",
			wantErr: tariff.ErrInvalidReduction,
		},
		{
			name:    "negative reduction",
			field:   tariff.FieldReduction,
			value:   "-1",
			wantErr: tariff.ErrInvalidReduction,
		},
		{
			name:    "unknown field",
			field:   "conditions",
			value:   "1",
			wantErr: tariff.ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := baseConvention()

			got, err := tariff.SyncPriceAndReduction(conv, tt.field, dec(tt.value))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, conv.Reduction, got.Reduction)
				assert.True(t, conv.NegotiatedPrice.Equal(got.NegotiatedPrice))

				return
			}

			require.NoError(t, err)
			assert.True(t, dec(tt.wantStandard).Equal(got.StandardPrice), "standard %s", got.StandardPrice)
			assert.True(t, dec(tt.wantNegotiated).Equal(got.NegotiatedPrice), "negotiated %s", got.NegotiatedPrice)
			assert.Equal(t, tt.wantReduction, got.Reduction)
		})
	}
}

func TestSyncPriceAndReduction_ZeroBaseOnReductionEdit(t *testing.T) {
	conv := baseConvention()
	conv.StandardPrice = decimal.Zero

	_, err := tariff.SyncPriceAndReduction(conv, tariff.FieldReduction, dec("10"))
	assert.ErrorIs(t, err, tariff.ErrInvalidTariffBase)

	_, err = tariff.SyncPriceAndReduction(conv, tariff.FieldNegotiatedPrice, dec("10"))
	assert.ErrorIs(t, err, tariff.ErrInvalidTariffBase)
}

func TestSyncPriceAndReduction_ConsistentAfterEdits(t *testing.T) {
	conv := baseConvention()
	edits := []struct {
		field tariff.Field
		value string
	}{
		{tariff.FieldReduction, "33"},
		{tariff.FieldStandardPrice, "47.90"},
		{tariff.FieldNegotiatedPrice, "31.15"},
		{tariff.FieldReduction, "7.5"},
		{tariff.FieldStandardPrice, "123.45"},
	}

	for _, edit := range edits {
		var err error

		conv, err = tariff.SyncPriceAndReduction(conv, edit.field, dec(edit.value))
		require.NoError(t, err)

		expected, err := tariff.DeriveReduction(conv.StandardPrice, conv.NegotiatedPrice)
		require.NoError(t, err)
		assert.Equal(t, expected, conv.Reduction)
		assert.NoError(t, tariff.Validate(conv))
	}
}

func TestValidate(t *testing.T) {
	valid := baseConvention()
	assert.NoError(t, tariff.Validate(valid))

	inconsistent := baseConvention()
	inconsistent.Reduction = 15
	assert.ErrorIs(t, tariff.Validate(inconsistent), tariff.ErrInvalidReduction)

	negativeOverride := baseConvention()
	negativeOverride.MonthlyTariffs.Set(model.May, model.MonthlyRate{PerRoom: decPtr("-3")})
	assert.ErrorIs(t, tariff.Validate(negativeOverride), tariff.ErrNegativeAmount)

	badWindow := baseConvention()
	end := day(2025, time.June, 1)
	badWindow.EndDate = &end
	assert.ErrorIs(t, tariff.Validate(badWindow), tariff.ErrInvalidValidityWindow)
}
