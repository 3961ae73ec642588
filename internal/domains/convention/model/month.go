package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var errUnsupportedTariffSource = errors.New("unsupported monthly tariff source")

// Month is a calendar month, 1 for janvier through 12 for decembre.
type Month int

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthKeys = [12]string{
	"janvier", "fevrier", "mars", "avril", "mai", "juin",
	"juillet", "aout", "septembre", "octobre", "novembre", "decembre",
}

// MonthKeys lists the month names accepted by the API, in calendar order.
func MonthKeys() []string {
	return monthKeys[:]
}

func ParseMonth(key string) (Month, bool) {
	for i, k := range monthKeys {
		if k == key {
			return Month(i + 1), true
		}
	}

	return 0, false
}

func MonthOf(t time.Time) Month {
	return Month(t.Month())
}

func (m Month) IsValid() bool {
	return m >= January && m <= December
}

func (m Month) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("month(%d)", int(m))
	}

	return monthKeys[m-1]
}

// MonthlyRate overrides the flat negotiated price for one month. Either axis may be absent.
type MonthlyRate struct {
	PerPerson *decimal.Decimal `json:"prix_par_personne,omitempty"`
	PerRoom   *decimal.Decimal `json:"prix_par_chambre,omitempty"`
}

func (r MonthlyRate) IsEmpty() bool {
	return r.PerPerson == nil && r.PerRoom == nil
}

// MonthlyTariffs holds one optional override per calendar month.
// It is stored as a JSONB object keyed by French month names.
type MonthlyTariffs [12]MonthlyRate

func (t *MonthlyTariffs) Rate(month Month) (MonthlyRate, bool) {
	if t == nil || !month.IsValid() {
		return MonthlyRate{}, false
	}

	rate := t[month-1]

	return rate, !rate.IsEmpty()
}

func (t *MonthlyTariffs) Set(month Month, rate MonthlyRate) {
	if !month.IsValid() {
		return
	}

	t[month-1] = rate
}

func (t MonthlyTariffs) IsEmpty() bool {
	for _, rate := range t {
		if !rate.IsEmpty() {
			return false
		}
	}

	return true
}

func (t MonthlyTariffs) MarshalJSON() ([]byte, error) {
	out := make(map[string]MonthlyRate, len(t))

	for i, rate := range t {
		if rate.IsEmpty() {
			continue
		}

		out[monthKeys[i]] = rate
	}

	return json.Marshal(out) //nolint:wrapcheck
}

func (t *MonthlyTariffs) UnmarshalJSON(data []byte) error {
	raw := map[string]MonthlyRate{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode monthly tariffs: %w", err)
	}

	*t = MonthlyTariffs{}

	for key, rate := range raw {
		month, ok := ParseMonth(key)
		if !ok {
			return fmt.Errorf("unknown month %q in monthly tariffs", key)
		}

		t.Set(month, rate)
	}

	return nil
}

// Value implements driver.Valuer.
func (t MonthlyTariffs) Value() (driver.Value, error) {
	data, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}

	return string(data), nil
}

// Scan implements sql.Scanner.
func (t *MonthlyTariffs) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = MonthlyTariffs{}

		return nil
	case []byte:
		return t.UnmarshalJSON(v)
	case string:
		return t.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("%w: %T", errUnsupportedTariffSource, src)
	}
}
