package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"solireserve/internal/domains/convention/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonth(t *testing.T) {
	month, ok := model.ParseMonth("aout")
	assert.True(t, ok)
	assert.Equal(t, model.August, month)

	_, ok = model.ParseMonth("august")
	assert.False(t, ok)

	assert.Equal(t, model.February, model.MonthOf(time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "decembre", model.December.String())
	assert.Len(t, model.MonthKeys(), 12)
}

func TestMonthlyTariffs_JSON(t *testing.T) {
	raw := `{"janvier":{"prix_par_personne":"25.5"},"juillet":{"prix_par_chambre":"80"}}`

	var tariffs model.MonthlyTariffs
	require.NoError(t, json.Unmarshal([]byte(raw), &tariffs))

	january, ok := tariffs.Rate(model.January)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("25.5").Equal(*january.PerPerson))
	assert.Nil(t, january.PerRoom)

	_, ok = tariffs.Rate(model.March)
	assert.False(t, ok)

	out, err := json.Marshal(tariffs)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestMonthlyTariffs_UnknownMonth(t *testing.T) {
	var tariffs model.MonthlyTariffs

	assert.Error(t, json.Unmarshal([]byte(`{"thermidor":{}}`), &tariffs))
}

func TestMonthlyTariffs_Scan(t *testing.T) {
	var tariffs model.MonthlyTariffs

	require.NoError(t, tariffs.Scan([]byte(`{"mai":{"prix_par_chambre":"42"}}`)))

	rate, ok := tariffs.Rate(model.May)
	require.True(t, ok)
	assert.Equal(t, "42", rate.PerRoom.String())

	require.NoError(t, tariffs.Scan(nil))
	assert.True(t, tariffs.IsEmpty())

	assert.Error(t, tariffs.Scan(42))

	value, err := tariffs.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", value)
}
