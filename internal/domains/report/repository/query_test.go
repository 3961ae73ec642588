package repository

import (
	"testing"
	"time"

	"solireserve/internal/domains/report/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavingsQuery(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("without filter", func(t *testing.T) {
		query, args, err := savingsQuery(model.SavingsFilter{}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "COUNT(reservations.id) AS reservations")
		assert.Contains(t, query, "COALESCE(SUM(reservations.prix * reservations.nuits), 0) AS total_billed")
		assert.Contains(t, query, "COALESCE(SUM(reservations.prix_standard * reservations.nuits), 0) AS total_standard")
		assert.Contains(t, query, "FROM reservations")
		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("all filters use positional placeholders", func(t *testing.T) {
		query, args, err := savingsQuery(model.SavingsFilter{
			OperatorID: "op-1",
			HotelID:    "hotel-1",
			From:       &from,
			To:         &to,
		}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "reservations.operator_id = $1")
		assert.Contains(t, query, "reservations.hotel_id = $2")
		assert.Contains(t, query, "reservations.date_arrivee >= $3")
		assert.Contains(t, query, "reservations.date_arrivee <= $4")
		assert.Equal(t, []any{"op-1", "hotel-1", from, to}, args)
	})
}

func TestSavingsByOperatorQuery(t *testing.T) {
	query, args, err := savingsByOperatorQuery(model.SavingsFilter{HotelID: "hotel-1"}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "reservations.operator_id AS operator_id, operators.nom AS operator_name")
	assert.Contains(t, query, "JOIN operators ON operators.id = reservations.operator_id")
	assert.Contains(t, query, "WHERE reservations.hotel_id = $1")
	assert.Contains(t, query, "GROUP BY reservations.operator_id, operators.nom")
	assert.Contains(t, query, "ORDER BY operators.nom ASC")
	assert.Equal(t, []any{"hotel-1"}, args)
}

func TestProcessTotalsQuery(t *testing.T) {
	query, args, err := processTotalsQuery().ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT statut, COUNT(reservation_id) AS total, COALESCE(SUM(fa_montant), 0) AS invoiced, "+
			"COALESCE(SUM(fa_montant_paye), 0) AS paid FROM reservation_processes GROUP BY statut",
		query)
	assert.Empty(t, args)
}
