package dto_test

import (
	"testing"
	"time"

	"solireserve/internal/domains/reservation/model"
	"solireserve/internal/domains/reservation/model/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservationRequest_Stay(t *testing.T) {
	t.Run("counts nights", func(t *testing.T) {
		req := dto.CreateReservationRequest{ArrivalDate: "2025-03-28", DepartureDate: "2025-04-02"}

		arrival, departure, nights, err := req.Stay()
		require.NoError(t, err)

		assert.Equal(t, time.March, arrival.Month())
		assert.Equal(t, 2, departure.Day())
		assert.Equal(t, 5, nights)
	})

	t.Run("bad arrival", func(t *testing.T) {
		req := dto.CreateReservationRequest{ArrivalDate: "28/03/2025", DepartureDate: "2025-04-02"}

		_, _, _, err := req.Stay()
		assert.Error(t, err)
	})

	t.Run("bad departure", func(t *testing.T) {
		req := dto.CreateReservationRequest{ArrivalDate: "2025-03-28", DepartureDate: "2025-13-02"}

		_, _, _, err := req.Stay()
		assert.Error(t, err)
	})
}

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		Guest:         "M. Durand",
		RoomID:        "room-1",
		OperatorID:    "op-1",
		ArrivalDate:   "2025-03-01",
		DepartureDate: "2025-03-04",
		Guests:        2,
		Axis:          "per_person",
	}

	arrival, departure, nights, err := req.Stay()
	require.NoError(t, err)

	reservation := req.ToModel("user-1", "hotel-1", arrival, departure, nights)

	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, "hotel-1", reservation.HotelID)
	assert.Equal(t, "room-1", reservation.RoomID)
	assert.Equal(t, 3, reservation.Nights)
	assert.Equal(t, model.StatusConfirmed, reservation.Status)
	assert.True(t, reservation.Price.IsZero())
	assert.Equal(t, "user-1", reservation.CreatedBy)
}

func TestReservationResponse_FromModel(t *testing.T) {
	conventionID := "conv-1"
	reservation := model.Reservation{
		ID:            "res-1",
		Guest:         "Mme Martin",
		ConventionID:  &conventionID,
		ArrivalDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DepartureDate: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		Nights:        3,
		Price:         decimal.RequireFromString("56.50"),
		StandardPrice: decimal.NewFromInt(70),
		Savings:       decimal.RequireFromString("13.50"),
		Status:        model.StatusInProgress,
	}

	var response dto.ReservationResponse
	response.FromModel(reservation)

	assert.Equal(t, "2025-03-01", response.ArrivalDate)
	assert.Equal(t, "2025-03-04", response.DepartureDate)
	assert.Equal(t, &conventionID, response.ConventionID)
	assert.True(t, decimal.RequireFromString("169.50").Equal(response.Total))
	assert.Equal(t, model.StatusInProgress, response.Status)
}
