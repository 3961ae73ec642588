package dto_test

import (
	"testing"

	"solireserve/internal/domains/hotel/model"
	"solireserve/internal/domains/hotel/model/dto"
	gModel "solireserve/shared/model"
	"solireserve/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateHotelRequest_ToModel(t *testing.T) {
	t.Run("active by default", func(t *testing.T) {
		req := dto.CreateHotelRequest{
			Name:    "Hotel du Parc",
			Address: "12 rue des Lilas",
			City:    "Lyon",
			Stars:   2,
		}

		hotel := req.ToModel("user-1")

		assert.NotEmpty(t, hotel.ID)
		assert.Equal(t, req.Name, hotel.Name)
		assert.Equal(t, req.City, hotel.City)
		assert.Equal(t, 2, hotel.Stars)
		assert.True(t, hotel.Active)
		assert.Equal(t, "user-1", hotel.CreatedBy)
		assert.Equal(t, "user-1", hotel.ModifiedBy)
		assert.False(t, hotel.CreatedAt.IsZero())
	})

	t.Run("explicitly inactive", func(t *testing.T) {
		inactive := false
		req := dto.CreateHotelRequest{Name: "Hotel Gare", Address: "1 place", City: "Lille", Active: &inactive}

		assert.False(t, req.ToModel("user-1").Active)
	})
}

func TestGetHotelsResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	hotels := []model.Hotel{
		{ID: "h1", Name: "Hotel A", City: "Paris", Active: true, Metadata: gModel.Metadata{CreatedAt: now, ModifiedAt: now}},
		{ID: "h2", Name: "Hotel B", City: "Nantes", Metadata: gModel.Metadata{CreatedAt: now, ModifiedAt: now}},
	}

	var response dto.GetHotelsResponse
	response.FromModels(hotels, 21, 10)

	assert.Len(t, response.Hotels, 2)
	assert.Equal(t, 21, response.TotalData)
	assert.Equal(t, 3, response.TotalPage)
	assert.Equal(t, "h1", response.Hotels[0].ID)
	assert.True(t, response.Hotels[0].Active)
	assert.Equal(t, "Nantes", response.Hotels[1].City)
}
