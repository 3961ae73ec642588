package dto

import (
	"solireserve/internal/domains/hotel/model"
	"solireserve/shared"
	gDto "solireserve/shared/dto"
	gModel "solireserve/shared/model"
	"solireserve/shared/timezone"

	"github.com/google/uuid"
)

type CreateHotelRequest struct {
	Name       string `json:"nom"         validate:"required,max=150"`
	Address    string `json:"adresse"     validate:"required,max=255"`
	City       string `json:"ville"       validate:"required,max=100"`
	PostalCode string `json:"code_postal" validate:"omitempty,max=10"`
	Phone      string `json:"telephone"   validate:"omitempty,max=30"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Stars      int    `json:"etoiles"     validate:"gte=0,lte=5"`
	Active     *bool  `json:"actif"       validate:"omitempty"`
}

func (c *CreateHotelRequest) ToModel(user string) model.Hotel {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Hotel{
		ID:         uuid.NewString(),
		Name:       c.Name,
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		Phone:      c.Phone,
		Email:      c.Email,
		Stars:      c.Stars,
		Active:     active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateHotelRequest struct {
	Name       string `db:"nom"         json:"nom"         validate:"omitempty,max=150"`
	Address    string `db:"adresse"     json:"adresse"     validate:"omitempty,max=255"`
	City       string `db:"ville"       json:"ville"       validate:"omitempty,max=100"`
	PostalCode string `db:"code_postal" json:"code_postal" validate:"omitempty,max=10"`
	Phone      string `db:"telephone"   json:"telephone"   validate:"omitempty,max=30"`
	Email      string `db:"email"       json:"email"       validate:"omitempty,email"`
	Stars      *int   `db:"etoiles"     json:"etoiles"     validate:"omitempty,gte=0,lte=5"`
	Active     *bool  `db:"actif"       json:"actif"       validate:"omitempty"`
}

type HotelResponse struct {
	ID         string `json:"id"`
	Name       string `json:"nom"`
	Address    string `json:"adresse"`
	City       string `json:"ville"`
	PostalCode string `json:"code_postal"`
	Phone      string `json:"telephone"`
	Email      string `json:"email"`
	Stars      int    `json:"etoiles"`
	Active     bool   `json:"actif"`
	gDto.Metadata
}

func (h *HotelResponse) FromModel(model model.Hotel) {
	h.ID = model.ID
	h.Name = model.Name
	h.Address = model.Address
	h.City = model.City
	h.PostalCode = model.PostalCode
	h.Phone = model.Phone
	h.Email = model.Email
	h.Stars = model.Stars
	h.Active = model.Active
	h.Metadata.FromModel(model.Metadata)
}

type GetHotelsResponse struct {
	Hotels    []HotelResponse `json:"hotels"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (h *GetHotelsResponse) FromModels(models []model.Hotel, totalData, limit int) {
	h.TotalData = totalData
	h.TotalPage = shared.CalculateTotalPage(totalData, limit)

	h.Hotels = make([]HotelResponse, len(models))
	for i, mod := range models {
		h.Hotels[i].FromModel(mod)
	}
}
