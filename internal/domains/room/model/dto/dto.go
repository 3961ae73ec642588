package dto

import (
	"mime/multipart"

	"solireserve/internal/domains/room/model"
	"solireserve/shared"
	gDto "solireserve/shared/dto"
	gModel "solireserve/shared/model"
	"solireserve/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	HotelID       string                `json:"hotel_id"      validate:"required,uuid"`
	Number        string                `json:"numero"        validate:"required,max=20"`
	RoomType      model.RoomType        `json:"type_chambre"  validate:"required,oneof=standard confort superieure suite adaptee"`
	Capacity      int                   `json:"capacite"      validate:"required,min=1,max=20"`
	StandardPrice decimal.Decimal       `json:"prix_standard" validate:"gt=0"`
	Image         *multipart.FileHeader `json:"image"         validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
	Active        *bool                 `json:"actif"         validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:            uuid.NewString(),
		HotelID:       c.HotelID,
		Number:        c.Number,
		RoomType:      c.RoomType,
		Capacity:      c.Capacity,
		StandardPrice: c.StandardPrice,
		Image:         imageURL,
		Active:        active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number        string                `db:"numero"        json:"numero"        validate:"omitempty,max=20"`
	RoomType      model.RoomType        `db:"type_chambre"  json:"type_chambre"  validate:"omitempty,oneof=standard confort superieure suite adaptee"`
	Capacity      *int                  `db:"capacite"      json:"capacite"      validate:"omitempty,min=1,max=20"`
	StandardPrice *decimal.Decimal      `db:"prix_standard" json:"prix_standard" validate:"omitempty,gt=0"`
	Image         *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile     multipart.File        `json:"-"`
	Active        *bool                 `db:"actif"         json:"actif"         validate:"omitempty"`
}

type RoomResponse struct {
	ID            string          `json:"id"`
	HotelID       string          `json:"hotel_id"`
	Number        string          `json:"numero"`
	RoomType      model.RoomType  `json:"type_chambre"`
	Capacity      int             `json:"capacite"`
	StandardPrice decimal.Decimal `json:"prix_standard"`
	Image         string          `json:"image"`
	Active        bool            `json:"actif"`
	HotelName     string          `json:"hotel_nom,omitempty"`
	HotelCity     string          `json:"hotel_ville,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.Number = model.Number
	r.RoomType = model.RoomType
	r.Capacity = model.Capacity
	r.StandardPrice = model.StandardPrice
	r.Image = model.Image
	r.Active = model.Active
	r.HotelName = model.HotelName
	r.HotelCity = model.HotelCity
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
