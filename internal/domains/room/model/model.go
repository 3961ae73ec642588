package model

import (
	hotelModel "solireserve/internal/domains/hotel/model"
	"solireserve/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldHotelID       = "hotel_id"
	FieldNumber        = "numero"
	FieldRoomType      = "type_chambre"
	FieldCapacity      = "capacite"
	FieldStandardPrice = "prix_standard"
	FieldImage         = "image"
	FieldActive        = "actif"
	FieldHotelCity     = "hotel_ville"
)

type RoomType string

const (
	RoomTypeStandard   RoomType = "standard"
	RoomTypeComfort    RoomType = "confort"
	RoomTypeSuperior   RoomType = "superieure"
	RoomTypeSuite      RoomType = "suite"
	RoomTypeAccessible RoomType = "adaptee"
)

func (t RoomType) IsValid() bool {
	switch t {
	case RoomTypeStandard, RoomTypeComfort, RoomTypeSuperior, RoomTypeSuite, RoomTypeAccessible:
		return true
	}

	return false
}

// Room is a bookable room. HotelName and HotelCity are read from the hotels table.
type Room struct {
	ID            string          `db:"id"`
	HotelID       string          `db:"hotel_id"`
	Number        string          `db:"numero"`
	RoomType      RoomType        `db:"type_chambre"`
	Capacity      int             `db:"capacite"`
	StandardPrice decimal.Decimal `db:"prix_standard"`
	Image         string          `db:"image"`
	Active        bool            `db:"actif"`
	HotelName     string          `db:"hotel_nom" table:"hotels" column:"nom"`
	HotelCity     string          `db:"hotel_ville" table:"hotels" column:"ville"`
	model.Metadata
}

func (Room) GetJoinQuery() string {
	return "LEFT JOIN " + hotelModel.TableName + " ON " + hotelModel.TableName + "." + hotelModel.FieldID +
		" = " + TableName + "." + FieldHotelID
}
