package model

import (
	"time"

	roomModel "solireserve/internal/domains/room/model"
	"solireserve/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "conventions"
	EntityName = "convention"

	FieldID                = "id"
	FieldOperatorID        = "operator_id"
	FieldHotelID           = "hotel_id"
	FieldHotelName         = "hotel_nom"
	FieldRoomType          = "type_chambre"
	FieldStandardPrice     = "prix_standard"
	FieldNegotiatedPrice   = "prix_conventionne"
	FieldReduction         = "reduction"
	FieldStartDate         = "date_debut"
	FieldEndDate           = "date_fin"
	FieldStatus            = "statut"
	FieldConditions        = "conditions"
	FieldSpecialConditions = "conditions_speciales"
	FieldMonthlyTariffs    = "tarifs_mensuels"
	FieldVersion           = "version"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expiree"
	StatusSuspended Status = "suspendue"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusExpired || s == StatusSuspended
}

// IsActive reports whether the status alone allows pricing.
func (s Status) IsActive() bool {
	return s == StatusActive
}

// Convention is a negotiated price agreement between one operator and one hotel for one room type.
type Convention struct {
	ID                string             `db:"id"`
	OperatorID        string             `db:"operator_id"`
	HotelID           string             `db:"hotel_id"`
	HotelName         string             `db:"hotel_nom"`
	RoomType          roomModel.RoomType `db:"type_chambre"`
	StandardPrice     decimal.Decimal    `db:"prix_standard"`
	NegotiatedPrice   decimal.Decimal    `db:"prix_conventionne"`
	Reduction         int                `db:"reduction"`
	StartDate         time.Time          `db:"date_debut"`
	EndDate           *time.Time         `db:"date_fin"`
	Status            Status             `db:"statut"`
	Conditions        string             `db:"conditions"`
	SpecialConditions string             `db:"conditions_speciales"`
	MonthlyTariffs    MonthlyTariffs     `db:"tarifs_mensuels"`
	Version           int                `db:"version"`
	model.Metadata
}
