package model

import (
	"time"

	"solireserve/shared/model"
	"solireserve/shared/timezone"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID            = "id"
	FieldGuest         = "usager"
	FieldHotelID       = "hotel_id"
	FieldRoomID        = "room_id"
	FieldOperatorID    = "operator_id"
	FieldConventionID  = "convention_id"
	FieldArrivalDate   = "date_arrivee"
	FieldDepartureDate = "date_depart"
	FieldNights        = "nuits"
	FieldGuests        = "nombre_personnes"
	FieldAxis          = "axe_tarifaire"
	FieldPrice         = "prix"
	FieldStandardPrice = "prix_standard"
	FieldSavings       = "economie"
	FieldStatus        = "statut"
	FieldCreatedBy     = "created_by"
)

type Status string

const (
	StatusConfirmed  Status = "confirmee"
	StatusInProgress Status = "en_cours"
	StatusFinished   Status = "terminee"
)

var statusOrder = map[Status]int{
	StatusConfirmed:  0,
	StatusInProgress: 1,
	StatusFinished:   2,
}

func (s Status) IsValid() bool {
	_, ok := statusOrder[s]

	return ok
}

// CanMoveTo allows only forward moves: confirmee, en_cours, terminee.
func (s Status) CanMoveTo(next Status) bool {
	if !s.IsValid() || !next.IsValid() {
		return false
	}

	return statusOrder[next] > statusOrder[s]
}

// Reservation is a stay of one guest in one room, priced for the placing operator.
type Reservation struct {
	ID            string          `db:"id"`
	Guest         string          `db:"usager"`
	HotelID       string          `db:"hotel_id"`
	RoomID        string          `db:"room_id"`
	OperatorID    string          `db:"operator_id"`
	ConventionID  *string         `db:"convention_id"`
	ArrivalDate   time.Time       `db:"date_arrivee"`
	DepartureDate time.Time       `db:"date_depart"`
	Nights        int             `db:"nuits"`
	Guests        int             `db:"nombre_personnes"`
	Axis          string          `db:"axe_tarifaire"`
	Price         decimal.Decimal `db:"prix"`
	StandardPrice decimal.Decimal `db:"prix_standard"`
	Savings       decimal.Decimal `db:"economie"`
	Status        Status          `db:"statut"`
	model.Metadata
}

// Total is the value of the whole stay.
func (r Reservation) Total() decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(int64(r.Nights)))
}

// Nights counts calendar days between arrival and departure.
func Nights(arrival, departure time.Time) int {
	return timezone.DaysBetween(arrival, departure)
}
