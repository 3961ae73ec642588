package dto

import (
	"time"

	processModel "solireserve/internal/domains/process/model"
	"solireserve/internal/domains/reservation/model"
	"solireserve/shared"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	gModel "solireserve/shared/model"
	"solireserve/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateReservationRequest struct {
	Guest         string                `json:"usager"           validate:"required,max=150"`
	RoomID        string                `json:"room_id"          validate:"required,uuid"`
	OperatorID    string                `json:"operator_id"      validate:"required,uuid"`
	ArrivalDate   string                `json:"date_arrivee"     validate:"required,day"`
	DepartureDate string                `json:"date_depart"      validate:"required,day"`
	Guests        int                   `json:"nombre_personnes" validate:"required,min=1,max=20"`
	Axis          string                `json:"axe_tarifaire"    validate:"omitempty,oneof=per_person per_room"`
	Priority      processModel.Priority `json:"priorite"         validate:"omitempty,oneof=basse normale haute urgente"`
}

// Stay parses the requested dates and returns them with the number of nights.
func (c *CreateReservationRequest) Stay() (arrival, departure time.Time, nights int, err error) {
	arrival, err = timezone.Parse(constant.DayFormat, c.ArrivalDate)
	if err != nil {
		return arrival, departure, 0, err //nolint:wrapcheck
	}

	departure, err = timezone.Parse(constant.DayFormat, c.DepartureDate)
	if err != nil {
		return arrival, departure, 0, err //nolint:wrapcheck
	}

	return arrival, departure, model.Nights(arrival, departure), nil
}

// ToModel fills everything but the pricing columns.
func (c *CreateReservationRequest) ToModel(user, hotelID string, arrival, departure time.Time, nights int) model.Reservation {
	return model.Reservation{
		ID:            uuid.NewString(),
		Guest:         c.Guest,
		HotelID:       hotelID,
		RoomID:        c.RoomID,
		OperatorID:    c.OperatorID,
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Nights:        nights,
		Guests:        c.Guests,
		Axis:          c.Axis,
		Status:        model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStatusRequest struct {
	Status model.Status `json:"statut" validate:"required,oneof=confirmee en_cours terminee"`
}

type ReservationResponse struct {
	ID            string          `json:"id"`
	Guest         string          `json:"usager"`
	HotelID       string          `json:"hotel_id"`
	RoomID        string          `json:"room_id"`
	OperatorID    string          `json:"operator_id"`
	ConventionID  *string         `json:"convention_id"`
	ArrivalDate   string          `json:"date_arrivee"`
	DepartureDate string          `json:"date_depart"`
	Nights        int             `json:"nuits"`
	Guests        int             `json:"nombre_personnes"`
	Axis          string          `json:"axe_tarifaire"`
	Price         decimal.Decimal `json:"prix"`
	StandardPrice decimal.Decimal `json:"prix_standard"`
	Savings       decimal.Decimal `json:"economie"`
	Total         decimal.Decimal `json:"total"`
	Status        model.Status    `json:"statut"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.Guest = model.Guest
	r.HotelID = model.HotelID
	r.RoomID = model.RoomID
	r.OperatorID = model.OperatorID
	r.ConventionID = model.ConventionID
	r.ArrivalDate = model.ArrivalDate.Format(constant.DayFormat)
	r.DepartureDate = model.DepartureDate.Format(constant.DayFormat)
	r.Nights = model.Nights
	r.Guests = model.Guests
	r.Axis = model.Axis
	r.Price = model.Price
	r.StandardPrice = model.StandardPrice
	r.Savings = model.Savings
	r.Total = model.Total()
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
