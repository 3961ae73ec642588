package dto

import (
	"time"

	"solireserve/internal/domains/convention/model"
	"solireserve/internal/domains/convention/tariff"
	roomModel "solireserve/internal/domains/room/model"
	"solireserve/shared"
	"solireserve/shared/constant"
	gDto "solireserve/shared/dto"
	gModel "solireserve/shared/model"
	"solireserve/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateConventionRequest needs either prix_conventionne or reduction; when both are sent
// the negotiated price drives and the reduction is recomputed from it.
type CreateConventionRequest struct {
	OperatorID        string               `json:"operator_id"          validate:"required,uuid"`
	HotelID           string               `json:"hotel_id"             validate:"required,uuid"`
	RoomType          roomModel.RoomType   `json:"type_chambre"         validate:"required,oneof=standard confort superieure suite adaptee"`
	StandardPrice     decimal.Decimal      `json:"prix_standard"        validate:"gt=0"`
	NegotiatedPrice   *decimal.Decimal     `json:"prix_conventionne"    validate:"required_without=Reduction,omitempty,gte=0"`
	Reduction         *decimal.Decimal     `json:"reduction"            validate:"required_without=NegotiatedPrice,omitempty,gte=0,lte=100"`
	StartDate         string               `json:"date_debut"           validate:"required,day"`
	EndDate           *string              `json:"date_fin"             validate:"omitempty,day"`
	Status            model.Status         `json:"statut"               validate:"omitempty,oneof=active expiree suspendue"`
	Conditions        string               `json:"conditions"           validate:"omitempty,max=2000"`
	SpecialConditions string               `json:"conditions_speciales" validate:"omitempty,max=2000"`
	MonthlyTariffs    model.MonthlyTariffs `json:"tarifs_mensuels"`
}

// ToModel builds the convention without its derived price pair, see DrivingField.
func (c *CreateConventionRequest) ToModel(user, hotelName string) (model.Convention, error) {
	start, err := timezone.Parse(constant.DayFormat, c.StartDate)
	if err != nil {
		return model.Convention{}, err //nolint:wrapcheck
	}

	var end *time.Time

	if c.EndDate != nil {
		parsed, err := timezone.Parse(constant.DayFormat, *c.EndDate)
		if err != nil {
			return model.Convention{}, err //nolint:wrapcheck
		}

		end = &parsed
	}

	status := c.Status
	if status == "" {
		status = model.StatusActive
	}

	return model.Convention{
		ID:                uuid.NewString(),
		OperatorID:        c.OperatorID,
		HotelID:           c.HotelID,
		HotelName:         hotelName,
		RoomType:          c.RoomType,
		StandardPrice:     c.StandardPrice,
		StartDate:         start,
		EndDate:           end,
		Status:            status,
		Conditions:        c.Conditions,
		SpecialConditions: c.SpecialConditions,
		MonthlyTariffs:    c.MonthlyTariffs,
		Version:           1,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// DrivingField returns the price field the client set and its value.
func (c *CreateConventionRequest) DrivingField() (tariff.Field, decimal.Decimal) {
	if c.NegotiatedPrice != nil {
		return tariff.FieldNegotiatedPrice, *c.NegotiatedPrice
	}

	if c.Reduction != nil {
		return tariff.FieldReduction, *c.Reduction
	}

	return tariff.FieldNegotiatedPrice, c.StandardPrice
}

// UpdateConventionRequest edits everything but the price pair and the status.
type UpdateConventionRequest struct {
	StartDate         *string               `json:"date_debut"           validate:"omitempty,day"`
	EndDate           *string               `json:"date_fin"             validate:"omitempty,day"`
	ClearEndDate      bool                  `json:"sans_date_fin"`
	Conditions        *string               `json:"conditions"           validate:"omitempty,max=2000"`
	SpecialConditions *string               `json:"conditions_speciales" validate:"omitempty,max=2000"`
	MonthlyTariffs    *model.MonthlyTariffs `json:"tarifs_mensuels"`
	Version           int                   `json:"version"              validate:"required,min=1"`
}

// Apply merges the request into conv and returns the columns to write.
func (u *UpdateConventionRequest) Apply(conv *model.Convention) (map[string]any, error) {
	fields := map[string]any{}

	if u.StartDate != nil {
		start, err := timezone.Parse(constant.DayFormat, *u.StartDate)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		conv.StartDate = start
		fields[model.FieldStartDate] = start
	}

	switch {
	case u.ClearEndDate:
		conv.EndDate = nil
		fields[model.FieldEndDate] = nil
	case u.EndDate != nil:
		end, err := timezone.Parse(constant.DayFormat, *u.EndDate)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		conv.EndDate = &end
		fields[model.FieldEndDate] = end
	}

	if u.Conditions != nil {
		conv.Conditions = *u.Conditions
		fields[model.FieldConditions] = conv.Conditions
	}

	if u.SpecialConditions != nil {
		conv.SpecialConditions = *u.SpecialConditions
		fields[model.FieldSpecialConditions] = conv.SpecialConditions
	}

	if u.MonthlyTariffs != nil {
		conv.MonthlyTariffs = *u.MonthlyTariffs
		fields[model.FieldMonthlyTariffs] = conv.MonthlyTariffs
	}

	return fields, nil
}

type SyncPriceRequest struct {
	Field   tariff.Field    `json:"field"   validate:"required,oneof=prix_standard prix_conventionne reduction"`
	Value   decimal.Decimal `json:"value"   validate:"gte=0"`
	Version int             `json:"version" validate:"required,min=1"`
}

type UpdateStatusRequest struct {
	Status  model.Status `json:"statut"  validate:"required,oneof=active expiree suspendue"`
	Version int          `json:"version" validate:"required,min=1"`
}

type QuoteRequest struct {
	Month     string      `json:"month"     validate:"required"`
	Axis      tariff.Axis `json:"axis"      validate:"required,oneof=per_person per_room"`
	Headcount int         `json:"headcount" validate:"gte=0"`
	Date      *string     `json:"date"      validate:"omitempty,day"`
}

type QuoteResponse struct {
	ConventionID string          `json:"convention_id"`
	Month        string          `json:"month"`
	Axis         tariff.Axis     `json:"axis"`
	Source       tariff.Source   `json:"source"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalForStay decimal.Decimal `json:"total_for_stay"`
	Savings      decimal.Decimal `json:"savings"`
	Reduction    int             `json:"reduction"`
}

func (q *QuoteResponse) FromQuote(conv model.Convention, quote tariff.Quote) {
	q.ConventionID = conv.ID
	q.Month = quote.Month.String()
	q.Axis = quote.Axis
	q.Source = quote.Source
	q.UnitPrice = quote.UnitPrice
	q.TotalForStay = quote.TotalForStay
	q.Savings = quote.Savings
	q.Reduction = conv.Reduction
}

type ConventionResponse struct {
	ID                string               `json:"id"`
	OperatorID        string               `json:"operator_id"`
	HotelID           string               `json:"hotel_id"`
	HotelName         string               `json:"hotel_nom"`
	RoomType          roomModel.RoomType   `json:"type_chambre"`
	StandardPrice     decimal.Decimal      `json:"prix_standard"`
	NegotiatedPrice   decimal.Decimal      `json:"prix_conventionne"`
	Reduction         int                  `json:"reduction"`
	StartDate         string               `json:"date_debut"`
	EndDate           *string              `json:"date_fin"`
	Status            model.Status         `json:"statut"`
	Applicable        bool                 `json:"applicable"`
	Conditions        string               `json:"conditions"`
	SpecialConditions string               `json:"conditions_speciales"`
	MonthlyTariffs    model.MonthlyTariffs `json:"tarifs_mensuels"`
	Version           int                  `json:"version"`
	gDto.Metadata
}

// FromModel also reports whether the convention prices stays today.
func (r *ConventionResponse) FromModel(model model.Convention) {
	r.ID = model.ID
	r.OperatorID = model.OperatorID
	r.HotelID = model.HotelID
	r.HotelName = model.HotelName
	r.RoomType = model.RoomType
	r.StandardPrice = model.StandardPrice
	r.NegotiatedPrice = model.NegotiatedPrice
	r.Reduction = model.Reduction
	r.StartDate = model.StartDate.Format(constant.DayFormat)
	r.Status = model.Status
	r.Applicable = tariff.CheckApplicable(model, timezone.Now()) == nil
	r.Conditions = model.Conditions
	r.SpecialConditions = model.SpecialConditions
	r.MonthlyTariffs = model.MonthlyTariffs
	r.Version = model.Version
	r.Metadata.FromModel(model.Metadata)

	if model.EndDate != nil {
		end := model.EndDate.Format(constant.DayFormat)
		r.EndDate = &end
	}
}

type GetConventionsResponse struct {
	Conventions []ConventionResponse `json:"conventions"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetConventionsResponse) FromModels(models []model.Convention, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Conventions = make([]ConventionResponse, len(models))
	for i, mod := range models {
		r.Conventions[i].FromModel(mod)
	}
}
