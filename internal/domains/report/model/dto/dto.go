package dto

import (
	"time"

	processModel "solireserve/internal/domains/process/model"
	"solireserve/internal/domains/report/model"
	"solireserve/shared/constant"
	"solireserve/shared/timezone"

	"github.com/shopspring/decimal"
)

type SavingsRequest struct {
	OperatorID string `json:"operator_id" validate:"omitempty,uuid"`
	HotelID    string `json:"hotel_id"    validate:"omitempty,uuid"`
	From       string `json:"from"        validate:"omitempty,day"`
	To         string `json:"to"          validate:"omitempty,day"`
}

func (s *SavingsRequest) ToFilter() (model.SavingsFilter, error) {
	filter := model.SavingsFilter{
		OperatorID: s.OperatorID,
		HotelID:    s.HotelID,
	}

	var err error

	if filter.From, err = parseDay(s.From); err != nil {
		return filter, err
	}

	if filter.To, err = parseDay(s.To); err != nil {
		return filter, err
	}

	return filter, nil
}

func parseDay(value string) (*time.Time, error) {
	if value == constant.Empty {
		return nil, nil //nolint:nilnil
	}

	day, err := timezone.Parse(constant.DayFormat, value)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &day, nil
}

type SavingsResponse struct {
	Reservations     int             `json:"nombre_reservations"`
	TotalBilled      decimal.Decimal `json:"total_facture"`
	TotalStandard    decimal.Decimal `json:"total_tarif_standard"`
	TotalSavings     decimal.Decimal `json:"total_economies"`
	AverageReduction decimal.Decimal `json:"reduction_moyenne"`
	Currency         string          `json:"devise"`
}

func (s *SavingsResponse) FromModel(model model.Savings) {
	s.Reservations = model.Reservations
	s.TotalBilled = model.TotalBilled
	s.TotalStandard = model.TotalStandard
	s.TotalSavings = model.TotalSavings
	s.AverageReduction = model.AverageReduction()
}

type ProcessesResponse struct {
	ByStatus       map[processModel.Status]int `json:"par_statut"`
	Total          int                         `json:"total"`
	CompletionRate decimal.Decimal             `json:"taux_completion"`
	Settled        decimal.Decimal             `json:"montant_regle"`
	Outstanding    decimal.Decimal             `json:"montant_en_attente"`
	Currency       string                      `json:"devise"`
}

func (p *ProcessesResponse) FromModel(model model.ProcessSummary) {
	p.ByStatus = model.ByStatus
	p.Total = model.Total
	p.CompletionRate = model.CompletionRate
	p.Settled = model.Settled
	p.Outstanding = model.Outstanding
}

type ExportResponse struct {
	URL       string `json:"url"`
	FileName  string `json:"fichier"`
	ExpiresAt string `json:"expire_le"`
	Operators int    `json:"operateurs"`
}
