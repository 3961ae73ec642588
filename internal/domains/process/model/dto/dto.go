package dto

import (
	"time"

	"solireserve/internal/domains/process/lifecycle"
	"solireserve/internal/domains/process/model"
	"solireserve/shared"
	gDto "solireserve/shared/dto"

	"github.com/shopspring/decimal"
)

type AdvanceRequest struct {
	Stage      model.Stage      `json:"stage"       validate:"required,oneof=bon_hebergement bon_commande facture"`
	Status     string           `json:"status"      validate:"required"`
	AmountPaid *decimal.Decimal `json:"amount_paid" validate:"omitempty,gte=0"`
	Comment    string           `json:"comment"     validate:"omitempty,max=1000"`
	Version    int              `json:"version"     validate:"required,min=1"`
}

func (a *AdvanceRequest) ToTransition(actor string) lifecycle.Transition {
	return lifecycle.Transition{
		Stage:      a.Stage,
		Status:     a.Status,
		Actor:      actor,
		AmountPaid: a.AmountPaid,
		Comment:    a.Comment,
	}
}

type UpdatePriorityRequest struct {
	Priority model.Priority `json:"priorite" validate:"required,oneof=basse normale haute urgente"`
}

type VoucherResponse struct {
	Number      string               `json:"numero"`
	Status      model.DocumentStatus `json:"statut"`
	CreatedAt   time.Time            `json:"date_creation"`
	ValidatedAt *time.Time           `json:"date_validation"`
	ValidatedBy string               `json:"valide_par"`
	Comment     string               `json:"commentaire"`
}

type PurchaseOrderResponse struct {
	Number      string               `json:"numero"`
	Status      model.DocumentStatus `json:"statut"`
	CreatedAt   *time.Time           `json:"date_creation"`
	ValidatedAt *time.Time           `json:"date_validation"`
	ValidatedBy string               `json:"valide_par"`
	Comment     string               `json:"commentaire"`
	Amount      decimal.Decimal      `json:"montant"`
}

type InvoiceResponse struct {
	Number      string              `json:"numero"`
	Status      model.InvoiceStatus `json:"statut"`
	GeneratedAt *time.Time          `json:"date_generation"`
	SentAt      *time.Time          `json:"date_envoi"`
	PaidAt      *time.Time          `json:"date_paiement"`
	Amount      decimal.Decimal     `json:"montant"`
	AmountPaid  decimal.Decimal     `json:"montant_paye"`
	Outstanding decimal.Decimal     `json:"reste_a_payer"`
	Comment     string              `json:"commentaire"`
}

type ProcessResponse struct {
	ReservationID string                `json:"reservation_id"`
	Status        model.Status          `json:"statut"`
	Priority      model.Priority        `json:"priorite"`
	StartDate     time.Time             `json:"date_debut"`
	EstimatedDays int                   `json:"duree_estimee"`
	CurrentStage  model.Stage           `json:"etape_courante"`
	Settled       bool                  `json:"settled"`
	Version       int                   `json:"version"`
	Voucher       VoucherResponse       `json:"bon_hebergement"`
	PurchaseOrder PurchaseOrderResponse `json:"bon_commande"`
	Invoice       InvoiceResponse       `json:"facture"`
	gDto.Metadata
}

func (r *ProcessResponse) FromModel(p model.Process) {
	r.ReservationID = p.ReservationID
	r.Status = p.Status
	r.Priority = p.Priority
	r.StartDate = p.StartDate
	r.EstimatedDays = p.EstimatedDays
	r.CurrentStage = lifecycle.CurrentStage(p)
	r.Settled = lifecycle.IsSettled(p)
	r.Version = p.Version

	r.Voucher = VoucherResponse{
		Number:      p.Voucher.Number,
		Status:      p.Voucher.Status,
		CreatedAt:   p.Voucher.CreatedAt,
		ValidatedAt: p.Voucher.ValidatedAt,
		ValidatedBy: p.Voucher.ValidatedBy,
		Comment:     p.Voucher.Comment,
	}

	r.PurchaseOrder = PurchaseOrderResponse{
		Number:      p.PurchaseOrder.Number,
		Status:      p.PurchaseOrder.Status,
		CreatedAt:   p.PurchaseOrder.CreatedAt,
		ValidatedAt: p.PurchaseOrder.ValidatedAt,
		ValidatedBy: p.PurchaseOrder.ValidatedBy,
		Comment:     p.PurchaseOrder.Comment,
		Amount:      p.PurchaseOrder.Amount,
	}

	r.Invoice = InvoiceResponse{
		Number:      p.Invoice.Number,
		Status:      p.Invoice.Status,
		GeneratedAt: p.Invoice.GeneratedAt,
		SentAt:      p.Invoice.SentAt,
		PaidAt:      p.Invoice.PaidAt,
		Amount:      p.Invoice.Amount,
		AmountPaid:  p.Invoice.AmountPaid,
		Outstanding: p.Invoice.Amount.Sub(p.Invoice.AmountPaid),
		Comment:     p.Invoice.Comment,
	}

	r.Metadata.FromModel(p.Metadata)
}

type GetProcessesResponse struct {
	Processes []ProcessResponse `json:"processes"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProcessesResponse) FromModels(models []model.Process, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Processes = make([]ProcessResponse, len(models))
	for i, mod := range models {
		r.Processes[i].FromModel(mod)
	}
}

// AdvancedEvent is published on every accepted transition, keyed by reservation id.
type AdvancedEvent struct {
	ReservationID string       `json:"reservation_id"`
	Stage         model.Stage  `json:"stage"`
	Status        string       `json:"status"`
	ProcessStatus model.Status `json:"process_status"`
	Actor         string       `json:"actor"`
	OccurredAt    time.Time    `json:"occurred_at"`
}
