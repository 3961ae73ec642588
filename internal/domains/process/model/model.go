package model

import (
	"time"

	"solireserve/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "reservation_processes"
	EntityName = "process"

	FieldReservationID = "reservation_id"
	FieldStatus        = "statut"
	FieldPriority      = "priorite"
	FieldStartDate     = "date_debut"
	FieldEstimatedDays = "duree_estimee"
	FieldVersion       = "version"

	FieldVoucherNumber      = "bh_numero"
	FieldVoucherStatus      = "bh_statut"
	FieldVoucherCreatedAt   = "bh_date_creation"
	FieldVoucherValidatedAt = "bh_date_validation"
	FieldVoucherValidatedBy = "bh_valide_par"
	FieldVoucherComment     = "bh_commentaire"
	FieldOrderNumber        = "bc_numero"
	FieldOrderStatus        = "bc_statut"
	FieldOrderCreatedAt     = "bc_date_creation"
	FieldOrderValidatedAt   = "bc_date_validation"
	FieldOrderValidatedBy   = "bc_valide_par"
	FieldOrderComment       = "bc_commentaire"
	FieldOrderAmount        = "bc_montant"
	FieldInvoiceNumber      = "fa_numero"
	FieldInvoiceStatus      = "fa_statut"
	FieldInvoiceGeneratedAt = "fa_date_generation"
	FieldInvoiceSentAt      = "fa_date_envoi"
	FieldInvoicePaidAt      = "fa_date_paiement"
	FieldInvoiceAmount      = "fa_montant"
	FieldInvoiceAmountPaid  = "fa_montant_paye"
	FieldInvoiceComment     = "fa_commentaire"
)

type Stage string

const (
	StageVoucher       Stage = "bon_hebergement"
	StagePurchaseOrder Stage = "bon_commande"
	StageInvoice       Stage = "facture"
)

func (s Stage) IsValid() bool {
	return s == StageVoucher || s == StagePurchaseOrder || s == StageInvoice
}

// DocumentStatus is the status vocabulary shared by the voucher and the purchase order.
type DocumentStatus string

const (
	DocumentPending   DocumentStatus = "en_attente"
	DocumentValidated DocumentStatus = "valide"
	DocumentRefused   DocumentStatus = "refuse"
	DocumentExpired   DocumentStatus = "expire"
)

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentPending, DocumentValidated, DocumentRefused, DocumentExpired:
		return true
	}

	return false
}

// IsDead reports a terminal failure that cancels the whole process.
func (s DocumentStatus) IsDead() bool {
	return s == DocumentRefused || s == DocumentExpired
}

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "en_attente"
	InvoiceGenerated InvoiceStatus = "generee"
	InvoiceSent      InvoiceStatus = "envoyee"
	InvoicePaid      InvoiceStatus = "payee"
	InvoiceUnpaid    InvoiceStatus = "impayee"
)

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoicePending, InvoiceGenerated, InvoiceSent, InvoicePaid, InvoiceUnpaid:
		return true
	}

	return false
}

// Status is the aggregate status of a process.
type Status string

const (
	StatusInProgress Status = "en_cours"
	StatusCompleted  Status = "termine"
	StatusCancelled  Status = "annule"
)

func (s Status) IsValid() bool {
	return s == StatusInProgress || s == StatusCompleted || s == StatusCancelled
}

type Priority string

const (
	PriorityLow    Priority = "basse"
	PriorityNormal Priority = "normale"
	PriorityHigh   Priority = "haute"
	PriorityUrgent Priority = "urgente"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}

	return false
}

// Voucher is the lodging voucher, the first stage.
type Voucher struct {
	Number      string         `db:"bh_numero"`
	Status      DocumentStatus `db:"bh_statut"`
	CreatedAt   time.Time      `db:"bh_date_creation"`
	ValidatedAt *time.Time     `db:"bh_date_validation"`
	ValidatedBy string         `db:"bh_valide_par"`
	Comment     string         `db:"bh_commentaire"`
}

// PurchaseOrder is the commitment to pay, opened once the voucher is validated.
type PurchaseOrder struct {
	Number      string          `db:"bc_numero"`
	Status      DocumentStatus  `db:"bc_statut"`
	CreatedAt   *time.Time      `db:"bc_date_creation"`
	ValidatedAt *time.Time      `db:"bc_date_validation"`
	ValidatedBy string          `db:"bc_valide_par"`
	Comment     string          `db:"bc_commentaire"`
	Amount      decimal.Decimal `db:"bc_montant"`
}

type Invoice struct {
	Number      string          `db:"fa_numero"`
	Status      InvoiceStatus   `db:"fa_statut"`
	GeneratedAt *time.Time      `db:"fa_date_generation"`
	SentAt      *time.Time      `db:"fa_date_envoi"`
	PaidAt      *time.Time      `db:"fa_date_paiement"`
	Amount      decimal.Decimal `db:"fa_montant"`
	AmountPaid  decimal.Decimal `db:"fa_montant_paye"`
	Comment     string          `db:"fa_commentaire"`
}

// Process follows one reservation through voucher, purchase order and invoice.
type Process struct {
	ReservationID string    `db:"reservation_id"`
	Status        Status    `db:"statut"`
	Priority      Priority  `db:"priorite"`
	StartDate     time.Time `db:"date_debut"`
	EstimatedDays int       `db:"duree_estimee"`
	Version       int       `db:"version"`
	Voucher
	PurchaseOrder
	Invoice
	model.Metadata
}
