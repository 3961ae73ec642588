// Package lifecycle moves a reservation process through its voucher, purchase order
// and invoice stages. It never advances a stage on its own: expiry and payment are
// applied only through Advance.
package lifecycle

import (
	"fmt"
	"time"

	"solireserve/internal/domains/process/model"

	"github.com/shopspring/decimal"
)

// Reservation is the part of a reservation a process is opened from.
type Reservation struct {
	ID     string
	Nights int
	// Price is the effective nightly price.
	Price    decimal.Decimal
	Priority model.Priority
}

// Transition asks a stage to move to Status. AmountPaid is only read for the invoice.
type Transition struct {
	Stage      model.Stage
	Status     string
	Actor      string
	AmountPaid *decimal.Decimal
	Comment    string
}

var documentEdges = map[model.DocumentStatus][]model.DocumentStatus{
	model.DocumentPending:   {model.DocumentValidated, model.DocumentRefused},
	model.DocumentValidated: {model.DocumentExpired},
}

var invoiceEdges = map[model.InvoiceStatus][]model.InvoiceStatus{
	model.InvoicePending:   {model.InvoiceGenerated},
	model.InvoiceGenerated: {model.InvoiceSent},
	model.InvoiceSent:      {model.InvoicePaid, model.InvoiceUnpaid},
	model.InvoiceUnpaid:    {model.InvoiceSent},
}

type Lifecycle struct {
	numbers NumberGenerator
}

func New(numbers NumberGenerator) *Lifecycle {
	return &Lifecycle{numbers: numbers}
}

// Initiate opens the process of a reservation: a pending voucher with its number,
// and order and invoice amounts of Price * Nights left pending.
func (l *Lifecycle) Initiate(res Reservation, now time.Time) (model.Process, error) {
	if res.Nights <= 0 {
		return model.Process{}, fmt.Errorf("%w: got %d nights", ErrInvalidStay, res.Nights)
	}

	if res.Price.IsNegative() {
		return model.Process{}, fmt.Errorf("%w: nightly price %s", ErrNegativeAmount, res.Price)
	}

	priority := res.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}

	if !priority.IsValid() {
		return model.Process{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}

	total := res.Price.Mul(decimal.NewFromInt(int64(res.Nights)))

	process := model.Process{
		ReservationID: res.ID,
		Priority:      priority,
		StartDate:     now,
		EstimatedDays: res.Nights,
		Voucher: model.Voucher{
			Number:    l.numbers.Next(model.StageVoucher),
			Status:    model.DocumentPending,
			CreatedAt: now,
		},
		PurchaseOrder: model.PurchaseOrder{
			Status: model.DocumentPending,
			Amount: total,
		},
		Invoice: model.Invoice{
			Status:     model.InvoicePending,
			Amount:     total,
			AmountPaid: decimal.Zero,
		},
	}
	process.Status = AggregateStatus(process)

	return process, nil
}

// Advance applies one transition and returns the updated process with its aggregate status.
// The input process is left untouched when an error is returned.
func (l *Lifecycle) Advance(process model.Process, tr Transition, now time.Time) (model.Process, error) {
	var err error

	switch tr.Stage {
	case model.StageVoucher:
		err = l.advanceVoucher(&process, tr, now)
	case model.StagePurchaseOrder:
		err = l.advanceOrder(&process, tr, now)
	case model.StageInvoice:
		err = advanceInvoice(&process, tr, now)
	default:
		return process, fmt.Errorf("%w: %q", ErrUnknownStage, tr.Stage)
	}

	if err != nil {
		return process, err
	}

	process.Status = AggregateStatus(process)

	return process, nil
}

func (l *Lifecycle) advanceVoucher(p *model.Process, tr Transition, now time.Time) error {
	if p.PurchaseOrder.Status != model.DocumentPending {
		return outOfOrder(tr.Stage, "the purchase order has already moved")
	}

	next, err := documentTransition(tr.Stage, p.Voucher.Status, tr.Status)
	if err != nil {
		return err
	}

	p.Voucher.Status = next
	p.Voucher.Comment = commentOr(tr.Comment, p.Voucher.Comment)

	if next == model.DocumentValidated || next == model.DocumentRefused {
		p.Voucher.ValidatedAt = &now
		p.Voucher.ValidatedBy = tr.Actor
	}

	if next == model.DocumentValidated && p.PurchaseOrder.Number == "" {
		p.PurchaseOrder.Number = l.numbers.Next(model.StagePurchaseOrder)
		p.PurchaseOrder.CreatedAt = &now
	}

	return nil
}

func (l *Lifecycle) advanceOrder(p *model.Process, tr Transition, now time.Time) error {
	if p.Voucher.Status != model.DocumentValidated {
		return outOfOrder(tr.Stage, "the voucher is not validated")
	}

	if p.Invoice.Status != model.InvoicePending {
		return outOfOrder(tr.Stage, "the invoice has already moved")
	}

	next, err := documentTransition(tr.Stage, p.PurchaseOrder.Status, tr.Status)
	if err != nil {
		return err
	}

	p.PurchaseOrder.Status = next
	p.PurchaseOrder.Comment = commentOr(tr.Comment, p.PurchaseOrder.Comment)

	if next == model.DocumentValidated || next == model.DocumentRefused {
		p.PurchaseOrder.ValidatedAt = &now
		p.PurchaseOrder.ValidatedBy = tr.Actor
	}

	if next == model.DocumentValidated && p.Invoice.Number == "" {
		p.Invoice.Number = l.numbers.Next(model.StageInvoice)
	}

	return nil
}

func advanceInvoice(p *model.Process, tr Transition, now time.Time) error {
	if p.Voucher.Status != model.DocumentValidated {
		return outOfOrder(tr.Stage, "the voucher is not validated")
	}

	if p.PurchaseOrder.Status != model.DocumentValidated {
		return outOfOrder(tr.Stage, "the purchase order is not validated")
	}

	next := model.InvoiceStatus(tr.Status)
	if !next.IsValid() || !allowed(invoiceEdges[p.Invoice.Status], next) {
		return fmt.Errorf("%w: %s cannot go from %s to %s", ErrInvalidTransition, tr.Stage, p.Invoice.Status, tr.Status)
	}

	paid, err := amountPaid(p.Invoice, next, tr.AmountPaid)
	if err != nil {
		return err
	}

	p.Invoice.Status = next
	p.Invoice.AmountPaid = paid
	p.Invoice.Comment = commentOr(tr.Comment, p.Invoice.Comment)

	switch next {
	case model.InvoiceGenerated:
		p.Invoice.GeneratedAt = &now
	case model.InvoiceSent:
		p.Invoice.SentAt = &now
	case model.InvoicePaid:
		p.Invoice.PaidAt = &now
	}

	return nil
}

// amountPaid resolves the paid amount after moving the invoice to next.
// Paying without an amount settles the invoice in full.
func amountPaid(inv model.Invoice, next model.InvoiceStatus, supplied *decimal.Decimal) (decimal.Decimal, error) {
	if supplied == nil {
		if next == model.InvoicePaid {
			return inv.Amount, nil
		}

		return inv.AmountPaid, nil
	}

	amount := *supplied

	if amount.IsNegative() {
		return inv.AmountPaid, fmt.Errorf("%w: amount paid %s", ErrNegativeAmount, amount)
	}

	if amount.GreaterThan(inv.Amount) {
		return inv.AmountPaid, fmt.Errorf("%w: %s > %s", ErrOverpaymentRejected, amount, inv.Amount)
	}

	if next == model.InvoicePaid && amount.LessThan(inv.Amount) {
		return inv.AmountPaid, fmt.Errorf("%w: %s < %s", ErrPartialPayment, amount, inv.Amount)
	}

	return amount, nil
}

func documentTransition(stage model.Stage, current model.DocumentStatus, requested string) (model.DocumentStatus, error) {
	next := model.DocumentStatus(requested)
	if !next.IsValid() || !allowed(documentEdges[current], next) {
		return current, fmt.Errorf("%w: %s cannot go from %s to %s", ErrInvalidTransition, stage, current, requested)
	}

	return next, nil
}

func allowed[S comparable](edges []S, next S) bool {
	for _, edge := range edges {
		if edge == next {
			return true
		}
	}

	return false
}

func outOfOrder(stage model.Stage, reason string) error {
	return fmt.Errorf("%w: %s cannot change because %s", ErrStageOutOfOrder, stage, reason)
}

func commentOr(comment, current string) string {
	if comment == "" {
		return current
	}

	return comment
}

// AggregateStatus derives the process status from its stages: termine once the invoice is
// paid, annule once the voucher or the order is refused or expired, en_cours otherwise.
func AggregateStatus(p model.Process) model.Status {
	switch {
	case p.Invoice.Status == model.InvoicePaid:
		return model.StatusCompleted
	case p.Voucher.Status.IsDead() || p.PurchaseOrder.Status.IsDead():
		return model.StatusCancelled
	default:
		return model.StatusInProgress
	}
}

// IsSettled reports an invoice paid in full.
func IsSettled(p model.Process) bool {
	return p.Invoice.Status == model.InvoicePaid && p.Invoice.AmountPaid.Equal(p.Invoice.Amount)
}

// CurrentStage returns the earliest stage that still expects a decision.
func CurrentStage(p model.Process) model.Stage {
	switch {
	case p.Voucher.Status != model.DocumentValidated:
		return model.StageVoucher
	case p.PurchaseOrder.Status != model.DocumentValidated:
		return model.StagePurchaseOrder
	default:
		return model.StageInvoice
	}
}
