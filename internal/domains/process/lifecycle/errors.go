package lifecycle

import "errors"

var (
	// ErrInvalidStay is returned by Initiate when the reservation has no nights.
	ErrInvalidStay = errors.New("lifecycle: reservation must last at least one night")

	// ErrStageOutOfOrder is returned when a stage changes before the previous one is validated,
	// or after the next one has already moved.
	ErrStageOutOfOrder = errors.New("lifecycle: stage out of order")

	// ErrInvalidTransition is returned for a status the stage cannot move to from its current status.
	ErrInvalidTransition = errors.New("lifecycle: invalid transition")

	ErrUnknownStage = errors.New("lifecycle: unknown stage")

	// ErrOverpaymentRejected is returned when the amount paid exceeds the invoice amount.
	ErrOverpaymentRejected = errors.New("lifecycle: amount paid exceeds invoice amount")

	// ErrPartialPayment is returned when an invoice is marked paid with less than its amount.
	ErrPartialPayment = errors.New("lifecycle: partial payment must be recorded as impayee")

	ErrNegativeAmount = errors.New("lifecycle: amounts must not be negative")

	ErrInvalidPriority = errors.New("lifecycle: unknown priority")
)
