package tariff

import "errors"

var (
	// ErrConventionNotApplicable is returned when the convention is not active or the reference date falls outside its validity window.
	ErrConventionNotApplicable = errors.New("tariff: convention is not applicable")

	// ErrInvalidTariffBase is returned when a reduction must be derived from a standard price that is zero or negative.
	ErrInvalidTariffBase = errors.New("tariff: standard price must be greater than zero")

	// ErrInvalidHeadcount is returned for per-person pricing without at least one guest.
	ErrInvalidHeadcount = errors.New("tariff: headcount must be a positive integer for per-person pricing")

	// ErrInvalidPricingAxis is returned for an axis other than per_person or per_room.
	ErrInvalidPricingAxis = errors.New("tariff: unknown pricing axis")

	// ErrInvalidMonth is returned for a month outside janvier..decembre.
	ErrInvalidMonth = errors.New("tariff: unknown month")

	ErrNegativeAmount = errors.New("tariff: amounts must not be negative")

	ErrInvalidReduction = errors.New("tariff: reduction must be between 0 and 100")

	ErrNegotiatedAboveStandard = errors.New("tariff: negotiated price is above the standard price")

	// ErrUnknownField is returned by SyncPriceAndReduction for a field it does not reconcile.
	ErrUnknownField = errors.New("tariff: field is not a price or reduction field")

	// ErrInvalidValidityWindow is returned when date_fin is before date_debut.
	ErrInvalidValidityWindow = errors.New("tariff: end date is before start date")
)
