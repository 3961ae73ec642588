package model

import "solireserve/shared/model"

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID         = "id"
	FieldName       = "nom"
	FieldAddress    = "adresse"
	FieldCity       = "ville"
	FieldPostalCode = "code_postal"
	FieldPhone      = "telephone"
	FieldEmail      = "email"
	FieldStars      = "etoiles"
	FieldActive     = "actif"
)

type Hotel struct {
	ID         string `db:"id"`
	Name       string `db:"nom"`
	Address    string `db:"adresse"`
	City       string `db:"ville"`
	PostalCode string `db:"code_postal"`
	Phone      string `db:"telephone"`
	Email      string `db:"email"`
	Stars      int    `db:"etoiles"`
	Active     bool   `db:"actif"`
	model.Metadata
}
