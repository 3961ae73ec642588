package model

import "solireserve/shared/model"

const (
	TableName  = "operators"
	EntityName = "operator"

	FieldID           = "id"
	FieldName         = "nom"
	FieldOrganisation = "organisation"
	FieldEmail        = "email"
	FieldPhone        = "telephone"
	FieldActive       = "actif"
)

// Operator is a social operator referring guests and negotiating conventions.
type Operator struct {
	ID           string `db:"id"`
	Name         string `db:"nom"`
	Organisation string `db:"organisation"`
	Email        string `db:"email"`
	Phone        string `db:"telephone"`
	Active       bool   `db:"actif"`
	model.Metadata
}
