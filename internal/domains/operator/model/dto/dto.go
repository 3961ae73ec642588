package dto

import (
	"solireserve/internal/domains/operator/model"
	"solireserve/shared"
	gDto "solireserve/shared/dto"
	gModel "solireserve/shared/model"
	"solireserve/shared/timezone"

	"github.com/google/uuid"
)

type CreateOperatorRequest struct {
	Name         string `json:"nom"          validate:"required,max=150"`
	Organisation string `json:"organisation" validate:"required,max=150"`
	Email        string `json:"email"        validate:"omitempty,email"`
	Phone        string `json:"telephone"    validate:"omitempty,max=30"`
	Active       *bool  `json:"actif"        validate:"omitempty"`
}

func (c *CreateOperatorRequest) ToModel(user string) model.Operator {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Operator{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Organisation: c.Organisation,
		Email:        c.Email,
		Phone:        c.Phone,
		Active:       active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateOperatorRequest struct {
	Name         string `db:"nom"          json:"nom"          validate:"omitempty,max=150"`
	Organisation string `db:"organisation" json:"organisation" validate:"omitempty,max=150"`
	Email        string `db:"email"        json:"email"        validate:"omitempty,email"`
	Phone        string `db:"telephone"    json:"telephone"    validate:"omitempty,max=30"`
	Active       *bool  `db:"actif"        json:"actif"        validate:"omitempty"`
}

type OperatorResponse struct {
	ID           string `json:"id"`
	Name         string `json:"nom"`
	Organisation string `json:"organisation"`
	Email        string `json:"email"`
	Phone        string `json:"telephone"`
	Active       bool   `json:"actif"`
	gDto.Metadata
}

func (o *OperatorResponse) FromModel(model model.Operator) {
	o.ID = model.ID
	o.Name = model.Name
	o.Organisation = model.Organisation
	o.Email = model.Email
	o.Phone = model.Phone
	o.Active = model.Active
	o.Metadata.FromModel(model.Metadata)
}

type GetOperatorsResponse struct {
	Operators []OperatorResponse `json:"operators"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (o *GetOperatorsResponse) FromModels(models []model.Operator, totalData, limit int) {
	o.TotalData = totalData
	o.TotalPage = shared.CalculateTotalPage(totalData, limit)

	o.Operators = make([]OperatorResponse, len(models))
	for i, mod := range models {
		o.Operators[i].FromModel(mod)
	}
}
