package validators

import (
	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateUnitRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Color        string  `json:"color" validate:"omitempty,max=32"`
	DepartmentID string  `json:"department_id" validate:"required,objectid"`
	Shift        *string `json:"shift" validate:"omitempty,max=50"`
}

type UpdateUnitRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Color *string `json:"color" validate:"omitempty,max=32"`
	Shift *string `json:"shift" validate:"omitempty,max=50"`
}

func (r *CreateUnitRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid unit: %v", err)
	}
	return nil
}

func (r *CreateUnitRequest) ToModel() *models.Unit {
	departmentID, _ := primitive.ObjectIDFromHex(r.DepartmentID)
	return &models.Unit{
		Name:         r.Name,
		Color:        r.Color,
		DepartmentID: departmentID,
		Shift:        r.Shift,
	}
}

func (r *UpdateUnitRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid unit update: %v", err)
	}
	return nil
}

func (r *UpdateUnitRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Color != nil {
		updates["color"] = *r.Color
	}
	if r.Shift != nil {
		updates["shift"] = *r.Shift
	}
	return updates
}
