package validators

import (
	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/utils"
)

// Department, rank, role and group share the same flat request shape.

type CreateDepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type UpdateDepartmentRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type CreateRankRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Level       int    `json:"level" validate:"omitempty,min=0,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type UpdateRankRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Level       *int    `json:"level" validate:"omitempty,min=0,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type CreateNamedRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

type UpdateNamedRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (r *CreateDepartmentRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid department: %v", err)
	}
	return nil
}

func (r *CreateDepartmentRequest) ToModel() *models.Department {
	return &models.Department{Name: r.Name, Description: r.Description}
}

func (r *UpdateDepartmentRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid department update: %v", err)
	}
	return nil
}

func (r *UpdateDepartmentRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	return updates
}

func (r *CreateRankRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid rank: %v", err)
	}
	return nil
}

func (r *CreateRankRequest) ToModel() *models.Rank {
	return &models.Rank{Name: r.Name, Level: r.Level, Description: r.Description}
}

func (r *UpdateRankRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid rank update: %v", err)
	}
	return nil
}

func (r *UpdateRankRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Level != nil {
		updates["level"] = *r.Level
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	return updates
}

func (r *CreateNamedRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid request: %v", err)
	}
	return nil
}

func (r *CreateNamedRequest) ToRole() *models.Role {
	return &models.Role{Name: r.Name, Description: r.Description}
}

func (r *CreateNamedRequest) ToGroup() *models.Group {
	return &models.Group{Name: r.Name, Description: r.Description}
}

func (r *UpdateNamedRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid request: %v", err)
	}
	return nil
}

func (r *UpdateNamedRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	return updates
}
