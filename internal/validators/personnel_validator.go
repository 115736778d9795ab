package validators

import (
	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreatePersonnelRequest struct {
	FirstName   string  `json:"first_name" validate:"required,min=2,max=50"`
	LastName    string  `json:"last_name" validate:"required,min=2,max=50"`
	Email       string  `json:"email" validate:"omitempty,email"`
	Phone       string  `json:"phone" validate:"required"`
	BadgeNumber string  `json:"badge_number" validate:"omitempty,max=20"`
	RankID      *string `json:"rank_id" validate:"omitempty,objectid"`
	RoleID      *string `json:"role_id" validate:"omitempty,objectid"`
	GroupID     *string `json:"group_id" validate:"omitempty,objectid"`
	StationID   *string `json:"station_id" validate:"omitempty,objectid"`
	UnitID      *string `json:"unit_id" validate:"omitempty,objectid"`
}

type UpdatePersonnelRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=2,max=50"`
	LastName    *string `json:"last_name" validate:"omitempty,min=2,max=50"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone" validate:"omitempty"`
	BadgeNumber *string `json:"badge_number" validate:"omitempty,max=20"`
	RankID      *string `json:"rank_id" validate:"omitempty,objectid"`
	RoleID      *string `json:"role_id" validate:"omitempty,objectid"`
	GroupID     *string `json:"group_id" validate:"omitempty,objectid"`
	StationID   *string `json:"station_id" validate:"omitempty,objectid"`
	UnitID      *string `json:"unit_id" validate:"omitempty,objectid"`
	OnDuty      *bool   `json:"on_duty"`
}

func (r *CreatePersonnelRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid personnel: %v", err)
	}
	return nil
}

func (r *CreatePersonnelRequest) ToModel() *models.FirePersonnel {
	return &models.FirePersonnel{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		BadgeNumber: r.BadgeNumber,
		RankID:      hexToObjectID(r.RankID),
		RoleID:      hexToObjectID(r.RoleID),
		GroupID:     hexToObjectID(r.GroupID),
		StationID:   hexToObjectID(r.StationID),
		UnitID:      hexToObjectID(r.UnitID),
	}
}

func (r *UpdatePersonnelRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid personnel update: %v", err)
	}
	return nil
}

func (r *UpdatePersonnelRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.FirstName != nil {
		updates["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		updates["last_name"] = *r.LastName
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	if r.BadgeNumber != nil {
		updates["badge_number"] = *r.BadgeNumber
	}
	if r.RankID != nil {
		updates["rank_id"] = hexToObjectID(r.RankID)
	}
	if r.RoleID != nil {
		updates["role_id"] = hexToObjectID(r.RoleID)
	}
	if r.GroupID != nil {
		updates["group_id"] = hexToObjectID(r.GroupID)
	}
	if r.StationID != nil {
		updates["station_id"] = hexToObjectID(r.StationID)
	}
	if r.UnitID != nil {
		updates["unit_id"] = hexToObjectID(r.UnitID)
	}
	if r.OnDuty != nil {
		updates["on_duty"] = *r.OnDuty
	}
	return updates
}

func hexToObjectID(hex *string) *primitive.ObjectID {
	if hex == nil || *hex == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(*hex)
	if err != nil {
		return nil
	}
	return &id
}
