package validators

import (
	"firewatch/internal/errs"
	"firewatch/internal/models"
	"firewatch/internal/utils"
)

type CreateStationRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=100"`
	CallSign  string   `json:"call_sign" validate:"omitempty,max=20"`
	PlaceID   string   `json:"place_id" validate:"omitempty,max=255"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	Phone     string   `json:"phone" validate:"omitempty,phone"`
}

type UpdateStationRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=2,max=100"`
	CallSign  *string  `json:"call_sign" validate:"omitempty,max=20"`
	PlaceID   *string  `json:"place_id" validate:"omitempty,max=255"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	Phone     *string  `json:"phone" validate:"omitempty,phone"`
}

func (r *CreateStationRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid station: %v", err)
	}
	// Coordinates only make sense as a pair.
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return errs.Validationf("latitude and longitude must be supplied together")
	}
	return nil
}

func (r *CreateStationRequest) ToModel() *models.Station {
	return &models.Station{
		Name:      r.Name,
		CallSign:  r.CallSign,
		PlaceID:   r.PlaceID,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Phone:     r.Phone,
	}
}

func (r *UpdateStationRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return errs.Validationf("invalid station update: %v", err)
	}
	return nil
}

func (r *UpdateStationRequest) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.CallSign != nil {
		updates["call_sign"] = *r.CallSign
	}
	if r.PlaceID != nil {
		updates["place_id"] = *r.PlaceID
	}
	if r.Latitude != nil {
		updates["latitude"] = *r.Latitude
	}
	if r.Longitude != nil {
		updates["longitude"] = *r.Longitude
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	return updates
}
