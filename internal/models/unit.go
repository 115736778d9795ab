package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unit is an organizational sub-group of a department that can be placed
// on or off duty. At most one unit per department may be active at a time.
type Unit struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" validate:"required"`
	Color        string             `json:"color" bson:"color"`
	DepartmentID primitive.ObjectID `json:"department_id" bson:"department_id" validate:"required"`
	Shift        *string            `json:"shift" bson:"shift"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	ActivatedAt  *time.Time         `json:"activated_at" bson:"activated_at"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// SweepResult reports what a duty sweep actually managed to deactivate.
type SweepResult struct {
	DeactivatedCount int         `json:"deactivated_count"`
	DeactivatedUnits []SweptUnit `json:"deactivated_units"`
	FailedCount      int         `json:"failed_count,omitempty"`
	SweptAt          time.Time   `json:"swept_at"`
}

type SweptUnit struct {
	UnitID      primitive.ObjectID `json:"unit_id"`
	Name        string             `json:"name"`
	ActivatedAt time.Time          `json:"activated_at"`
}
