package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OperationsDepartmentName is the department whose units run duty cycles.
const OperationsDepartmentName = "operations"

type Department struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name" validate:"required"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}
