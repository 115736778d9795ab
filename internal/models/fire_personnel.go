package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FirePersonnel struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	FirstName   string              `json:"first_name" bson:"first_name" validate:"required"`
	LastName    string              `json:"last_name" bson:"last_name" validate:"required"`
	Email       string              `json:"email" bson:"email,omitempty"`
	Phone       string              `json:"phone" bson:"phone" validate:"required"`
	BadgeNumber string              `json:"badge_number" bson:"badge_number,omitempty"`
	RankID      *primitive.ObjectID `json:"rank_id" bson:"rank_id"`
	RoleID      *primitive.ObjectID `json:"role_id" bson:"role_id"`
	GroupID     *primitive.ObjectID `json:"group_id" bson:"group_id"`
	StationID   *primitive.ObjectID `json:"station_id" bson:"station_id"`
	UnitID      *primitive.ObjectID `json:"unit_id" bson:"unit_id"`
	OnDuty      bool                `json:"on_duty" bson:"on_duty"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}

func (p *FirePersonnel) FullName() string {
	return p.FirstName + " " + p.LastName
}
