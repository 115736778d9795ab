package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Station struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CallSign  string             `json:"call_sign" bson:"call_sign,omitempty"`
	PlaceID   string             `json:"place_id" bson:"place_id,omitempty"`
	Latitude  *float64           `json:"latitude" bson:"latitude"`
	Longitude *float64           `json:"longitude" bson:"longitude"`
	Phone     string             `json:"phone" bson:"phone,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// StationDescriptor is an inline bundle of station attributes submitted in
// place of a station id. It is only ever resolved against existing stations,
// never used to create one.
type StationDescriptor struct {
	Name      string   `json:"name"`
	PlaceID   string   `json:"place_id"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Phone     string   `json:"phone"`
}
