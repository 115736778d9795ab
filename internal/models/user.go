package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleDispatcher UserRole = "dispatcher"
	UserRoleCitizen    UserRole = "citizen"
)

type User struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName     string             `json:"first_name" bson:"first_name" validate:"required"`
	LastName      string             `json:"last_name" bson:"last_name" validate:"required"`
	Email         string             `json:"email" bson:"email" validate:"required,email"`
	Phone         string             `json:"phone" bson:"phone" validate:"required"`
	PasswordHash  string             `json:"-" bson:"password_hash"`
	Role          UserRole           `json:"role" bson:"role"`
	PhoneVerified bool               `json:"phone_verified" bson:"phone_verified"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
