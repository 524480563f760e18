package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserTypeUser  = "user"
	UserTypeAdmin = "admin"
)

type User struct {
	Id        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	Type      string             `bson:"type,omitempty" json:"type,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

func (u User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

// UserSummary is the part of a user exposed next to their orders.
type UserSummary struct {
	Id    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}
