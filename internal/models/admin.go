package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles accepted on admin accounts.
const (
	RoleSuperadmin = "Superadmin"
	RoleAdmin      = "Admin"
	RoleUser       = "User"
)

type Admin struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	Role       string             `bson:"role" json:"role"`
	ProfilePic string             `bson:"profile_pic,omitempty" json:"profile_pic,omitempty"`
	Status     bool               `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleSuperadmin, RoleAdmin, RoleUser:
		return true
	}
	return false
}
