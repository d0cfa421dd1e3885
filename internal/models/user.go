package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// User is a customer account. Login is OTP based, there is no password.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Mobile     string             `bson:"mobile" json:"mobile"`
	DOB        time.Time          `bson:"dob" json:"dob"`
	Location   string             `bson:"location" json:"location"`
	Gender     string             `bson:"gender" json:"gender"`
	OTP        string             `bson:"otp" json:"-"`
	ProfilePic string             `bson:"profile_pic,omitempty" json:"profile_pic,omitempty"`
	Status     bool               `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidGender(gender string) bool {
	switch gender {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
