package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CategoryBakery     = "Bakery"
	CategorySweeteners = "Sweeteners"
	CategoryFoods      = "Foods"
)

// Product's description serializes as "Description": panel clients read the
// field capitalized, so its JSON name is not lowerCamel like the rest.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName   string             `bson:"productName" json:"productName"`
	Description   string             `bson:"description" json:"Description"`
	Price         float64            `bson:"price" json:"price"`
	Image         string             `bson:"image" json:"image"`
	Category      string             `bson:"category" json:"category"`
	StockQuantity int                `bson:"stockQuantity" json:"stockQuantity"`
	Status        bool               `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryBakery, CategorySweeteners, CategoryFoods:
		return true
	}
	return false
}
