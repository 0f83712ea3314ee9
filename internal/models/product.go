package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Price is whole rupees; conversion to paise
// happens only when an order is priced.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Price        int64              `bson:"price" json:"price"`
	WeightGrams  int                `bson:"weightGrams" json:"weightGrams"`
	Badge        string             `bson:"badge,omitempty" json:"badge,omitempty"`
	FreeDelivery bool               `bson:"freeDelivery" json:"freeDelivery"`
	IsAvailable  bool               `bson:"isAvailable" json:"isAvailable"`
	CategoryID   primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	ImagePath    string             `bson:"imagePath,omitempty" json:"imagePath,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
