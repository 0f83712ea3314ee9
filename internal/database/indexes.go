package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	gatewayOrderIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "gatewayOrderId", Value: 1}},
		Options: options.Index().
			SetName("gatewayOrderId_unique").
			SetUnique(true),
	}
	customerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "customerId", Value: 1}},
		Options: options.Index().SetName("customerId_index"),
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{gatewayOrderIndex, customerIndex})
	if err != nil {
		log.Println("EnsureOrderIndexes: order index error:", err)
		return err
	}
	return nil
}

func EnsureCustomerIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// the order-tracking lookup filters on both fields
	contactIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "phone", Value: 1}, {Key: "email", Value: 1}},
		Options: options.Index().SetName("contact_index"),
	}

	log.Println("EnsureCustomerIndexes: creating contact_index")
	_, err := db.Collection("customers").Indexes().CreateOne(ctx, contactIndex)
	if err != nil {
		log.Println("EnsureCustomerIndexes: contact index error:", err)
		return err
	}
	return nil
}

func EnsureAdminIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureAdminIndexes: creating email_unique index")
	_, err := db.Collection("admins").Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureAdminIndexes: email index error:", err)
		return err
	}
	return nil
}
