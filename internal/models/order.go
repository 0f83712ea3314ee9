package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the settlement lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusPaid       OrderStatus = "PAID"
	StatusFailed     OrderStatus = "FAILED"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusRefunded   OrderStatus = "REFUNDED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusFailed, StatusProcessing, StatusDelivered, StatusRefunded:
		return true
	}
	return false
}

// OrderItem is a catalog line resolved at checkout. Price and tax shares
// are frozen in paise so later catalog edits cannot change a placed order.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	Name        string             `bson:"name" json:"name"`
	PricePaise  int64              `bson:"pricePaise" json:"pricePaise"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	WeightGrams int                `bson:"weightGrams" json:"weightGrams"`
	GSTRate     int64              `bson:"gstRate" json:"gstRate"`
	CGSTPaise   int64              `bson:"cgstPaise" json:"cgstPaise"`
	SGSTPaise   int64              `bson:"sgstPaise" json:"sgstPaise"`
}

// Order defines the persisted order document. All amounts are paise.
type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GatewayOrderID   string             `bson:"gatewayOrderId" json:"gatewayOrderId"`
	GatewayPaymentID string             `bson:"gatewayPaymentId,omitempty" json:"gatewayPaymentId,omitempty"`
	Status           OrderStatus        `bson:"status" json:"status"`
	SubtotalPaise    int64              `bson:"subtotalPaise" json:"subtotalPaise"`
	CGSTTotalPaise   int64              `bson:"cgstTotalPaise" json:"cgstTotalPaise"`
	SGSTTotalPaise   int64              `bson:"sgstTotalPaise" json:"sgstTotalPaise"`
	DeliveryPaise    int64              `bson:"deliveryPaise" json:"deliveryPaise"`
	TotalPaise       int64              `bson:"totalPaise" json:"totalPaise"`
	AddressLine      string             `bson:"addressLine" json:"addressLine"`
	City             string             `bson:"city" json:"city"`
	State            string             `bson:"state" json:"state"`
	Pincode          string             `bson:"pincode" json:"pincode"`
	CustomerID       primitive.ObjectID `bson:"customerId" json:"customerId"`
	Items            []OrderItem        `bson:"items" json:"items"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
