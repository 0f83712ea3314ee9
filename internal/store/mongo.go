package store

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/pricing"
	"backend/internal/timing"
)

const (
	pricingConfigID = "delivery_pricing"
	timingConfigID  = "order_timing"
)

type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

var _ Store = (*Mongo)(nil)

func (m *Mongo) ResolveProduct(ctx context.Context, id string) (ResolvedProduct, error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ResolvedProduct{}, ProductUnavailableError{ProductID: id}
	}

	var product models.Product
	err = m.db.Collection("products").FindOne(ctx, bson.M{
		"_id":         productID,
		"isAvailable": true,
	}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ResolvedProduct{}, ProductUnavailableError{ProductID: id}
	}
	if err != nil {
		return ResolvedProduct{}, err
	}

	var category models.Category
	err = m.db.Collection("categories").FindOne(ctx, bson.M{"_id": product.CategoryID}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// orphaned product: price it tax-exempt rather than failing checkout
		log.Printf("[STORE] category missing for product %s, applying zero GST", id)
		return ResolvedProduct{Product: product, GSTRate: 0}, nil
	}
	if err != nil {
		return ResolvedProduct{}, err
	}

	return ResolvedProduct{Product: product, GSTRate: category.GSTRate}, nil
}

// CreatePendingOrder inserts the customer and the order inside one session
// transaction, so a persistence failure never leaves a half-written order.
func (m *Mongo) CreatePendingOrder(ctx context.Context, customer models.Customer, order models.Order) (primitive.ObjectID, primitive.ObjectID, error) {
	session, err := m.db.Client().StartSession()
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	defer session.EndSession(ctx)

	var orderID, customerID primitive.ObjectID
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		res, err := m.db.Collection("customers").InsertOne(sessCtx, customer)
		if err != nil {
			return nil, err
		}
		id, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return nil, errors.New("unexpected customer insert id type")
		}
		customerID = id

		order.CustomerID = customerID
		res, err = m.db.Collection("orders").InsertOne(sessCtx, order)
		if err != nil {
			return nil, err
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			orderID = id
		}
		return nil, nil
	})
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}

	return orderID, customerID, nil
}

func (m *Mongo) GetOrder(ctx context.Context, id string) (models.Order, error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Order{}, ErrNotFound
	}

	var order models.Order
	err = m.db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (m *Mongo) GetCustomer(ctx context.Context, id primitive.ObjectID) (models.Customer, error) {
	var customer models.Customer
	err := m.db.Collection("customers").FindOne(ctx, bson.M{"_id": id}).Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Customer{}, ErrNotFound
	}
	if err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

func (m *Mongo) MarkOrderPaid(ctx context.Context, id, gatewayPaymentID string) (bool, error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrNotFound
	}

	// "status: PENDING" in the filter is the compare-and-set: a concurrent
	// verify or cancel that got there first makes this a no-op.
	res, err := m.db.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": orderID, "status": models.StatusPending},
		bson.M{"$set": bson.M{
			"status":           models.StatusPaid,
			"gatewayPaymentId": gatewayPaymentID,
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (m *Mongo) CancelPendingOrder(ctx context.Context, id string) (bool, error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// best-effort operation: an unknown id cancels nothing
		return false, nil
	}

	res, err := m.db.Collection("orders").UpdateOne(ctx,
		bson.M{
			"_id":              orderID,
			"status":           models.StatusPending,
			"gatewayPaymentId": bson.M{"$in": bson.A{nil, ""}},
		},
		bson.M{"$set": bson.M{"status": models.StatusFailed}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (m *Mongo) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := m.db.Collection("orders").UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) ListOrders(ctx context.Context, limit int64) ([]models.Order, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := m.db.Collection("orders").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (m *Mongo) ListOrdersByContact(ctx context.Context, phone, email string, limit int64) ([]models.Order, error) {
	cursor, err := m.db.Collection("customers").Find(ctx, bson.M{"phone": phone, "email": email})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return []models.Order{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(customers))
	for _, c := range customers {
		ids = append(ids, c.ID)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	orderCursor, err := m.db.Collection("orders").Find(ctx, bson.M{"customerId": bson.M{"$in": ids}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer orderCursor.Close(ctx)

	var orders []models.Order
	if err := orderCursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type pricingDoc struct {
	ID                   string `bson:"_id"`
	models.PricingConfig `bson:",inline"`
}

func (m *Mongo) PricingConfig(ctx context.Context) (models.PricingConfig, error) {
	var doc pricingDoc
	err := m.db.Collection("config").FindOne(ctx, bson.M{"_id": pricingConfigID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return pricing.Defaults, nil
	}
	if err != nil {
		return models.PricingConfig{}, err
	}
	return doc.PricingConfig, nil
}

func (m *Mongo) SetPricingConfig(ctx context.Context, cfg models.PricingConfig) error {
	_, err := m.db.Collection("config").UpdateOne(ctx,
		bson.M{"_id": pricingConfigID},
		bson.M{"$set": cfg, "$currentDate": bson.M{"updatedAt": true}},
		options.Update().SetUpsert(true),
	)
	return err
}

type timingDoc struct {
	ID                       string `bson:"_id"`
	models.OrderTimingConfig `bson:",inline"`
}

func (m *Mongo) TimingConfig(ctx context.Context) (models.OrderTimingConfig, error) {
	var doc timingDoc
	err := m.db.Collection("config").FindOne(ctx, bson.M{"_id": timingConfigID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return timing.Defaults, nil
	}
	if err != nil {
		return models.OrderTimingConfig{}, err
	}
	return timing.Normalize(doc.OrderTimingConfig), nil
}

func (m *Mongo) SetTimingConfig(ctx context.Context, cfg models.OrderTimingConfig) error {
	_, err := m.db.Collection("config").UpdateOne(ctx,
		bson.M{"_id": timingConfigID},
		bson.M{"$set": cfg, "$currentDate": bson.M{"updatedAt": true}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *Mongo) FindAdminByEmail(ctx context.Context, email string) (models.Admin, error) {
	var admin models.Admin
	err := m.db.Collection("admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Admin{}, ErrNotFound
	}
	if err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}
