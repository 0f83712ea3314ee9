package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/gateway"
	"backend/internal/models"
	"backend/internal/pricing"
	"backend/internal/store"
	"backend/internal/timing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errGatewayDown = errors.New("gateway unreachable")

// fakeStore is an in-memory Store for handler tests, in the same spirit as
// the hand-written driver mocks used elsewhere in the tree.
type fakeStore struct {
	mu        sync.Mutex
	products  map[string]store.ResolvedProduct
	orders    map[string]models.Order
	customers map[string]models.Customer
	admins    map[string]models.Admin
	pricing   *models.PricingConfig
	timing    *models.OrderTimingConfig

	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  map[string]store.ResolvedProduct{},
		orders:    map[string]models.Order{},
		customers: map[string]models.Customer{},
		admins:    map[string]models.Admin{},
	}
}

func (f *fakeStore) ResolveProduct(_ context.Context, id string) (store.ResolvedProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	resolved, ok := f.products[id]
	if !ok {
		return store.ResolvedProduct{}, store.ProductUnavailableError{ProductID: id}
	}
	return resolved, nil
}

func (f *fakeStore) CreatePendingOrder(_ context.Context, customer models.Customer, order models.Order) (primitive.ObjectID, primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return primitive.NilObjectID, primitive.NilObjectID, f.createErr
	}
	customer.ID = primitive.NewObjectID()
	order.ID = primitive.NewObjectID()
	order.CustomerID = customer.ID
	f.customers[customer.ID.Hex()] = customer
	f.orders[order.ID.Hex()] = order
	return order.ID, customer.ID, nil
}

func (f *fakeStore) GetOrder(_ context.Context, id string) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return models.Order{}, store.ErrNotFound
	}
	return order, nil
}

func (f *fakeStore) GetCustomer(_ context.Context, id primitive.ObjectID) (models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	customer, ok := f.customers[id.Hex()]
	if !ok {
		return models.Customer{}, store.ErrNotFound
	}
	return customer, nil
}

func (f *fakeStore) MarkOrderPaid(_ context.Context, id, paymentID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok || order.Status != models.StatusPending {
		return false, nil
	}
	order.Status = models.StatusPaid
	order.GatewayPaymentID = paymentID
	f.orders[id] = order
	return true, nil
}

func (f *fakeStore) CancelPendingOrder(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok || order.Status != models.StatusPending || order.GatewayPaymentID != "" {
		return false, nil
	}
	order.Status = models.StatusFailed
	f.orders[id] = order
	return true, nil
}

func (f *fakeStore) UpdateOrderStatus(_ context.Context, id string, status models.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return store.ErrNotFound
	}
	order.Status = status
	f.orders[id] = order
	return nil
}

func (f *fakeStore) ListOrders(_ context.Context, limit int64) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	orders := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		orders = append(orders, o)
	}
	return orders, nil
}

func (f *fakeStore) ListOrdersByContact(_ context.Context, phone, email string, limit int64) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []models.Order
	for _, o := range f.orders {
		customer, ok := f.customers[o.CustomerID.Hex()]
		if ok && customer.Phone == phone && customer.Email == email {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (f *fakeStore) PricingConfig(_ context.Context) (models.PricingConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pricing == nil {
		return pricing.Defaults, nil
	}
	return *f.pricing, nil
}

func (f *fakeStore) SetPricingConfig(_ context.Context, cfg models.PricingConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pricing = &cfg
	return nil
}

func (f *fakeStore) TimingConfig(_ context.Context) (models.OrderTimingConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timing == nil {
		return timing.Defaults, nil
	}
	return *f.timing, nil
}

func (f *fakeStore) SetTimingConfig(_ context.Context, cfg models.OrderTimingConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.timing = &cfg
	return nil
}

func (f *fakeStore) FindAdminByEmail(_ context.Context, email string) (models.Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	admin, ok := f.admins[email]
	if !ok {
		return models.Admin{}, store.ErrNotFound
	}
	return admin, nil
}

var _ store.Store = (*fakeStore)(nil)

// fakeGateway records the last order it was asked to open.
type fakeGateway struct {
	mu         sync.Mutex
	orderID    string
	err        error
	lastAmount int64
	calls      int
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (gateway.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.lastAmount = amountPaise
	if g.err != nil {
		return gateway.Order{}, g.err
	}
	id := g.orderID
	if id == "" {
		id = "order_fake123"
	}
	return gateway.Order{ID: id, AmountPaise: amountPaise, Currency: currency}, nil
}

// fakeQueue accepts every job and remembers the order ids.
type fakeQueue struct {
	mu  sync.Mutex
	ids []string
}

func (q *fakeQueue) Enqueue(orderID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.ids = append(q.ids, orderID)
	return true
}

func (q *fakeQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ids)
}

func doJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	r := gin.New()
	switch method {
	case http.MethodPost:
		r.POST(path, handler)
	case http.MethodPut:
		r.PUT(path, handler)
	case http.MethodPatch:
		r.PATCH(path, handler)
	default:
		r.GET(path, handler)
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
		}
	}
	return w, parsed
}
