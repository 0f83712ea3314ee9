package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

func patchStatus(t *testing.T, st *fakeStore, orderID string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	r := gin.New()
	r.PATCH("/admin/api/orders/:id/status", UpdateOrderStatus(st))

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPatch, "/admin/api/orders/"+orderID+"/status", bytes.NewReader(raw))
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

func TestUpdateOrderStatus(t *testing.T) {
	t.Run("valid fulfilment step is applied", func(t *testing.T) {
		st := newFakeStore()
		orderID := seedPendingOrder(st, "order_xyz789")
		order := st.orders[orderID]
		order.Status = models.StatusPaid
		st.orders[orderID] = order

		w, resp := patchStatus(t, st, orderID, map[string]interface{}{"status": "PROCESSING"})
		if w.Code != http.StatusOK || resp["success"] != true {
			t.Fatalf("status = %d, resp = %v", w.Code, resp)
		}
		if got := st.orders[orderID].Status; got != models.StatusProcessing {
			t.Errorf("stored status = %s, want PROCESSING", got)
		}
	})

	t.Run("unknown status value is rejected", func(t *testing.T) {
		st := newFakeStore()
		orderID := seedPendingOrder(st, "order_xyz789")

		w, _ := patchStatus(t, st, orderID, map[string]interface{}{"status": "SHIPPED"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
		if got := st.orders[orderID].Status; got != models.StatusPending {
			t.Errorf("order mutated: status = %s", got)
		}
	})

	t.Run("missing order is a 404", func(t *testing.T) {
		st := newFakeStore()
		w, _ := patchStatus(t, st, primitive.NewObjectID().Hex(), map[string]interface{}{"status": "DELIVERED"})
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestGetAllOrders(t *testing.T) {
	st := newFakeStore()
	seedPendingOrder(st, "order_one")
	seedPendingOrder(st, "order_two")

	w := httptest.NewRecorder()
	r := gin.New()
	r.GET("/admin/api/orders", GetAllOrders(st))
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/api/orders", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var orders []models.Order
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("got %d orders, want 2", len(orders))
	}
}
