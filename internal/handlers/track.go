package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"backend/internal/store"
	"backend/internal/validation"
)

type trackOrdersRequest struct {
	Phone string `json:"phone" validate:"required,inmobile"`
	Email string `json:"email" validate:"required,email"`
}

// TrackOrders lets an unauthenticated customer look up their recent orders
// by the exact contact pair they checked out with.
func TrackOrders(st store.Store, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/track"
		defer handlePanic(c, route)

		var req trackOrdersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		req.Phone = validation.NormalizePhone(req.Phone)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if err := v.Struct(req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "enter the phone number and email used at checkout")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		orders, err := st.ListOrdersByContact(ctx, req.Phone, req.Email, 30)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}
