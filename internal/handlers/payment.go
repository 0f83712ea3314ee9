package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"backend/internal/config"
	"backend/internal/gateway"
	"backend/internal/models"
	"backend/internal/notifier"
	"backend/internal/store"
	"backend/internal/validation"
)

type verifyPaymentRequest struct {
	GatewayOrderID   string `json:"gatewayOrderId" validate:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" validate:"required"`
	GatewaySignature string `json:"gatewaySignature" validate:"required,min=64"`
	InternalOrderID  string `json:"internalOrderId" validate:"required"`
}

// VerifyPayment proves the payment confirmation came from the gateway and
// transitions the order PENDING -> PAID exactly once. Safe to retry: an
// already-paid order returns the same success response without re-notifying.
func VerifyPayment(st store.Store, queue notifier.Queue, v *validatorv10.Validate, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/verify"
		defer handlePanic(c, route)

		var req verifyPaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		if cfg.RazorpayKeySecret == "" {
			respondWithError(c, http.StatusInternalServerError, route, "server misconfigured: missing payment gateway secret")
			return
		}

		// the signature check runs before any order lookup so a bad
		// signature fails identically whether or not the order exists
		if !gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, cfg.RazorpayKeySecret) {
			respondWithError(c, http.StatusBadRequest, route, "invalid payment signature, payment verification failed")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		order, err := st.GetOrder(ctx, req.InternalOrderID)
		if errors.Is(err, store.ErrNotFound) {
			respondWithError(c, http.StatusNotFound, route, "order not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if order.GatewayOrderID != req.GatewayOrderID {
			respondWithError(c, http.StatusBadRequest, route, "order does not match the presented gateway order")
			return
		}

		if order.Status == models.StatusPaid {
			// idempotent retry: already settled, nothing to mutate or resend
			respondPaid(c, st, ctx, order)
			return
		}
		if order.Status != models.StatusPending {
			respondWithError(c, http.StatusConflict, route, "order is not awaiting payment")
			return
		}

		updated, err := st.MarkOrderPaid(ctx, req.InternalOrderID, req.GatewayPaymentID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if !updated {
			// lost a race: re-read and answer from the current state
			order, err = st.GetOrder(ctx, req.InternalOrderID)
			if err == nil && order.Status == models.StatusPaid {
				respondPaid(c, st, ctx, order)
				return
			}
			respondWithError(c, http.StatusConflict, route, "order is not awaiting payment")
			return
		}

		order.Status = models.StatusPaid
		order.GatewayPaymentID = req.GatewayPaymentID

		// fire and forget: a dropped or failed notification never affects
		// the response or rolls back the transition
		queue.Enqueue(req.InternalOrderID)

		log.Printf("[%s] order %s marked PAID, payment %s", route, req.InternalOrderID, req.GatewayPaymentID)
		respondPaid(c, st, ctx, order)
	}
}

func respondPaid(c *gin.Context, st store.Store, ctx context.Context, order models.Order) {
	resp := gin.H{
		"success": true,
		"orderId": order.ID.Hex(),
		"status":  order.Status,
	}

	if customer, err := st.GetCustomer(ctx, order.CustomerID); err == nil {
		resp["customer"] = gin.H{
			"name":  customer.Name,
			"email": customer.Email,
			"phone": customer.Phone,
		}
	} else {
		log.Printf("[POST /checkout/verify] customer snapshot unavailable for order %s: %v", order.ID.Hex(), err)
	}

	c.JSON(http.StatusOK, resp)
}

type cancelOrderRequest struct {
	InternalOrderID string `json:"internalOrderId" validate:"required"`
}

// CancelOrder is the best-effort companion to verification: it flips
// PENDING -> FAILED only while no gateway payment id is attached, so a late
// cancellation can never override a real payment. Always acks.
func CancelOrder(st store.Store, v *validatorv10.Validate) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/cancel-order"
		defer handlePanic(c, route)

		var req cancelOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cancelled, err := st.CancelPendingOrder(ctx, req.InternalOrderID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if cancelled {
			log.Printf("[%s] order %s marked FAILED", route, req.InternalOrderID)
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
