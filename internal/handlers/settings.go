package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/store"
	"backend/internal/timing"
)

// GetDeliveryPricing serves the current fee schedule; checkout clients use
// it for display only, the server recomputes on every order.
func GetDeliveryPricing(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /config/delivery"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cfg, err := st.PricingConfig(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}

type updatePricingRequest struct {
	FreeDeliveryThreshold    *int64 `json:"freeDeliveryThreshold" binding:"required"`
	ReducedDeliveryThreshold *int64 `json:"reducedDeliveryThreshold" binding:"required"`
	ReducedDeliveryFee       *int64 `json:"reducedDeliveryFee" binding:"required"`
	BaseDeliveryFee          *int64 `json:"baseDeliveryFee" binding:"required"`
}

func UpdateDeliveryPricing(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/config/delivery"
		defer handlePanic(c, route)

		var req updatePricingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		cfg := models.PricingConfig{
			FreeDeliveryThreshold:    *req.FreeDeliveryThreshold,
			ReducedDeliveryThreshold: *req.ReducedDeliveryThreshold,
			ReducedDeliveryFee:       *req.ReducedDeliveryFee,
			BaseDeliveryFee:          *req.BaseDeliveryFee,
		}

		if cfg.FreeDeliveryThreshold < 0 || cfg.ReducedDeliveryThreshold < 0 ||
			cfg.ReducedDeliveryFee < 0 || cfg.BaseDeliveryFee < 0 {
			respondWithError(c, http.StatusBadRequest, route, "all values must be non-negative")
			return
		}
		if cfg.ReducedDeliveryThreshold > cfg.FreeDeliveryThreshold {
			respondWithError(c, http.StatusBadRequest, route, "reduced-delivery threshold cannot be greater than the free-delivery threshold")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := st.SetPricingConfig(ctx, cfg); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func GetOrderTiming(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/config/timing"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cfg, err := st.TimingConfig(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"startHour": cfg.StartHour,
			"endHour":   cfg.EndHour,
			"window":    timing.FormatWindow(cfg),
		})
	}
}

type updateTimingRequest struct {
	StartHour *int `json:"startHour" binding:"required"`
	EndHour   *int `json:"endHour" binding:"required"`
}

func UpdateOrderTiming(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/config/timing"
		defer handlePanic(c, route)

		var req updateTimingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		start, end := *req.StartHour, *req.EndHour
		if start < 0 || start > 23 || end < 0 || end > 24 {
			respondWithError(c, http.StatusBadRequest, route, "start hour must be 0-23 and end hour 0-24")
			return
		}

		cfg := timing.Normalize(models.OrderTimingConfig{StartHour: start, EndHour: end})
		if start == end || cfg.StartHour == cfg.EndHour {
			respondWithError(c, http.StatusBadRequest, route, "start and end hours cannot be equal")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := st.SetTimingConfig(ctx, cfg); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
