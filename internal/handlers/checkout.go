package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"backend/internal/config"
	"backend/internal/gateway"
	"backend/internal/models"
	"backend/internal/pricing"
	"backend/internal/store"
	"backend/internal/timing"
	"backend/internal/validation"
)

type checkoutCustomerRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80,fullname"`
	Phone       string `json:"phone" validate:"required,inmobile"`
	Email       string `json:"email" validate:"required,email,max=120"`
	AddressLine string `json:"addressLine" validate:"required,min=10,max=200"`
	City        string `json:"city" validate:"required,min=2,max=50"`
	State       string `json:"state" validate:"required,min=2,max=50"`
	Pincode     string `json:"pincode" validate:"required,pincode"`
}

type checkoutItemRequest struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1,max=50"`
}

type createOrderRequest struct {
	Customer checkoutCustomerRequest `json:"customer" validate:"required"`
	Items    []checkoutItemRequest   `json:"items" validate:"required,min=1,dive"`
}

// CreateOrder prices the cart server-side, opens a gateway order for the
// grand total and persists the local order in PENDING state. Client-supplied
// amounts are never read; only product ids and quantities are trusted as
// input to the authoritative recomputation.
func CreateOrder(st store.Store, gw gateway.Client, v *validatorv10.Validate, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/create-order"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		if cfg.EnforceOrderTiming {
			window, err := st.TimingConfig(ctx)
			if err != nil {
				log.Printf("[%s] timing config unavailable, using defaults: %v", route, err)
				window = timing.Defaults
			}
			if !timing.IsWithinWindow(window, time.Now()) {
				respondWithError(c, http.StatusForbidden, route,
					fmt.Sprintf("Sorry, we are receiving orders only between %s.", timing.FormatWindow(window)))
				return
			}
		}

		var req createOrderRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		req.Customer.Phone = validation.NormalizePhone(req.Customer.Phone)
		req.Customer.Email = strings.ToLower(strings.TrimSpace(req.Customer.Email))
		req.Customer.Name = strings.TrimSpace(req.Customer.Name)

		var (
			subtotalRupees int64
			cgstTotalPaise int64
			sgstTotalPaise int64
			hasFreeItem    bool
			items          = make([]models.OrderItem, 0, len(req.Items))
		)

		for _, line := range req.Items {
			resolved, err := st.ResolveProduct(ctx, line.ID)
			if err != nil {
				var unavailable store.ProductUnavailableError
				if errors.As(err, &unavailable) {
					respondWithError(c, http.StatusBadRequest, route, unavailable.Error())
					return
				}
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}

			product := resolved.Product
			if product.FreeDelivery {
				hasFreeItem = true
			}

			basePaise := product.Price * 100 * int64(line.Quantity)
			_, cgst, sgst := pricing.SplitGST(basePaise, resolved.GSTRate)

			subtotalRupees += product.Price * int64(line.Quantity)
			cgstTotalPaise += cgst
			sgstTotalPaise += sgst

			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				Name:        product.Name,
				PricePaise:  product.Price * 100,
				Quantity:    line.Quantity,
				WeightGrams: product.WeightGrams,
				GSTRate:     resolved.GSTRate,
				CGSTPaise:   cgst,
				SGSTPaise:   sgst,
			})
		}

		pricingCfg, err := st.PricingConfig(ctx)
		if err != nil {
			log.Printf("[%s] pricing config unavailable, using defaults: %v", route, err)
			pricingCfg = pricing.Defaults
		}

		deliveryRupees := pricing.DeliveryCharge(subtotalRupees, hasFreeItem, pricingCfg)

		subtotalPaise := subtotalRupees * 100
		deliveryPaise := deliveryRupees * 100
		totalPaise := subtotalPaise + cgstTotalPaise + sgstTotalPaise + deliveryPaise

		if !cfg.PaymentConfigured() {
			respondWithError(c, http.StatusInternalServerError, route, "server misconfigured: missing payment gateway credentials")
			return
		}

		gatewayOrder, err := gw.CreateOrder(ctx, totalPaise, "INR", "rl_"+uuid.NewString(), map[string]string{
			"customer_name":  req.Customer.Name,
			"customer_phone": req.Customer.Phone,
			"customer_email": req.Customer.Email,
		})
		if err != nil {
			log.Printf("[%s] gateway order create failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "payment gateway error")
			return
		}

		customer := models.Customer{
			Name:      req.Customer.Name,
			Phone:     req.Customer.Phone,
			Email:     req.Customer.Email,
			CreatedAt: time.Now(),
		}
		order := models.Order{
			GatewayOrderID: gatewayOrder.ID,
			Status:         models.StatusPending,
			SubtotalPaise:  subtotalPaise,
			CGSTTotalPaise: cgstTotalPaise,
			SGSTTotalPaise: sgstTotalPaise,
			DeliveryPaise:  deliveryPaise,
			TotalPaise:     totalPaise,
			AddressLine:    strings.TrimSpace(req.Customer.AddressLine),
			City:           strings.TrimSpace(req.Customer.City),
			State:          strings.TrimSpace(req.Customer.State),
			Pincode:        req.Customer.Pincode,
			Items:          items,
			CreatedAt:      time.Now(),
		}

		orderID, _, err := st.CreatePendingOrder(ctx, customer, order)
		if err != nil {
			log.Printf("[%s] persist failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[%s] order %s created, gateway order %s, total %d paise", route, orderID.Hex(), gatewayOrder.ID, totalPaise)

		c.JSON(http.StatusOK, gin.H{
			"gatewayOrderId":  gatewayOrder.ID,
			"amount":          totalPaise,
			"currency":        gatewayOrder.Currency,
			"keyId":           cfg.RazorpayKeyID,
			"internalOrderId": orderID.Hex(),
			"subtotal":        subtotalPaise,
			"cgstTotal":       cgstTotalPaise,
			"sgstTotal":       sgstTotalPaise,
			"deliveryCharge":  deliveryPaise,
			"total":           totalPaise,
		})
	}
}
