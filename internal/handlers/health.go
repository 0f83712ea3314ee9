package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
)

// PaymentHealth reports whether the gateway credentials are present, without
// revealing their values. Used by deploy checks before enabling checkout.
func PaymentHealth(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var missing []string
		if cfg.RazorpayKeyID == "" {
			missing = append(missing, "RAZORPAY_KEY_ID")
		}
		if cfg.RazorpayKeySecret == "" {
			missing = append(missing, "RAZORPAY_KEY_SECRET")
		}

		payload := gin.H{
			"ok":      len(missing) == 0,
			"service": "payment",
			"checks": gin.H{
				"gatewayKeyIdPresent":  cfg.RazorpayKeyID != "",
				"gatewaySecretPresent": cfg.RazorpayKeySecret != "",
			},
			"missing":   missing,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		if len(missing) > 0 {
			c.JSON(http.StatusServiceUnavailable, payload)
			return
		}
		c.JSON(http.StatusOK, payload)
	}
}
