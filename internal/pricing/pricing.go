// Package pricing holds the pure order-pricing calculations: the delivery
// fee schedule and the CGST/SGST split. Everything here is deterministic and
// side-effect free so the same numbers can be recomputed anywhere.
package pricing

import "backend/internal/models"

// Defaults is used whenever no pricing row has been written yet.
var Defaults = models.PricingConfig{
	FreeDeliveryThreshold:    499,
	ReducedDeliveryThreshold: 299,
	ReducedDeliveryFee:       30,
	BaseDeliveryFee:          50,
}

// DeliveryCharge computes the delivery fee in rupees for a cart subtotal
// (rupees). Any free-delivery-eligible item in the cart waives the fee
// outright; otherwise the subtotal is matched against the thresholds.
func DeliveryCharge(subtotal int64, hasFreeDeliveryItem bool, cfg models.PricingConfig) int64 {
	if hasFreeDeliveryItem {
		return 0
	}
	if subtotal >= cfg.FreeDeliveryThreshold {
		return 0
	}
	if subtotal >= cfg.ReducedDeliveryThreshold {
		return cfg.ReducedDeliveryFee
	}
	return cfg.BaseDeliveryFee
}

// SplitGST computes the GST due on a base amount (paise) at the given
// percent rate and splits it into central and state halves. The halves
// always sum exactly to the total: cgst takes the floor, sgst the remainder.
func SplitGST(basePaise, gstRate int64) (total, cgst, sgst int64) {
	total = basePaise * gstRate / 100
	cgst = total / 2
	sgst = total - cgst
	return total, cgst, sgst
}
