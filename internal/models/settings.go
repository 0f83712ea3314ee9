package models

// PricingConfig is the singleton delivery-fee schedule. Thresholds and fees
// are whole rupees. Invariant: ReducedDeliveryThreshold <= FreeDeliveryThreshold.
type PricingConfig struct {
	FreeDeliveryThreshold    int64 `bson:"freeDeliveryThreshold" json:"freeDeliveryThreshold"`
	ReducedDeliveryThreshold int64 `bson:"reducedDeliveryThreshold" json:"reducedDeliveryThreshold"`
	ReducedDeliveryFee       int64 `bson:"reducedDeliveryFee" json:"reducedDeliveryFee"`
	BaseDeliveryFee          int64 `bson:"baseDeliveryFee" json:"baseDeliveryFee"`
}

// OrderTimingConfig is the singleton daily order-acceptance window in IST.
// StartHour is in [0,23], EndHour in [0,24]; StartHour > EndHour means the
// window wraps past midnight.
type OrderTimingConfig struct {
	StartHour int `bson:"startHour" json:"startHour"`
	EndHour   int `bson:"endHour" json:"endHour"`
}
