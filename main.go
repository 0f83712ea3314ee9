package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/gateway"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/notifier"
	"backend/internal/store"
	"backend/internal/validation"
)

func main() {
	cfg := config.Load()

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}
	if err := database.EnsureCustomerIndexes(db); err != nil {
		log.Printf("⚠️ customer index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("⚠️ admin index warning: %v", err)
	}

	st := store.NewMongo(db)
	gw := gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	v := validation.New()

	var sender notifier.Sender
	sesSender, err := notifier.NewSESSender(context.Background(), notifier.SESConfig{
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		SenderEmail:     cfg.SenderEmail,
		AdminAlertEmail: cfg.AdminAlertEmail,
	})
	if err != nil {
		log.Println("mail sender not configured, notifications will be logged only:", err)
		sender = notifier.LogSender{}
	} else {
		sender = sesSender
	}

	dispatcher := notifier.NewDispatcher(st, sender, 64)
	dispatcher.Start(context.Background())

	r := gin.Default()

	r.GET("/health/payment", handlers.PaymentHealth(cfg))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/categories", handlers.GetCategories(db))
	r.GET("/config/delivery", handlers.GetDeliveryPricing(st))

	r.POST("/checkout/create-order", handlers.CreateOrder(st, gw, v, cfg))
	r.POST("/checkout/verify", handlers.VerifyPayment(st, dispatcher, v, cfg))
	r.POST("/checkout/cancel-order", handlers.CancelOrder(st, v))
	r.POST("/orders/track", handlers.TrackOrders(st, v))

	r.POST("/admin/login", handlers.AdminLogin(st, cfg.JWTSecret, cfg.AccessTokenTTL))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(cfg.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/orders", handlers.GetAllOrders(st))
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus(st))

		admin.GET("/config/delivery", handlers.GetDeliveryPricing(st))
		admin.PUT("/config/delivery", handlers.UpdateDeliveryPricing(st))
		admin.GET("/config/timing", handlers.GetOrderTiming(st))
		admin.PUT("/config/timing", handlers.UpdateOrderTiming(st))

		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
	}

	r.Run(":" + cfg.Port)
}
