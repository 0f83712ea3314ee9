package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

/* =========================
   PUBLIC CATALOG READS
========================= */

func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		filter := bson.M{"isAvailable": true}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			categoryID, err := primitive.ObjectIDFromHex(category)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid category id")
				return
			}
			filter["categoryId"] = categoryID
		}

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var products []models.Product
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /categories"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("categories").Find(ctx,
			bson.M{"isActive": bson.M{"$ne": false}},
			options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var categories []models.Category
		if err := cursor.All(ctx, &categories); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

/* =========================
   ADMIN CATALOG WRITES
========================= */

type productRequest struct {
	Name         string `json:"name" binding:"required"`
	Price        int64  `json:"price" binding:"required"`
	WeightGrams  int    `json:"weightGrams"`
	Badge        string `json:"badge"`
	FreeDelivery bool   `json:"freeDelivery"`
	IsAvailable  *bool  `json:"isAvailable"`
	CategoryID   string `json:"categoryId" binding:"required"`
	Description  string `json:"description"`
	ImagePath    string `json:"imagePath"`
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Price < 0 {
			respondWithError(c, http.StatusBadRequest, route, "price must be non-negative")
			return
		}

		categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid category id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := db.Collection("categories").FindOne(ctx, bson.M{"_id": categoryID}).Err(); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "category not found")
			return
		}

		available := true
		if req.IsAvailable != nil {
			available = *req.IsAvailable
		}

		product := models.Product{
			Name:         strings.TrimSpace(req.Name),
			Price:        req.Price,
			WeightGrams:  req.WeightGrams,
			Badge:        strings.TrimSpace(req.Badge),
			FreeDelivery: req.FreeDelivery,
			IsAvailable:  available,
			CategoryID:   categoryID,
			Description:  strings.TrimSpace(req.Description),
			ImagePath:    req.ImagePath,
			CreatedAt:    time.Now(),
		}

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			product.ID = id
		}
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, route)

		productID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if req.Price < 0 {
			respondWithError(c, http.StatusBadRequest, route, "price must be non-negative")
			return
		}

		categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid category id")
			return
		}

		update := bson.M{
			"name":         strings.TrimSpace(req.Name),
			"price":        req.Price,
			"weightGrams":  req.WeightGrams,
			"badge":        strings.TrimSpace(req.Badge),
			"freeDelivery": req.FreeDelivery,
			"categoryId":   categoryID,
			"description":  strings.TrimSpace(req.Description),
			"imagePath":    req.ImagePath,
		}
		if req.IsAvailable != nil {
			update["isAvailable"] = *req.IsAvailable
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").UpdateOne(ctx, bson.M{"_id": productID}, bson.M{"$set": update})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

type categoryRequest struct {
	Name     string `json:"name" binding:"required"`
	GSTRate  *int64 `json:"gstRate" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

func CreateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/categories"
		defer handlePanic(c, route)

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if *req.GSTRate < 0 || *req.GSTRate > 100 {
			respondWithError(c, http.StatusBadRequest, route, "gstRate must be between 0 and 100")
			return
		}

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}

		category := models.Category{
			Name:      strings.TrimSpace(req.Name),
			GSTRate:   *req.GSTRate,
			IsActive:  active,
			CreatedAt: time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			category.ID = id
		}
		c.JSON(http.StatusCreated, category)
	}
}

func UpdateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/categories/:id"
		defer handlePanic(c, route)

		categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if *req.GSTRate < 0 || *req.GSTRate > 100 {
			respondWithError(c, http.StatusBadRequest, route, "gstRate must be between 0 and 100")
			return
		}

		update := bson.M{
			"name":    strings.TrimSpace(req.Name),
			"gstRate": *req.GSTRate,
		}
		if req.IsActive != nil {
			update["isActive"] = *req.IsActive
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("categories").UpdateOne(ctx, bson.M{"_id": categoryID}, bson.M{"$set": update})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "category not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
