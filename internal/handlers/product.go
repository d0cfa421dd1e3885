package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

type ProductMultipartInput struct {
	ID               string
	IDSet            bool
	ProductName      string
	ProductNameSet   bool
	Description      string
	DescriptionSet   bool
	Price            float64
	PriceSet         bool
	Category         string
	CategorySet      bool
	StockQuantity    int
	StockQuantitySet bool
	Status           bool
	StatusSet        bool
	Image            string
	ImageSet         bool
}

func parseMultipartProductRequest(c *gin.Context) (ProductMultipartInput, error) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return ProductMultipartInput{}, err
	}

	input := ProductMultipartInput{}

	if value, ok := c.GetPostForm("id"); ok {
		input.ID = strings.TrimSpace(value)
		input.IDSet = true
	}
	if value, ok := c.GetPostForm("productName"); ok {
		input.ProductName = strings.TrimSpace(value)
		input.ProductNameSet = true
	}
	if value, ok := c.GetPostForm("Description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}
	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return ProductMultipartInput{}, err
		}
		input.Price = parsed
		input.PriceSet = true
	}
	if value, ok := c.GetPostForm("category"); ok {
		input.Category = strings.TrimSpace(value)
		input.CategorySet = true
	}
	if value, ok := c.GetPostForm("stockQuantity"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return ProductMultipartInput{}, err
		}
		input.StockQuantity = parsed
		input.StockQuantitySet = true
	}
	if value, ok := c.GetPostForm("status"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return ProductMultipartInput{}, err
		}
		input.Status = parsed
		input.StatusSet = true
	}

	file, err := formFile(c, "image")
	if err != nil {
		return ProductMultipartInput{}, err
	}
	if file != nil {
		filename, err := saveUpload(file)
		if err != nil {
			return ProductMultipartInput{}, err
		}
		input.Image = filename
		input.ImageSet = true
	}

	return input, nil
}

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireMultipart(c) {
			return
		}

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			log.Println("CreateProduct multipart error:", err)
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		if !input.ImageSet || input.Image == "" {
			respondError(c, http.StatusBadRequest, "Image upload is required")
			return
		}

		if !input.ProductNameSet || input.ProductName == "" ||
			!input.DescriptionSet || input.Description == "" ||
			!input.PriceSet ||
			!input.CategorySet || input.Category == "" ||
			!input.StockQuantitySet ||
			!input.StatusSet {
			respondError(c, http.StatusBadRequest, "productName, Description, price, category, stockQuantity and status are required")
			return
		}

		if input.Price <= 0 {
			respondError(c, http.StatusBadRequest, "invalid price")
			return
		}
		if input.StockQuantity < 0 {
			respondError(c, http.StatusBadRequest, "stockQuantity must be zero or greater")
			return
		}
		if !models.ValidCategory(input.Category) {
			respondError(c, http.StatusBadRequest, "invalid category")
			return
		}

		now := time.Now()
		product := models.Product{
			ProductName:   input.ProductName,
			Description:   input.Description,
			Price:         input.Price,
			Image:         input.Image,
			Category:      input.Category,
			StockQuantity: input.StockQuantity,
			Status:        input.Status,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Println("CreateProduct insert error:", err)
			respondServerError(c, err)
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("[PRODUCT] [INFO] product created:", product.ProductName)
		respondData(c, http.StatusCreated, "Product created successfully", product)
	}
}

func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		filter := bson.M{}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = strings.EqualFold(status, "true")
		}
		if name := strings.TrimSpace(c.Query("productName")); name != "" {
			filter["productName"] = bson.M{"$regex": name, "$options": "i"}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			log.Println("GetProducts count error:", err)
			respondServerError(c, err)
			return
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			log.Println("GetProducts find error:", err)
			respondServerError(c, err)
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			log.Println("GetProducts decode error:", err)
			respondServerError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    products,
			"pagination": gin.H{
				"currentPage":  page,
				"totalPages":   totalPages(total, limit),
				"totalRecords": total,
				"limit":        limit,
			},
		})
	}
}

func GetProductByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			log.Println("GetProductByID find error:", err)
			respondServerError(c, err)
			return
		}

		respondData(c, http.StatusOK, "", product)
	}
}

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireMultipart(c) {
			return
		}

		input, err := parseMultipartProductRequest(c)
		if err != nil {
			log.Println("UpdateProduct multipart error:", err)
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		if !input.IDSet || input.ID == "" {
			respondError(c, http.StatusBadRequest, "id is required")
			return
		}
		id, err := primitive.ObjectIDFromHex(input.ID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			log.Println("UpdateProduct find error:", err)
			respondServerError(c, err)
			return
		}

		updateSet := bson.M{}

		if input.ProductNameSet {
			if input.ProductName == "" {
				respondError(c, http.StatusBadRequest, "productName must not be empty")
				return
			}
			updateSet["productName"] = input.ProductName
		}
		if input.DescriptionSet {
			updateSet["description"] = input.Description
		}
		if input.PriceSet {
			if input.Price <= 0 {
				respondError(c, http.StatusBadRequest, "invalid price")
				return
			}
			updateSet["price"] = input.Price
		}
		if input.CategorySet {
			if !models.ValidCategory(input.Category) {
				respondError(c, http.StatusBadRequest, "invalid category")
				return
			}
			updateSet["category"] = input.Category
		}
		if input.StockQuantitySet {
			if input.StockQuantity < 0 {
				respondError(c, http.StatusBadRequest, "stockQuantity must be zero or greater")
				return
			}
			updateSet["stockQuantity"] = input.StockQuantity
		}
		if input.StatusSet {
			updateSet["status"] = input.Status
		}
		if input.ImageSet {
			updateSet["image"] = input.Image
		}

		if len(updateSet) == 0 {
			respondError(c, http.StatusBadRequest, "no fields to update")
			return
		}
		updateSet["updatedAt"] = time.Now()

		_, err = db.Collection("products").UpdateByID(ctx, id, bson.M{"$set": updateSet})
		if err != nil {
			log.Println("UpdateProduct update error:", err)
			respondServerError(c, err)
			return
		}

		if input.ImageSet && existing.Image != "" && existing.Image != input.Image {
			if err := safeDeleteUpload(existing.Image); err != nil {
				log.Printf("UpdateProduct old image delete failed: %v", err)
			}
		}

		var updated models.Product
		if err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			log.Println("UpdateProduct reload error:", err)
			respondServerError(c, err)
			return
		}

		respondData(c, http.StatusOK, "Product updated successfully", updated)
	}
}

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			log.Println("DeleteProduct find error:", err)
			respondServerError(c, err)
			return
		}

		res, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Println("DeleteProduct delete error:", err)
			respondServerError(c, err)
			return
		}
		if res.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}

		if err := safeDeleteUpload(existing.Image); err != nil {
			log.Printf("DeleteProduct image delete failed: %v", err)
		}

		respondData(c, http.StatusOK, "Product deleted successfully", nil)
	}
}

func ChangeProductStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Query("id")))
		if err != nil {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			log.Println("ChangeProductStatus find error:", err)
			respondServerError(c, err)
			return
		}

		product.Status = !product.Status
		product.UpdatedAt = time.Now()

		_, err = db.Collection("products").UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"status":    product.Status,
			"updatedAt": product.UpdatedAt,
		}})
		if err != nil {
			log.Println("ChangeProductStatus update error:", err)
			respondServerError(c, err)
			return
		}

		respondData(c, http.StatusOK, "Product status updated successfully", product)
	}
}
