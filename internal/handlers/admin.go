package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"backend/internal/models"
)

type AdminMultipartInput struct {
	ID            string
	IDSet         bool
	Name          string
	NameSet       bool
	Email         string
	EmailSet      bool
	Password      string
	PasswordSet   bool
	Role          string
	RoleSet       bool
	Status        bool
	StatusSet     bool
	ProfilePic    string
	ProfilePicSet bool
}

func parseMultipartAdminRequest(c *gin.Context) (AdminMultipartInput, error) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return AdminMultipartInput{}, err
	}

	input := AdminMultipartInput{}

	if value, ok := c.GetPostForm("id"); ok {
		input.ID = strings.TrimSpace(value)
		input.IDSet = true
	}
	if value, ok := c.GetPostForm("name"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
	}
	if value, ok := c.GetPostForm("email"); ok {
		input.Email = strings.ToLower(strings.TrimSpace(value))
		input.EmailSet = true
	}
	if value, ok := c.GetPostForm("password"); ok {
		input.Password = value
		input.PasswordSet = true
	}
	if value, ok := c.GetPostForm("role"); ok {
		input.Role = strings.TrimSpace(value)
		input.RoleSet = true
	}
	if value, ok := c.GetPostForm("status"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return AdminMultipartInput{}, err
		}
		input.Status = parsed
		input.StatusSet = true
	}

	file, err := formFile(c, "profile_pic")
	if err != nil {
		return AdminMultipartInput{}, err
	}
	if file != nil {
		filename, err := saveUpload(file)
		if err != nil {
			return AdminMultipartInput{}, err
		}
		input.ProfilePic = filename
		input.ProfilePicSet = true
	}

	return input, nil
}

// hashPassword is the only write path for the password field. Signup and
// update both go through it, so a stored password is always a bcrypt hash.
func hashPassword(plain string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func issueAdminToken(adminID primitive.ObjectID, role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":   adminID.Hex(),
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func SignupAdmin(db *mongo.Database, bcryptCost int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireMultipart(c) {
			return
		}

		input, err := parseMultipartAdminRequest(c)
		if err != nil {
			log.Println("SignupAdmin multipart error:", err)
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		if !input.NameSet || input.Name == "" ||
			!input.EmailSet || input.Email == "" ||
			!input.PasswordSet || strings.TrimSpace(input.Password) == "" ||
			!input.RoleSet || input.Role == "" ||
			!input.StatusSet {
			respondError(c, http.StatusBadRequest, "name, email, password, role and status are required")
			return
		}

		if !models.ValidRole(input.Role) {
			respondError(c, http.StatusBadRequest, "invalid role")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("admins").CountDocuments(ctx, bson.M{"email": input.Email})
		if err != nil {
			log.Println("SignupAdmin count error:", err)
			respondServerError(c, err)
			return
		}
		if count > 0 {
			respondError(c, http.StatusBadRequest, "Email already exists")
			return
		}

		hashed, err := hashPassword(input.Password, bcryptCost)
		if err != nil {
			log.Println("SignupAdmin hash error:", err)
			respondServerError(c, err)
			return
		}

		now := time.Now()
		admin := models.Admin{
			Name:       input.Name,
			Email:      input.Email,
			Password:   hashed,
			Role:       input.Role,
			ProfilePic: input.ProfilePic,
			Status:     input.Status,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		res, err := db.Collection("admins").InsertOne(ctx, admin)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusBadRequest, "Email already exists")
				return
			}
			log.Println("SignupAdmin insert error:", err)
			respondServerError(c, err)
			return
		}

		admin.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("[ADMIN] [INFO] admin created:", admin.Email)
		respondData(c, http.StatusCreated, "Admin created successfully", admin)
	}
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func LoginAdmin(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err := db.Collection("admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusUnauthorized, "Email not found")
			return
		}
		if err != nil {
			log.Println("LoginAdmin lookup error:", err)
			respondServerError(c, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
			respondError(c, http.StatusUnauthorized, "Invalid password")
			return
		}

		token, err := issueAdminToken(admin.ID, admin.Role, jwtSecret, accessTTL)
		if err != nil {
			log.Println("LoginAdmin token error:", err)
			respondServerError(c, err)
			return
		}

		log.Println("[ADMIN] [INFO] login succeeded:", admin.Email)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful",
			"role":    admin.Role,
			"token":   token,
		})
	}
}

func GetAdmins(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		filter := bson.M{}
		if status := strings.TrimSpace(c.Query("status")); status != "" {
			filter["status"] = strings.EqualFold(status, "true")
		}
		if role := strings.TrimSpace(c.Query("role")); role != "" {
			filter["role"] = role
		}
		if email := strings.TrimSpace(c.Query("email")); email != "" {
			filter["email"] = strings.ToLower(email)
		}
		if name := strings.TrimSpace(c.Query("name")); name != "" {
			filter["name"] = bson.M{"$regex": name, "$options": "i"}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("admins").CountDocuments(ctx, filter)
		if err != nil {
			log.Println("GetAdmins count error:", err)
			respondServerError(c, err)
			return
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("admins").Find(ctx, filter, opts)
		if err != nil {
			log.Println("GetAdmins find error:", err)
			respondServerError(c, err)
			return
		}
		defer cursor.Close(ctx)

		admins := make([]models.Admin, 0)
		if err := cursor.All(ctx, &admins); err != nil {
			log.Println("GetAdmins decode error:", err)
			respondServerError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Admins retrieved successfully.",
			"data":    admins,
			"pagination": gin.H{
				"currentPage":  page,
				"totalPages":   totalPages(total, limit),
				"totalRecords": total,
				"limit":        limit,
			},
		})
	}
}

func GetAdminByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusNotFound, "Admin not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err = db.Collection("admins").FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Admin not found")
			return
		}
		if err != nil {
			log.Println("GetAdminByID find error:", err)
			respondServerError(c, err)
			return
		}

		respondData(c, http.StatusOK, "", admin)
	}
}

func UpdateAdmin(db *mongo.Database, bcryptCost int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireMultipart(c) {
			return
		}

		input, err := parseMultipartAdminRequest(c)
		if err != nil {
			log.Println("UpdateAdmin multipart error:", err)
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

		var existing models.Admin
		err = db.Collection("admins").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Admin not found")
			return
		}
		if err != nil {
			log.Println("UpdateAdmin find error:", err)
			respondServerError(c, err)
			return
		}

		updateSet := bson.M{}

		if input.NameSet {
			if input.Name == "" {
				respondError(c, http.StatusBadRequest, "name must not be empty")
				return
			}
			updateSet["name"] = input.Name
		}
		if input.EmailSet {
			if input.Email == "" {
				respondError(c, http.StatusBadRequest, "email must not be empty")
				return
			}
			updateSet["email"] = input.Email
		}
		if input.PasswordSet {
			if strings.TrimSpace(input.Password) == "" {
				respondError(c, http.StatusBadRequest, "password must not be empty")
				return
			}
			hashed, err := hashPassword(input.Password, bcryptCost)
			if err != nil {
				log.Println("UpdateAdmin hash error:", err)
				respondServerError(c, err)
				return
			}
			updateSet["password"] = hashed
		}
		if input.RoleSet {
			if !models.ValidRole(input.Role) {
				respondError(c, http.StatusBadRequest, "invalid role")
				return
			}
			updateSet["role"] = input.Role
		}
		if input.StatusSet {
			updateSet["status"] = input.Status
		}
		if input.ProfilePicSet {
			updateSet["profile_pic"] = input.ProfilePic
		}

		if len(updateSet) == 0 {
			respondError(c, http.StatusBadRequest, "no fields to update")
			return
		}
		updateSet["updatedAt"] = time.Now()

		_, err = db.Collection("admins").UpdateByID(ctx, id, bson.M{"$set": updateSet})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusBadRequest, "Email already exists")
				return
			}
			log.Println("UpdateAdmin update error:", err)
			respondServerError(c, err)
			return
		}

		if input.ProfilePicSet && existing.ProfilePic != "" && existing.ProfilePic != input.ProfilePic {
			if err := safeDeleteUpload(existing.ProfilePic); err != nil {
				log.Printf("UpdateAdmin old profile_pic delete failed: %v", err)
			}
		}

		var updated models.Admin
		if err := db.Collection("admins").FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			log.Println("UpdateAdmin reload error:", err)
			respondServerError(c, err)
			return
		}

		respondData(c, http.StatusOK, "Admin updated successfully", updated)
	}
}

func DeleteAdmin(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondError(c, http.StatusNotFound, "Admin not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Admin
		err = db.Collection("admins").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Admin not found")
			return
		}
		if err != nil {
			log.Println("DeleteAdmin find error:", err)
			respondServerError(c, err)
			return
		}

		res, err := db.Collection("admins").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			log.Println("DeleteAdmin delete error:", err)
			respondServerError(c, err)
			return
		}
		if res.DeletedCount == 0 {
			respondError(c, http.StatusNotFound, "Admin not found")
			return
		}

		if err := safeDeleteUpload(existing.ProfilePic); err != nil {
			log.Printf("DeleteAdmin profile_pic delete failed: %v", err)
		}

		respondData(c, http.StatusOK, "Admin deleted successfully", nil)
	}
}

func ChangeAdminStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Query("id")))
		if err != nil {
			respondError(c, http.StatusNotFound, "Admin not found")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err = db.Collection("admins").FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "Admin not found")
			return
		}
		if err != nil {
			log.Println("ChangeAdminStatus find error:", err)
			respondServerError(c, err)
			return
		}

		admin.Status = !admin.Status
		admin.UpdatedAt = time.Now()

		_, err = db.Collection("admins").UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"status":    admin.Status,
			"updatedAt": admin.UpdatedAt,
		}})
		if err != nil {
			log.Println("ChangeAdminStatus update error:", err)
			respondServerError(c, err)
			return
		}

		respondData(c, http.StatusOK, "Status updated successfully", admin)
	}
}
