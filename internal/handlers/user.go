package handlers

import (
	"context"
	"fmt"
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

	"backend/internal/models"
)

// generateOTP returns the placeholder passcode assigned at signup. Login
// compares against it and does not rotate it afterwards.
func generateOTP() string {
	return "0000"
}

type UserMultipartInput struct {
	ID            string
	IDSet         bool
	Name          string
	NameSet       bool
	Email         string
	EmailSet      bool
	Mobile        string
	MobileSet     bool
	DOB           time.Time
	DOBSet        bool
	Location      string
	LocationSet   bool
	Gender        string
	GenderSet     bool
	ProfilePic    string
	ProfilePicSet bool
}

func parseDOB(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid dob: %s", value)
}

func parseMultipartUserRequest(c *gin.Context) (UserMultipartInput, error) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return UserMultipartInput{}, err
	}

	input := UserMultipartInput{}

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
	if value, ok := c.GetPostForm("mobile"); ok {
		input.Mobile = strings.TrimSpace(value)
		input.MobileSet = true
	}
	if value, ok := c.GetPostForm("dob"); ok {
		parsed, err := parseDOB(value)
		if err != nil {
			return UserMultipartInput{}, err
		}
		input.DOB = parsed
		input.DOBSet = true
	}
	if value, ok := c.GetPostForm("location"); ok {
		input.Location = strings.TrimSpace(value)
		input.LocationSet = true
	}
	if value, ok := c.GetPostForm("gender"); ok {
		input.Gender = strings.TrimSpace(value)
		input.GenderSet = true
	}

	file, err := formFile(c, "profile_pic")
	if err != nil {
		return UserMultipartInput{}, err
	}
	if file != nil {
		filename, err := saveUpload(file)
		if err != nil {
			return UserMultipartInput{}, err
		}
		input.ProfilePic = filename
		input.ProfilePicSet = true
	}

	return input, nil
}

func SignupUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireMultipart(c) {
			return
		}

		input, err := parseMultipartUserRequest(c)
		if err != nil {
			log.Println("SignupUser multipart error:", err)
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}

		if !input.NameSet || input.Name == "" ||
			!input.MobileSet || input.Mobile == "" ||
			!input.EmailSet || input.Email == "" ||
			!input.DOBSet ||
			!input.LocationSet || input.Location == "" ||
			!input.GenderSet || input.Gender == "" {
			respondError(c, http.StatusBadRequest, "name, mobile, email, dob, location and gender are required")
			return
		}

		if !models.ValidGender(input.Gender) {
			respondError(c, http.StatusBadRequest, "invalid gender")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"$or": []bson.M{
			{"mobile": input.Mobile},
			{"email": input.Email},
		}})
		if err != nil {
			log.Println("SignupUser count error:", err)
			respondServerError(c, err)
			return
		}
		if count > 0 {
			respondError(c, http.StatusBadRequest, "Mobile number or Email already exists")
			return
		}

		now := time.Now()
		user := models.User{
			Name:       input.Name,
			Email:      input.Email,
			Mobile:     input.Mobile,
			DOB:        input.DOB,
			Location:   input.Location,
			Gender:     input.Gender,
			OTP:        generateOTP(),
			ProfilePic: input.ProfilePic,
			Status:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusBadRequest, "Mobile number or Email already exists")
				return
			}
			log.Println("SignupUser insert error:", err)
			respondServerError(c, err)
			return
		}

		user.ID = res.InsertedID.(primitive.ObjectID)
		log.Println("[USER] [INFO] user created:", user.Mobile)
		respondData(c, http.StatusCreated, "User created successfully.", user)
	}
}

type UserLoginRequest struct {
	Mobile string `json:"mobile" binding:"required"`
	OTP    string `json:"otp" binding:"required"`
}

func LoginUser(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		mobile := strings.TrimSpace(req.Mobile)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"mobile": mobile}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "User not found.")
			return
		}
		if err != nil {
			log.Println("LoginUser lookup error:", err)
			respondServerError(c, err)
			return
		}

		if user.OTP != strings.TrimSpace(req.OTP) {
			respondError(c, http.StatusBadRequest, "Invalid OTP. Please try again.")
			return
		}

		claims := jwt.MapClaims{
			"id":   user.ID.Hex(),
			"role": models.RoleUser,
			"exp":  time.Now().Add(accessTTL).Unix(),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
		if err != nil {
			log.Println("LoginUser token error:", err)
			respondServerError(c, err)
			return
		}

		log.Println("[USER] [INFO] login succeeded:", user.Mobile)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Login successful.",
			"data":    user,
			"token":   token,
		})
	}
}

func GetUsers(db *mongo.Database) gin.HandlerFunc {
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
		if gender := strings.TrimSpace(c.Query("gender")); gender != "" {
			filter["gender"] = gender
		}
		if email := strings.TrimSpace(c.Query("email")); email != "" {
			filter["email"] = strings.ToLower(email)
		}
		if mobile := strings.TrimSpace(c.Query("mobile")); mobile != "" {
			filter["mobile"] = mobile
		}
		if name := strings.TrimSpace(c.Query("name")); name != "" {
			filter["name"] = bson.M{"$regex": name, "$options": "i"}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("users").CountDocuments(ctx, filter)
		if err != nil {
			log.Println("GetUsers count error:", err)
			respondServerError(c, err)
			return
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("users").Find(ctx, filter, opts)
		if err != nil {
			log.Println("GetUsers find error:", err)
			respondServerError(c, err)
			return
		}
		defer cursor.Close(ctx)

		users := make([]models.User, 0)
		if err := cursor.All(ctx, &users); err != nil {
			log.Println("GetUsers decode error:", err)
			respondServerError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Users retrieved successfully.",
			"data":    users,
			"pagination": gin.H{
				"currentPage":  page,
				"totalPages":   totalPages(total, limit),
				"totalRecords": total,
				"limit":        limit,
			},
		})
	}
}

func UpdateUser(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !requireMultipart(c) {
			return
		}

		input, err := parseMultipartUserRequest(c)
		if err != nil {
			log.Println("UpdateUser multipart error:", err)
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

		var existing models.User
		err = db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			log.Println("UpdateUser find error:", err)
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
		if input.MobileSet {
			if input.Mobile == "" {
				respondError(c, http.StatusBadRequest, "mobile must not be empty")
				return
			}
			updateSet["mobile"] = input.Mobile
		}
		if input.DOBSet {
			updateSet["dob"] = input.DOB
		}
		if input.LocationSet {
			updateSet["location"] = input.Location
		}
		if input.GenderSet {
			if !models.ValidGender(input.Gender) {
				respondError(c, http.StatusBadRequest, "invalid gender")
				return
			}
			updateSet["gender"] = input.Gender
		}
		if input.ProfilePicSet {
			updateSet["profile_pic"] = input.ProfilePic
		}

		if len(updateSet) == 0 {
			respondError(c, http.StatusBadRequest, "no fields to update")
			return
		}
		updateSet["updatedAt"] = time.Now()

		_, err = db.Collection("users").UpdateByID(ctx, id, bson.M{"$set": updateSet})
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondError(c, http.StatusBadRequest, "Mobile number or Email already exists")
				return
			}
			log.Println("UpdateUser update error:", err)
			respondServerError(c, err)
			return
		}

		if input.ProfilePicSet && existing.ProfilePic != "" && existing.ProfilePic != input.ProfilePic {
			if err := safeDeleteUpload(existing.ProfilePic); err != nil {
				log.Printf("UpdateUser old profile_pic delete failed: %v", err)
			}
		}

		var updated models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&updated); err != nil {
			log.Println("UpdateUser reload error:", err)
			respondServerError(c, err)
			return
		}

		respondData(c, http.StatusOK, "User updated successfully", updated)
	}
}

func ChangeUserStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(c.Query("id")))
		if err != nil {
			respondError(c, http.StatusNotFound, "User not found.")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err = db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			respondError(c, http.StatusNotFound, "User not found.")
			return
		}
		if err != nil {
			log.Println("ChangeUserStatus find error:", err)
			respondServerError(c, err)
			return
		}

		user.Status = !user.Status
		user.UpdatedAt = time.Now()

		_, err = db.Collection("users").UpdateByID(ctx, id, bson.M{"$set": bson.M{
			"status":    user.Status,
			"updatedAt": user.UpdatedAt,
		}})
		if err != nil {
			log.Println("ChangeUserStatus update error:", err)
			respondServerError(c, err)
			return
		}

		respondData(c, http.StatusOK, "User status updated successfully", user)
	}
}
