package middleware

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

	"backend/internal/models"
)

// Context keys written by VerifyToken for downstream stages.
const (
	ContextAdminID = "adminId"
	ContextRole    = "role"
	ContextClaims  = "claims"
)

// VerifyToken validates the bearer token against the configured signing
// secret and attaches the decoded claims to the request context.
func VerifyToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			log.Println("[AUTH] [ERROR] missing token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Access Denied"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			log.Println("[AUTH] [ERROR] invalid token format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Token"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.Println("[AUTH] [ERROR] token validation failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			log.Println("[AUTH] [ERROR] token claims invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Token"})
			return
		}

		idValue, _ := claims["id"].(string)
		if strings.TrimSpace(idValue) == "" {
			log.Println("[AUTH] [ERROR] id claim missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid Token"})
			return
		}

		role, _ := claims["role"].(string)
		c.Set(ContextAdminID, idValue)
		c.Set(ContextRole, role)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// AdminOnly loads the admin record named by the verified claims and lets the
// request continue only when its stored role is Admin. A principal whose id
// does not resolve to an admin document (a user token, say) is rejected, not
// dereferenced.
func AdminOnly(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		idValue := c.GetString(ContextAdminID)

		adminID, err := primitive.ObjectIDFromHex(idValue)
		if err != nil {
			log.Println("[AUTH] [ERROR] invalid id claim:", idValue)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access Denied, Admin only Access!"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err = db.Collection("admins").FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin)
		if err == mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] admin lookup miss:", idValue)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access Denied, Admin only Access!"})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] admin lookup failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
			return
		}

		if admin.Role != models.RoleAdmin {
			log.Println("[AUTH] [ERROR] role mismatch:", admin.Role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access Denied, Admin only Access!"})
			return
		}

		c.Next()
	}
}
