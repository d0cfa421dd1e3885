package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
)

const accessTokenTTL = 24 * time.Hour

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}

	if err := handlers.InitUploads(config.AppEnv.UploadDir); err != nil {
		log.Fatal(err)
	}

	secret := config.AppEnv.JWTSecret

	r := gin.Default()
	r.Static("/uploads", config.AppEnv.UploadDir)

	admin := r.Group("/Admin")
	admin.POST("/login", handlers.LoginAdmin(db, secret, accessTokenTTL))

	adminAPI := admin.Group("")
	adminAPI.Use(middleware.VerifyToken(secret), middleware.AdminOnly(db))
	{
		adminAPI.POST("/signup", handlers.SignupAdmin(db, config.AppEnv.BcryptCost))
		adminAPI.GET("/getadmins", handlers.GetAdmins(db))
		adminAPI.GET("/admins/:id", handlers.GetAdminByID(db))
		adminAPI.PUT("/updateAdmin", handlers.UpdateAdmin(db, config.AppEnv.BcryptCost))
		adminAPI.DELETE("/delete/:id", handlers.DeleteAdmin(db))
		adminAPI.PATCH("/status", handlers.ChangeAdminStatus(db))
	}

	users := r.Group("/Users")
	users.POST("/login", handlers.LoginUser(db, secret, accessTokenTTL))

	usersAPI := users.Group("")
	usersAPI.Use(middleware.VerifyToken(secret), middleware.AdminOnly(db))
	{
		usersAPI.POST("/signup", handlers.SignupUser(db))
		usersAPI.GET("/getUsers", handlers.GetUsers(db))
		usersAPI.PUT("/updateUser", handlers.UpdateUser(db))
		usersAPI.PATCH("/changeStatus", handlers.ChangeUserStatus(db))
	}

	products := r.Group("/Products")
	products.Use(middleware.VerifyToken(secret), middleware.AdminOnly(db))
	{
		products.POST("/createProduct", handlers.CreateProduct(db))
		products.GET("/getproducts", handlers.GetProducts(db))
		products.GET("/product/:id", handlers.GetProductByID(db))
		products.PUT("/updateProduct", handlers.UpdateProduct(db))
		products.DELETE("/deleteProduct/:id", handlers.DeleteProduct(db))
		products.PATCH("/changeStatus", handlers.ChangeProductStatus(db))
	}

	r.POST("/api/upload-image", handlers.UploadImage(db))

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
