package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var AppEnv Config

type Config struct {
	MongoURI   string
	DBName     string
	JWTSecret  string
	BcryptCost int
	UploadDir  string
	Port       string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:   mustEnv("MONGO_URI"),
		DBName:     getEnvOrDefault("DB_NAME", "foodpanel"),
		JWTSecret:  mustEnv("JWT_SECRET"),
		BcryptCost: getIntEnv("BCRYPT_COST", bcrypt.DefaultCost),
		UploadDir:  getEnvOrDefault("UPLOAD_DIR", "uploads"),
		Port:       getEnvOrDefault("PORT", "9000"),
	}
	if AppEnv.BcryptCost < bcrypt.MinCost || AppEnv.BcryptCost > bcrypt.MaxCost {
		log.Fatalf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
}

// mustEnv aborts startup when a required variable is missing. The signing
// secret in particular must never fall back to a built-in value.
func mustEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Fatalf("ENV %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
