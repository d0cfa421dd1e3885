package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	// imaging decodes through image.Decode, which only knows the formats
	// registered at init. WebP is an accepted upload extension, so its
	// decoder must be registered here.
	_ "golang.org/x/image/webp"

	"backend/internal/models"
)

const compressedJPEGQuality = 80

// compressUpload re-encodes a stored upload as JPEG at the fixed quality
// target and returns the new filename. The source file is left in place;
// the caller owns its lifecycle.
func compressUpload(name string) (string, error) {
	src := uploadPath(name)

	img, err := imaging.Open(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}

	base := strings.TrimSuffix(name, filepath.Ext(name))
	compressedName := "compressed-" + base + ".jpg"

	if err := imaging.Save(img, uploadPath(compressedName), imaging.JPEGQuality(compressedJPEGQuality)); err != nil {
		return "", fmt.Errorf("encode %s: %w", compressedName, err)
	}

	return compressedName, nil
}

func fileSizeKB(name string) float64 {
	info, err := os.Stat(uploadPath(name))
	if err != nil {
		return 0
	}
	return float64(info.Size()) / 1024
}

// UploadImage accepts one image, recompresses it, persists the compressed
// reference and discards the original. The original upload is removed on
// every exit path; no record is written when recompression fails.
func UploadImage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("profile")
		if err != nil {
			respondError(c, http.StatusBadRequest, "No image file provided!")
			return
		}

		originalName, err := saveUpload(file)
		if err != nil {
			log.Println("UploadImage save error:", err)
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		defer func() {
			if err := safeDeleteUpload(originalName); err != nil {
				log.Printf("UploadImage original cleanup failed: %v", err)
			}
		}()

		log.Printf("[IMAGE] [INFO] original image size: %.2f KB", fileSizeKB(originalName))

		detected, err := mimetype.DetectFile(uploadPath(originalName))
		if err != nil || !strings.HasPrefix(detected.String(), "image/") {
			log.Println("UploadImage content check failed:", err)
			respondError(c, http.StatusUnprocessableEntity, "Error uploading image!")
			return
		}

		compressedName, err := compressUpload(originalName)
		if err != nil {
			log.Println("UploadImage compress error:", err)
			respondError(c, http.StatusUnprocessableEntity, "Error uploading image!")
			return
		}

		log.Printf("[IMAGE] [INFO] compressed image size: %.2f KB", fileSizeKB(compressedName))

		now := time.Now()
		image := models.CompressedImage{
			Profile:   compressedName,
			CreatedAt: now,
			UpdatedAt: now,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("imagecompresses").InsertOne(ctx, image)
		if err != nil {
			log.Println("UploadImage insert error:", err)
			if cleanupErr := safeDeleteUpload(compressedName); cleanupErr != nil {
				log.Printf("UploadImage compressed cleanup failed: %v", cleanupErr)
			}
			respondServerError(c, err)
			return
		}

		image.ID = res.InsertedID.(primitive.ObjectID)
		respondData(c, http.StatusCreated, "Image uploaded and saved successfully!", image)
	}
}
