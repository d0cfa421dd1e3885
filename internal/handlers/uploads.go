package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var uploadRoot = "uploads"

// InitUploads sets the storage directory and creates it if needed. Called
// once during startup; safe to call again.
func InitUploads(dir string) error {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(trimmed, 0o755); err != nil {
		return err
	}
	uploadRoot = trimmed
	return nil
}

func uploadPath(name string) string {
	return filepath.Join(uploadRoot, name)
}

// saveUpload stores one multipart file under a fresh name and returns the
// stored filename. Only common image extensions are accepted and files are
// capped at 5MB.
func saveUpload(file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	allowedExtensions := map[string]struct{}{
		".jpg":  {},
		".jpeg": {},
		".png":  {},
		".webp": {},
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	const maxImageSize = 5 << 20
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}

	filename := primitive.NewObjectID().Hex() + extension
	fullPath := uploadPath(filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] saveUpload: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return filename, nil
}

// safeDeleteUpload removes a stored file by name. Names carrying path
// separators or traversal segments are refused so a crafted document value
// can never reach outside the upload directory.
func safeDeleteUpload(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil
	}

	if trimmed != filepath.Base(trimmed) || trimmed == "." || trimmed == ".." {
		return fmt.Errorf("refusing to delete non-upload path: %s", name)
	}

	if err := os.Remove(uploadPath(trimmed)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return nil
}
