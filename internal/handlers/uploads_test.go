package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupUploadDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := InitUploads(dir); err != nil {
		t.Fatalf("InitUploads failed: %v", err)
	}
	return dir
}

func multipartFileRequest(t *testing.T, field, filename string, content []byte) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing form file failed: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestSaveUploadStoresFile(t *testing.T) {
	dir := setupUploadDir(t)

	c := multipartFileRequest(t, "image", "pic.png", []byte("not-really-a-png"))
	file, err := c.FormFile("image")
	if err != nil {
		t.Fatalf("FormFile failed: %v", err)
	}

	name, err := saveUpload(file)
	if err != nil {
		t.Fatalf("saveUpload returned error: %v", err)
	}
	if filepath.Ext(name) != ".png" {
		t.Fatalf("expected stored name to keep extension, got %s", name)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}

func TestSaveUploadRejectsUnsupportedExtension(t *testing.T) {
	setupUploadDir(t)

	c := multipartFileRequest(t, "image", "payload.txt", []byte("hello"))
	file, err := c.FormFile("image")
	if err != nil {
		t.Fatalf("FormFile failed: %v", err)
	}

	if _, err := saveUpload(file); err == nil {
		t.Fatal("expected error for .txt upload")
	}
}

func TestSafeDeleteUploadRefusesTraversal(t *testing.T) {
	setupUploadDir(t)

	for _, name := range []string{"../evil.png", "a/b.png", "..", "."} {
		if err := safeDeleteUpload(name); err == nil {
			t.Fatalf("expected refusal for %q", name)
		}
	}
}

func TestSafeDeleteUploadMissingFileIsNoop(t *testing.T) {
	setupUploadDir(t)

	if err := safeDeleteUpload("does-not-exist.jpg"); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}

func TestSafeDeleteUploadRemovesFile(t *testing.T) {
	dir := setupUploadDir(t)

	target := filepath.Join(dir, "gone.jpg")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture failed: %v", err)
	}

	if err := safeDeleteUpload("gone.jpg"); err != nil {
		t.Fatalf("safeDeleteUpload returned error: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("expected file to be removed")
	}
}
