package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func adminFormContext(t *testing.T, fields map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/Admin/signup", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMultipartAdminRequest(t *testing.T) {
	c := adminFormContext(t, map[string]string{
		"name":     "  Jane Doe ",
		"email":    "Jane@Example.COM",
		"password": "secret123",
		"role":     "Admin",
		"status":   "true",
	})

	input, err := parseMultipartAdminRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartAdminRequest returned error: %v", err)
	}

	if !input.NameSet || input.Name != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %+v", input)
	}
	if !input.EmailSet || input.Email != "jane@example.com" {
		t.Fatalf("expected lowercased email, got %q", input.Email)
	}
	if !input.PasswordSet || input.Password != "secret123" {
		t.Fatalf("expected password preserved, got %+v", input)
	}
	if !input.RoleSet || input.Role != "Admin" {
		t.Fatalf("expected role Admin, got %q", input.Role)
	}
	if !input.StatusSet || !input.Status {
		t.Fatalf("expected status true, got %+v", input)
	}
	if input.IDSet || input.ProfilePicSet {
		t.Fatalf("expected absent fields to stay unset, got %+v", input)
	}
}

func TestParseMultipartAdminRequestStatusOn(t *testing.T) {
	c := adminFormContext(t, map[string]string{"status": "on"})

	input, err := parseMultipartAdminRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartAdminRequest returned error: %v", err)
	}
	if !input.StatusSet || !input.Status {
		t.Fatalf("expected form checkbox value to parse as true, got %+v", input)
	}
}

func TestParseMultipartAdminRequestBadStatus(t *testing.T) {
	c := adminFormContext(t, map[string]string{"status": "maybe"})

	if _, err := parseMultipartAdminRequest(c); err == nil {
		t.Fatal("expected error for non-boolean status")
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := hashPassword("hunter2", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashPassword returned error: %v", err)
	}
	if hash == "hunter2" {
		t.Fatal("password must not be stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")); err == nil {
		t.Fatal("hash verified a wrong password")
	}
}
