package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequireMultipartRejectsOtherContentTypes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/Admin/signup", strings.NewReader(`{"name":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	if requireMultipart(c) {
		t.Fatal("expected requireMultipart to reject a JSON body")
	}
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "multipart/form-data required") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRequireMultipartAcceptsFormData(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/Admin/signup", nil)
	c.Request.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	if !requireMultipart(c) {
		t.Fatal("expected requireMultipart to accept multipart form data")
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected no error response, got %d", w.Code)
	}
}
