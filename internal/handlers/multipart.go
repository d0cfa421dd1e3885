package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxMultipartMemory = 32 << 20

func parseBoolValue(value string) (bool, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "on" {
		return true, nil
	}
	return strconv.ParseBool(value)
}

// formFile returns nil without error when the field was simply not sent,
// so callers can treat the file as an optional field.
func formFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) ||
			strings.Contains(err.Error(), "no such file") {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}

func requireMultipart(c *gin.Context) bool {
	if !strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
		respondError(c, http.StatusBadRequest, "multipart/form-data required")
		return false
	}
	return true
}
