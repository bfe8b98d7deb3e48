package validators

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
)

const maxMultipartMemory = 32 << 20

// ParseMultipartForm buffers the multipart body for field access.
func ParseMultipartForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	return nil
}

// FormString returns the trimmed form field value.
func FormString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// FormInt64 parses an integer form field; empty reads as zero.
func FormInt64(r *http.Request, key string) (int64, error) {
	raw := FormString(r, key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// FormOptionalInt64 parses an integer form field; empty reads as nil.
func FormOptionalInt64(r *http.Request, key string) (*int64, error) {
	raw := FormString(r, key)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

// FormBool parses checkbox-style booleans ("true", "1", "on").
func FormBool(r *http.Request, key string) bool {
	raw := strings.ToLower(FormString(r, key))
	return raw == "true" || raw == "1" || raw == "on"
}

// FormFile returns the named upload or nil when absent.
func FormFile(r *http.Request, key string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(key)
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid file upload").WithDetails(map[string]any{"field": key})
	}
	return file, header, nil
}
