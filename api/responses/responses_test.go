package responses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/nvteo/bakeshop-backend/pkg/errors"
)

func TestWriteJSONListPage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, ListPage{Data: []string{"flan"}, Total: 1})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Data  []string `json:"data"`
		Total int64    `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || len(body.Data) != 1 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestWriteErrorMapsCodeToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{pkgerrors.New(pkgerrors.CodeValidation, "bad input"), http.StatusBadRequest},
		{pkgerrors.New(pkgerrors.CodeUnauthorized, "no token"), http.StatusUnauthorized},
		{pkgerrors.New(pkgerrors.CodeForbidden, "admins only"), http.StatusForbidden},
		{pkgerrors.New(pkgerrors.CodeNotFound, "missing"), http.StatusNotFound},
		{pkgerrors.New(pkgerrors.CodeConflict, "taken"), http.StatusConflict},
		{pkgerrors.New(pkgerrors.CodeInternal, "boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(context.Background(), nil, rec, tc.err)
		if rec.Code != tc.status {
			t.Fatalf("expected status %d for %v, got %d", tc.status, tc.err, rec.Code)
		}
	}
}

func TestWriteErrorHidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeInternal, "secret database details"))

	var body ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Message == "secret database details" {
		t.Fatal("internal messages must not leak")
	}
}

func TestWriteErrorUntypedBecomesInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, context.DeadlineExceeded)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
