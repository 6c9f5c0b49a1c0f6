package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/logger"
	"food-delivery/internal/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: models.ValidationError{Field: "quantity", Message: "quantity must be at least 1"}, wantStatus: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("create: %w", models.ValidationError{Field: "x", Message: "y"}), wantStatus: http.StatusBadRequest},
		{name: "not found", err: fmt.Errorf("order 7: %w", models.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "conflict", err: fmt.Errorf("%w: email already exists", models.ErrConflict), wantStatus: http.StatusConflict},
		{name: "internal", err: errors.New("connection refused"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := StatusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.NotEmpty(t, message)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, message, "connection refused")
			}
		})
	}
}

func TestWithLoggingPropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("test", "debug", &buf)

	var seen string
	h := WithLogging(log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logger.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})

	assert.Contains(t, buf.String(), `"action":"request_completed"`)
	assert.Contains(t, buf.String(), `"status_code":418`)
}

func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorResponse(rec, http.StatusNotFound, "Not found", "req-1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Not found", body["error"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Quantity int `json:"quantity"`
	}

	tests := []struct {
		name        string
		contentType string
		body        string
		wantErr     bool
	}{
		{name: "valid", contentType: "application/json", body: `{"quantity": 2}`},
		{name: "charset param", contentType: "application/json; charset=utf-8", body: `{"quantity": 2}`},
		{name: "no content type", body: `{"quantity": 2}`},
		{name: "wrong content type", contentType: "text/plain", body: `{"quantity": 2}`, wantErr: true},
		{name: "unknown field", contentType: "application/json", body: `{"qty": 2}`, wantErr: true},
		{name: "malformed", contentType: "application/json", body: `{"quantity":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			var p payload
			err := DecodeJSON(req, &p)
			if tt.wantErr {
				assert.True(t, models.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, p.Quantity)
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "42", want: 42},
		{raw: "0", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "9999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.SetPathValue("id", tt.raw)

			got, err := PathID(req, "id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
