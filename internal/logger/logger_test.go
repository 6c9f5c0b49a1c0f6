package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("web-service", "debug", &buf)

	log.Error("db_query_failed", "Failed to query order", "req-1", errors.New("boom"), map[string]interface{}{
		"order_id": 7,
	})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "Failed to query order", record["msg"])
	assert.Equal(t, "web-service", record["service"])
	assert.Equal(t, "db_query_failed", record["action"])
	assert.Equal(t, "req-1", record["request_id"])

	details, ok := record["details"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 7, details["order_id"])

	errGroup, ok := record["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "boom", errGroup["msg"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("web-service", "info", &buf)

	log.Debug("request_started", "GET /", "req-1", nil)
	assert.Zero(t, buf.Len())

	log.Info("service_started", "started", "req-1", nil)
	assert.NotZero(t, buf.Len())
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestIDFromContext(ctx))

	generated := RequestIDFromContext(context.Background())
	assert.Len(t, generated, 36)
}
