package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags, out := log.Flags(), log.Writer()
	log.SetFlags(0)
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetFlags(flags)
		log.SetOutput(out)
	})
	return &buf
}

func TestLog_WritesJSON(t *testing.T) {
	buf := captureLog(t)

	ctx := WithRequestID(context.Background(), "req-1")
	f := FromContext(ctx)
	f.OrderID = "o1"
	f.Provider = "razorpay"
	f.Step = "verify"
	f.Status = "paid"
	f.DurationMS = 12
	Log(f)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "storefront", got["service"])
	assert.Equal(t, "req-1", got["request_id"])
	assert.Equal(t, "o1", got["order_id"])
	assert.Equal(t, "razorpay", got["provider"])
	assert.Equal(t, "verify", got["step"])
	assert.Equal(t, "paid", got["status"])
	assert.EqualValues(t, 12, got["duration_ms"])
	assert.NotEmpty(t, got["timestamp"])
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	buf := captureLog(t)

	Log(Fields{Step: "startup"})

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, Service, got["service"])
	assert.NotContains(t, got, "order_id")
	assert.NotContains(t, got, "request_id")
}

func TestRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}
