package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", getRequestID(ctx))
	assert.Equal(t, "", getRequestID(context.Background()))
}

func TestFormatIncludesRequestID(t *testing.T) {
	assert.Equal(t, "[req_id=abc] hello world", format("abc", "hello %s", "world"))
	assert.Equal(t, "hello world", format("", "hello %s", "world"))
}
