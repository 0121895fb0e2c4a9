package cache

import (
	"context"
	"testing"
)

func TestInitRedisInvalidURL(t *testing.T) {
	if _, err := InitRedis(context.Background(), "redis://bad:url:extra"); err == nil {
		t.Fatal("expected parse error for malformed URL")
	}
}

func TestInitRedisUnreachable(t *testing.T) {
	if _, err := InitRedis(context.Background(), "localhost:1"); err == nil {
		t.Fatal("expected ping failure for unreachable server")
	}
}
