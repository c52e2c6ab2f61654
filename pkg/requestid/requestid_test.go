package requestid

import (
	"context"
	"testing"
)

func TestFromContext_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := FromContext(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
}

func TestFromContext_Missing(t *testing.T) {
	if got := FromContext(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}

func TestNew_Unique(t *testing.T) {
	a, b := New(), New()
	if a == "" || a == b {
		t.Fatalf("expected two distinct ids, got %q and %q", a, b)
	}
}
