package lock

import (
	"context"
	"testing"
)

func TestNoopLocker(t *testing.T) {
	unlock, err := NoopLocker{}.Lock(context.Background(), "refund:1")
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	unlock()
}
