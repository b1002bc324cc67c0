package goroutine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSafeGoWithContext_RecoversPanic(t *testing.T) {
	done := make(chan struct{})

	SafeGoWithContext(context.Background(), "test", func(ctx context.Context) {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}

func TestSafeGoWithContext_PassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})

	SafeGoWithContext(ctx, "test", func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	})
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("goroutine ignored cancellation")
	}
	assert.Error(t, ctx.Err())
}
