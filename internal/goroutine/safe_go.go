package goroutine

import (
	"context"
	"runtime/debug"

	"github.com/ignatzorin/freelancehub-backend/internal/logger"
)

// SafeGoWithContext запускает фоновую задачу и не даёт панике в ней уронить процесс.
func SafeGoWithContext(ctx context.Context, name string, fn func(context.Context)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.WithComponent(name).Errorf("panic in goroutine: %v\n%s", r, debug.Stack())
			}
		}()
		fn(ctx)
	}()
}
