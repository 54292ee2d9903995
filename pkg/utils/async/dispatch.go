package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs fn in a new goroutine detached from the caller's lifecycle.
// The handler gets a fresh background context that keeps the ctxlog logger
// of the original context but not its cancellation. Panics are recovered and
// logged with a stack trace; returned errors are logged as well.
func Dispatch(ctx context.Context, fn func(ctx context.Context) error) {
	newCtx := detach(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(newCtx).Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()),
				)
			}
		}()

		if err := fn(newCtx); err != nil {
			ctxlog.From(newCtx).Error("error in async handler", "error", err)
		}
	}()
}

// detach returns a background context carrying over the logger from ctx.
func detach(ctx context.Context) context.Context {
	return ctxlog.With(context.Background(), ctxlog.From(ctx))
}
