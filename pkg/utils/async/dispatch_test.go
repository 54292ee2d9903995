package async_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/gt"

	"github.com/khalilabidd/Project-Hermes/pkg/utils/async"
)

// captureLogger returns a logger writing to a mutex-guarded buffer, plus a
// channel signalled once per emitted record.
func captureLogger() (*slog.Logger, func() string, chan struct{}) {
	var mu sync.Mutex
	var buf bytes.Buffer
	written := make(chan struct{}, 8)

	handler := &notifyHandler{
		inner: slog.NewTextHandler(&lockedWriter{mu: &mu, w: &buf}, &slog.HandlerOptions{
			Level: slog.LevelError,
		}),
		written: written,
	}

	read := func() string {
		mu.Lock()
		defer mu.Unlock()
		return buf.String()
	}
	return slog.New(handler), read, written
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type notifyHandler struct {
	inner   slog.Handler
	written chan struct{}
}

func (h *notifyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *notifyHandler) Handle(ctx context.Context, r slog.Record) error {
	err := h.inner.Handle(ctx, r)
	select {
	case h.written <- struct{}{}:
	default:
	}
	return err
}

func (h *notifyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &notifyHandler{inner: h.inner.WithAttrs(attrs), written: h.written}
}

func (h *notifyHandler) WithGroup(name string) slog.Handler {
	return &notifyHandler{inner: h.inner.WithGroup(name), written: h.written}
}

func TestDispatch_RunsHandler(t *testing.T) {
	done := make(chan struct{})

	async.Dispatch(context.Background(), func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}

func TestDispatch_LogsHandlerError(t *testing.T) {
	logger, read, written := captureLogger()
	ctx := ctxlog.With(context.Background(), logger)

	async.Dispatch(ctx, func(ctx context.Context) error {
		return errors.New("report generation exploded")
	})

	select {
	case <-written:
	case <-time.After(time.Second):
		t.Fatal("error was not logged")
	}
	gt.True(t, strings.Contains(read(), "report generation exploded"))
}

func TestDispatch_RecoversPanic(t *testing.T) {
	logger, read, written := captureLogger()
	ctx := ctxlog.With(context.Background(), logger)

	async.Dispatch(ctx, func(ctx context.Context) error {
		panic("bad render state")
	})

	select {
	case <-written:
	case <-time.After(time.Second):
		t.Fatal("panic was not logged")
	}

	out := read()
	gt.True(t, strings.Contains(out, "panic in async handler"))
	gt.True(t, strings.Contains(out, "bad render state"))
	gt.True(t, strings.Contains(out, "goroutine"))
}

func TestDispatch_DetachesFromCaller(t *testing.T) {
	logger, _, _ := captureLogger()
	ctx, cancel := context.WithCancel(ctxlog.With(context.Background(), logger))

	checked := make(chan error, 1)
	async.Dispatch(ctx, func(newCtx context.Context) error {
		cancel()

		// Detached context must survive the caller's cancellation while
		// keeping its logger.
		if err := newCtx.Err(); err != nil {
			checked <- err
			return nil
		}
		if ctxlog.From(newCtx) == nil {
			checked <- errors.New("logger not carried over")
			return nil
		}
		checked <- nil
		return nil
	})

	select {
	case err := <-checked:
		gt.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("handler did not run")
	}
}
