package goroutine

import (
	"context"
	"log"
	"runtime/debug"

	"github.com/mixaura/agency-backend/internal/logger"
)

// SafeGo запускает горутину с обработкой panic.
func SafeGo(fn func()) {
	go func() {
		defer recoverPanic()
		fn()
	}()
}

// SafeGoWithContext запускает горутину с контекстом и обработкой panic.
func SafeGoWithContext(ctx context.Context, fn func(context.Context)) {
	go func() {
		defer recoverPanic()
		fn(ctx)
	}()
}

// recoverPanic логирует panic со стеком, не роняя процесс.
func recoverPanic() {
	r := recover()
	if r == nil {
		return
	}

	if logger.Log != nil {
		logger.Log.Errorf("panic в горутине: %v\n%s", r, debug.Stack())
		return
	}
	log.Printf("panic в горутине: %v\n%s", r, debug.Stack())
}
