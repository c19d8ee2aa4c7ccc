// Package interrupt implements the fatal-error exit path. An unrecoverable
// resolution failure (missing plugin module, dangling connection reference)
// logs the error and then asks the process to shut down by signalling itself
// with os.Interrupt, so the hosting application's normal signal handling
// drives the teardown.
package interrupt

import (
	"context"
	"os"
	"sync"

	"github.com/vk/botgrid/internal/ctxlog"
)

var (
	mu       sync.Mutex
	signaler = selfInterrupt
)

// selfInterrupt sends os.Interrupt to the current process.
func selfInterrupt() {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return
	}
	_ = p.Signal(os.Interrupt)
}

// SetSignaler replaces the interrupt delivery function and returns a restore
// function. Tests use this to observe the interrupt request without killing
// the test process.
func SetSignaler(fn func()) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := signaler
	signaler = fn
	return func() {
		mu.Lock()
		defer mu.Unlock()
		signaler = prev
	}
}

// Fatal logs msg at error level and requests a process interrupt. It returns
// to the caller, which is expected to propagate its own error; the interrupt
// is a signal to the hosting application, not an abort of the goroutine.
func Fatal(ctx context.Context, msg string, args ...any) {
	ctxlog.FromContext(ctx).Error(msg, args...)
	mu.Lock()
	fn := signaler
	mu.Unlock()
	fn()
}
