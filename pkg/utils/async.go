package utils

import (
	"context"
	"runtime/debug"

	"sales-intel-scryper/pkg/logger"
)

// GoSafe runs fn in a goroutine and recovers from panics so one misbehaving
// parser cannot take down the whole request.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				debug.PrintStack()
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether the context is still live, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context canceled, stopping work", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}
