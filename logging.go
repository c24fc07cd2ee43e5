package lsprpc

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"
)

// Printer is the ambient logging seam used throughout this package:
// callers plug in their own sink by implementing Printf, rather than
// this package reaching for a global logger.
type Printer interface {
	Printf(format string, v ...interface{})
}

// defaultLogger is used wherever a nil Printer is supplied to a
// constructor, so the package is usable without any logging setup.
var defaultLogger Printer = log.New(os.Stderr, "", log.LstdFlags)

// LoggingMiddleware logs one line per dispatched method: method name,
// dispatch duration, and the error message when the result is an
// error.
func LoggingMiddleware(p Printer) MiddlewareFunc {
	if p == nil {
		p = defaultLogger
	}
	return func(next InvokeFunc) InvokeFunc {
		return func(ctx context.Context, method string, params json.RawMessage) ResponseResult {
			start := time.Now()
			res := next(ctx, method, params)

			errMsg := ""
			if res.Kind == ResultError && res.ErrVal != nil {
				errMsg = res.ErrVal.Message
			}
			p.Printf("method=%s duration=%v err=%s", method, time.Since(start), errMsg)
			return res
		}
	}
}
