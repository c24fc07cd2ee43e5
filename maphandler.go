package lsprpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/thoas/go-funk"
)

// InvokeFunc is a function for processing a single, already-decoded
// JSON-RPC method call synchronously.
type InvokeFunc func(ctx context.Context, method string, params json.RawMessage) ResponseResult

// MiddlewareFunc wraps an InvokeFunc. LoggingMiddleware and
// PrometheusMiddleware both have this shape.
type MiddlewareFunc func(InvokeFunc) InvokeFunc

// RawHandler is registered via AddRawHandler for methods that need
// direct access to their ResponseCompletable - typically because they
// complete asynchronously from another goroutine.
type RawHandler func(ctx context.Context, params RequestParams, completable *ResponseCompletable)

// entry is what MapRequestHandler stores per registered method: either
// a raw completable-taking handler, or a synchronous InvokeFunc
// produced by AddRequest/AddNotification.
type entry struct {
	raw    RawHandler
	invoke InvokeFunc
}

// MapRequestHandler is a RequestHandler that routes by method name to
// registered handlers: a convenience dispatch table built and
// populated at runtime by the calling program.
type MapRequestHandler struct {
	mu         sync.RWMutex
	methods    map[string]entry
	middleware []MiddlewareFunc
}

// NewMapRequestHandler constructs an empty dispatch table.
func NewMapRequestHandler() *MapRequestHandler {
	return &MapRequestHandler{methods: make(map[string]entry)}
}

// Use registers middleware applied, in order, around every method
// added via AddRequest/AddNotification. Methods added via
// AddRawHandler run outside this chain.
func (m *MapRequestHandler) Use(mw ...MiddlewareFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.middleware = append(m.middleware, mw...)
}

// Methods lists the currently registered method names. Used by tests
// and by cmd/dummylsp's diagnostic --list-methods flag.
func (m *MapRequestHandler) Methods() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return funk.Keys(m.methods).([]string)
}

func (m *MapRequestHandler) register(method string, e entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if funk.ContainsString(funk.Keys(m.methods).([]string), method) {
		panic(fmt.Sprintf("lsprpc: method %q already registered", method))
	}
	m.methods[method] = e
}

// AddRequest registers a typed synchronous request handler for method:
// params are decoded into P, fn is invoked, and its ServiceResult is
// mapped into the wire ResponseResult. Go methods cannot
// introduce their own type parameters, so this is a free function
// taking the dispatch table as its first argument, following the same
// convention as the standard library's generic helpers (e.g.
// slices.SortFunc taking the slice as its first argument).
func AddRequest[P any, R any](m *MapRequestHandler, method string, fn func(context.Context, P) (R, *ServiceError)) {
	m.register(method, entry{invoke: func(ctx context.Context, _ string, raw json.RawMessage) ResponseResult {
		var p P
		if err := json.Unmarshal(raw, &p); err != nil {
			return NewErrorResult(NewInvalidParamsError(err.Error()))
		}
		result, svcErr := fn(ctx, p)
		if svcErr != nil {
			return NewErrorResult(svcErr.ToRpcError())
		}
		return NewResult(result)
	}})
}

// AddNotification registers a typed void handler for method: params
// are decoded into P and fn is invoked for its side effects; the
// notification always completes with no response.
func AddNotification[P any](m *MapRequestHandler, method string, fn func(context.Context, P)) {
	m.register(method, entry{invoke: func(ctx context.Context, _ string, raw json.RawMessage) ResponseResult {
		var p P
		if err := json.Unmarshal(raw, &p); err == nil {
			fn(ctx, p)
		}
		return ResponseResult{}
	}})
}

// AddRawHandler registers a raw completable-taking handler for method,
// for methods that need to complete asynchronously.
func (m *MapRequestHandler) AddRawHandler(method string, fn RawHandler) {
	m.register(method, entry{raw: fn})
}

// HandleRequest implements RequestHandler:
// unknown methods complete with MethodNotFound; raw handlers receive
// the completable directly; synchronous handlers run through the
// middleware chain and complete automatically.
func (m *MapRequestHandler) HandleRequest(ctx context.Context, method string, params RequestParams, completable *ResponseCompletable) {
	m.mu.RLock()
	e, ok := m.methods[method]
	mw := m.middleware
	m.mu.RUnlock()

	if !ok {
		completable.CompleteWithError(NewMethodNotFoundError())
		return
	}

	if e.raw != nil {
		e.raw(ctx, params, completable)
		return
	}

	// Each successively-registered middleware wraps the previous
	// chain, so the most recently registered middleware runs
	// outermost.
	invoke := e.invoke
	for _, w := range mw {
		invoke = w(invoke)
	}

	result := invoke(ctx, method, params.JSON())
	if result.Kind == ResultValue && result.Value == nil && result.ErrVal == nil {
		// AddNotification's sentinel zero-value ResponseResult: no
		// response is emitted for a notification.
		completable.Complete(nil)
		return
	}
	completable.Complete(&result)
}
