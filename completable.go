package lsprpc

import (
	"encoding/json"
	"runtime"
	"sync"
)

// completableState is the three-state lifecycle of a
// ResponseCompletable: NEW -> COMPLETED is the only valid transition;
// NEW -> dropped-unfinished is a bug.
type completableState int32

const (
	completableNew completableState = iota
	completableCompleted
)

// OnResponseFunc is invoked exactly once when a ResponseCompletable is
// completed. result is nil for a notification's completion: no bytes
// should be written in that case.
type OnResponseFunc func(result *JsonRpcResponse)

// ResponseCompletable is the one-shot promise bound to one inbound
// request - including notifications, which still get one so handler
// code does not need to special-case them - and must be completed
// exactly once.
type ResponseCompletable struct {
	id         *RpcID
	onResponse OnResponseFunc

	mu        sync.Mutex
	state     completableState
	finalizer *struct{} // unused: the drop-detection finalizer is attached to the completable itself
}

// NewResponseCompletable constructs a completable for a request with
// the given id (nil for a notification) and callback. A finalizer is
// attached so that dropping it without completion is caught; this is
// a best-effort safety net, not a guarantee, since Go finalizers are
// not guaranteed to run before process exit.
func NewResponseCompletable(id *RpcID, onResponse OnResponseFunc) *ResponseCompletable {
	c := &ResponseCompletable{id: id, onResponse: onResponse}
	// The finalizer takes the completable as its argument instead of
	// capturing it, so the closure does not keep c reachable.
	runtime.SetFinalizer(c, func(c *ResponseCompletable) {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state != completableCompleted {
			panic("lsprpc: ResponseCompletable dropped without calling Complete/CompleteWithError")
		}
	})
	return c
}

// markCompleted transitions NEW -> COMPLETED, panicking if this
// completable was already completed (programmer error).
func (c *ResponseCompletable) markCompleted() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == completableCompleted {
		panic("lsprpc: ResponseCompletable completed more than once")
	}
	c.state = completableCompleted
}

// Complete resolves the completable:
//
//   - result == nil means this is a notification completion: the
//     callback fires with nil and no bytes are written.
//   - result != nil and the original id was present: the callback
//     fires with a JsonRpcResponse carrying that id and result.
//   - result != nil but the original id was nil (a notification
//     handler tried to return a value): the callback fires with an
//     InvalidRequest error response with id Null, guarding against
//     handler authors returning a result for a notification.
func (c *ResponseCompletable) Complete(result *ResponseResult) {
	c.markCompleted()

	if result == nil {
		c.onResponse(nil)
		return
	}

	if c.id != nil {
		c.onResponse(&JsonRpcResponse{ID: *c.id, Result: *result})
		return
	}

	c.onResponse(&JsonRpcResponse{
		ID:     NullID,
		Result: NewErrorResult(NewInvalidRequestError("Property `id` not provided for request.")),
	})
}

// CompleteWithError is shorthand for Complete(&ResponseResult{...})
// with an error result.
func (c *ResponseCompletable) CompleteWithError(err *RpcError) {
	res := NewErrorResult(err)
	c.Complete(&res)
}

// SyncHandleRequest decodes params into a P, invokes fn, and completes
// with the mapped ServiceResult. A params-decode failure
// completes with InvalidParams instead of invoking fn.
func SyncHandleRequest[P any, R any](c *ResponseCompletable, params RequestParams, fn func(P) (R, *ServiceError)) {
	var p P
	if err := decodeParams(params, &p); err != nil {
		c.CompleteWithError(NewInvalidParamsError(err.Error()))
		return
	}

	result, svcErr := fn(p)
	if svcErr != nil {
		res := NewErrorResult(svcErr.ToRpcError())
		c.Complete(&res)
		return
	}

	res := NewResult(result)
	c.Complete(&res)
}

// SyncHandleNotification decodes params into a P, invokes fn for its
// side effects, and completes with a notification completion.
func SyncHandleNotification[P any](c *ResponseCompletable, params RequestParams, fn func(P)) {
	var p P
	if err := decodeParams(params, &p); err != nil {
		// A malformed notification still needs its completable
		// resolved; there is no id to report InvalidParams against,
		// so this simply suppresses the call and completes silently
		// (no bytes are ever written for a notification).
		c.Complete(nil)
		return
	}
	fn(p)
	c.Complete(nil)
}

// decodeParams converts RequestParams to JSON (Object -> object,
// Array -> array, None -> null) and unmarshals into out.
func decodeParams(params RequestParams, out interface{}) error {
	return json.Unmarshal(params.JSON(), out)
}
