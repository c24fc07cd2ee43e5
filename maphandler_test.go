package lsprpc

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeSync(t *testing.T, h *MapRequestHandler, method string, params RequestParams) *JsonRpcResponse {
	t.Helper()
	id := NumberID(1)
	var got *JsonRpcResponse
	c := NewResponseCompletable(&id, func(r *JsonRpcResponse) { got = r })
	h.HandleRequest(context.Background(), method, params, c)
	return got
}

func Test_MapRequestHandler_AddRequest(t *testing.T) {
	h := NewMapRequestHandler()
	AddRequest(h, "double", func(_ context.Context, p hoverParams) (int, *ServiceError) {
		return p.Line * 2, nil
	})

	got := completeSync(t, h, "double", RequestParams{Kind: ParamsObject, Raw: json.RawMessage(`{"line":4}`)})
	require.NotNil(t, got)
	assert.Equal(t, ResultValue, got.Result.Kind)
	assert.JSONEq(t, `8`, string(got.Result.Value))
}

func Test_MapRequestHandler_AddNotification(t *testing.T) {
	h := NewMapRequestHandler()
	var called bool
	AddNotification(h, "ping", func(_ context.Context, _ struct{}) {
		called = true
	})

	var completedWithNil bool
	c := NewResponseCompletable(nil, func(r *JsonRpcResponse) { completedWithNil = r == nil })
	h.HandleRequest(context.Background(), "ping", RequestParams{Kind: ParamsNone}, c)

	assert.True(t, called)
	assert.True(t, completedWithNil)
}

func Test_MapRequestHandler_MethodNotFound(t *testing.T) {
	h := NewMapRequestHandler()
	got := completeSync(t, h, "nope", RequestParams{Kind: ParamsNone})

	require.NotNil(t, got)
	assert.Equal(t, ResultError, got.Result.Kind)
	assert.Equal(t, int64(MethodNotFound), got.Result.ErrVal.Code)
}

func Test_MapRequestHandler_DuplicateRegistrationPanics(t *testing.T) {
	h := NewMapRequestHandler()
	AddRequest(h, "m", func(_ context.Context, _ struct{}) (int, *ServiceError) { return 0, nil })

	assert.Panics(t, func() {
		AddRequest(h, "m", func(_ context.Context, _ struct{}) (int, *ServiceError) { return 0, nil })
	})
}

func Test_MapRequestHandler_Methods(t *testing.T) {
	h := NewMapRequestHandler()
	AddRequest(h, "a", func(_ context.Context, _ struct{}) (int, *ServiceError) { return 0, nil })
	AddRequest(h, "b", func(_ context.Context, _ struct{}) (int, *ServiceError) { return 0, nil })

	assert.ElementsMatch(t, []string{"a", "b"}, h.Methods())
}

func Test_MapRequestHandler_MiddlewareOrdering(t *testing.T) {
	h := NewMapRequestHandler()
	AddRequest(h, "m", func(_ context.Context, _ struct{}) (int, *ServiceError) { return 1, nil })

	var order []string
	mark := func(name string) MiddlewareFunc {
		return func(next InvokeFunc) InvokeFunc {
			return func(ctx context.Context, method string, params json.RawMessage) ResponseResult {
				order = append(order, name)
				return next(ctx, method, params)
			}
		}
	}
	h.Use(mark("first"), mark("second"))

	got := completeSync(t, h, "m", RequestParams{Kind: ParamsNone})
	require.NotNil(t, got)

	// The most recently registered middleware runs outermost, so it
	// observes the call first.
	assert.Equal(t, []string{"second", "first"}, order)
}

func Test_MapRequestHandler_AddRawHandler(t *testing.T) {
	h := NewMapRequestHandler()
	h.AddRawHandler("raw", func(_ context.Context, _ RequestParams, c *ResponseCompletable) {
		res := NewResult("raw-ok")
		c.Complete(&res)
	})

	got := completeSync(t, h, "raw", RequestParams{Kind: ParamsNone})
	require.NotNil(t, got)
	assert.JSONEq(t, `"raw-ok"`, string(got.Result.Value))
}
