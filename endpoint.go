package lsprpc

import (
	"context"
	"encoding/json"
	"io"
)

// RequestHandler is the contract every handler registered with an
// Endpoint must satisfy: HandleRequest must, exactly once,
// call one of completable's Complete* methods, either synchronously or
// after moving completable to another goroutine.
type RequestHandler interface {
	HandleRequest(ctx context.Context, method string, params RequestParams, completable *ResponseCompletable)
}

// MessageObserver receives a copy of every raw JSON-RPC message payload
// this endpoint reads or writes (the bytes between the Content-Length
// headers, not the framing itself), in the order observed. Typically
// wired to wsmirror.Mirror.Publish for diagnostic tracing. A nil
// MessageObserver disables observation.
type MessageObserver func(payload []byte)

// EndpointOptions configures an Endpoint; the zero value is usable.
type EndpointOptions struct {
	// QueueCapacity bounds the output agent's task queue. 0 selects
	// defaultQueueCapacity.
	QueueCapacity int

	// Logger receives diagnostic lines (notification completions,
	// write failures). nil selects the package default.
	Logger Printer

	// Observer, if set, is invoked with every inbound message payload
	// HandleMessage receives and every outbound payload this endpoint
	// writes or originates.
	Observer MessageObserver
}

// Endpoint is the concurrent JSON-RPC message processor:
// it owns the request-handler table, the output agent, and the public
// handle_message/send_notification/shutdown API.
type Endpoint struct {
	handler  RequestHandler
	agent    *OutputAgent
	logger   Printer
	pending  *pendingRequests
	observer MessageObserver
}

// NewEndpoint constructs an Endpoint bound to handler. Start must be
// called before any message is processed, so the output agent has a
// writer to own.
func NewEndpoint(handler RequestHandler, opts EndpointOptions) *Endpoint {
	logger := opts.Logger
	if logger == nil {
		logger = defaultLogger
	}
	return &Endpoint{
		handler:  handler,
		agent:    NewOutputAgent(opts.QueueCapacity, logger),
		logger:   logger,
		pending:  newPendingRequests(),
		observer: opts.Observer,
	}
}

// observe hands payload to the configured MessageObserver, if any.
func (e *Endpoint) observe(payload []byte) {
	if e.observer != nil {
		e.observer(payload)
	}
}

// Start begins running the endpoint's output agent against the writer
// produced by provider.
func (e *Endpoint) Start(provider WriterProvider) {
	e.agent.Start(provider)
}

// HandleMessage parses and dispatches one inbound message.
// Parse and InvalidRequest failures emit an error response with id
// Null directly; a successfully parsed request is handed to
// HandleRequest.
func (e *Endpoint) HandleMessage(text []byte) {
	e.HandleMessageContext(context.Background(), text)
}

// HandleMessageContext is HandleMessage with an explicit context,
// propagated to the registered RequestHandler.
func (e *Endpoint) HandleMessageContext(ctx context.Context, text []byte) {
	e.observe(text)

	req, parseErr := ParseRequest(text)
	if parseErr != nil {
		e.writeResponse(&JsonRpcResponse{ID: NullID, Result: NewErrorResult(parseErr)})
		return
	}
	e.HandleRequest(ctx, *req)
}

// HandleRequest constructs a ResponseCompletable for req and dispatches
// to the registered RequestHandler.
func (e *Endpoint) HandleRequest(ctx context.Context, req JsonRpcRequest) {
	completable := NewResponseCompletable(req.ID, func(resp *JsonRpcResponse) {
		if resp == nil {
			// Notification completion: nothing is written, only
			// logged.
			e.logger.Printf("method=%s notification completed", req.Method)
			return
		}
		e.writeResponse(resp)
	})
	e.handler.HandleRequest(ctx, req.Method, req.Params, completable)
}

// writeResponse serializes resp, observes it, and submits it to the
// output agent. A submission failure (shut down, queue full) is a
// programmer error per spec category 7 and panics immediately rather
// than being swallowed.
func (e *Endpoint) writeResponse(resp *JsonRpcResponse) {
	payload, err := resp.Serialize()
	if err != nil {
		// Programmer error: a handler's result is not representable
		// as JSON.
		panic("lsprpc: response is not representable as JSON: " + err.Error())
	}

	e.observe(payload)

	err = e.agent.TrySubmit(func(w io.Writer) {
		if werr := WriteMessage(w, payload); werr != nil {
			e.logger.Printf("write response failed: %v", werr)
		}
	})
	if err != nil {
		panic("lsprpc: submit response failed: " + err.Error())
	}
}

// DoSendRequest serializes and submits an outbound request this
// endpoint originates, returning a Future. Inbound responses are not
// yet correlated back to outbound requests; the returned Future is a
// stub that never resolves with a real result (see pending.go).
func (e *Endpoint) DoSendRequest(id RpcID, method string, params RequestParams) *Future {
	req := JsonRpcRequest{ID: &id, Method: method, Params: params}
	e.submitRequest(req)
	return e.pending.registerStub(id)
}

// SendNotification serializes and submits an outbound notification
// (an outbound request with no id).
func (e *Endpoint) SendNotification(method string, params RequestParams) {
	e.submitRequest(JsonRpcRequest{Method: method, Params: params})
}

func (e *Endpoint) submitRequest(req JsonRpcRequest) {
	payload, err := req.Serialize()
	if err != nil {
		panic("lsprpc: request is not representable as JSON: " + err.Error())
	}

	e.observe(payload)

	err = e.agent.TrySubmit(func(w io.Writer) {
		if werr := WriteMessage(w, payload); werr != nil {
			e.logger.Printf("write request failed: %v", werr)
		}
	})
	if err != nil {
		panic("lsprpc: submit request failed: " + err.Error())
	}
}

// Shutdown tears down the output agent; any write attempted afterward
// fails task submission, which panics the caller (see writeResponse/
// submitRequest).
func (e *Endpoint) Shutdown() {
	e.agent.ShutdownAndJoin()
}

// IsShutdown reports whether Shutdown has been called.
func (e *Endpoint) IsShutdown() bool {
	return e.agent.IsShutdown()
}

// marshalParamsJSON is a small helper used by callers constructing
// RequestParams from a Go value for DoSendRequest/SendNotification.
func marshalParamsJSON(v interface{}) RequestParams {
	if v == nil {
		return RequestParams{Kind: ParamsNone}
	}
	b, err := json.Marshal(v)
	if err != nil {
		panic("lsprpc: params are not representable as JSON: " + err.Error())
	}
	trimmed := b
	for len(trimmed) > 0 && isSpace(trimmed[0]) {
		trimmed = trimmed[1:]
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return RequestParams{Kind: ParamsArray, Raw: b}
	}
	return RequestParams{Kind: ParamsObject, Raw: b}
}

// ParamsFromValue builds a RequestParams from any Go value (used by
// callers of SendNotification/DoSendRequest that do not already hold a
// RequestParams).
func ParamsFromValue(v interface{}) RequestParams {
	return marshalParamsJSON(v)
}
