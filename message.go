package lsprpc

import "encoding/json"

// Version is the only JSON-RPC protocol version this endpoint speaks.
const Version = "2.0"

// Standard JSON-RPC 2.0 error codes. See
// http://www.jsonrpc.org/specification#error_object
const (
	// ParseError: invalid JSON was received by the server.
	ParseError = -32700

	// InvalidRequest: the JSON sent is not a valid Request object.
	InvalidRequest = -32600

	// MethodNotFound: the method does not exist / is not available.
	MethodNotFound = -32601

	// InvalidParams: invalid method parameter(s).
	InvalidParams = -32602

	// InternalError: internal JSON-RPC error.
	InternalError = -32603

	// ServerErrorRangeStart/End bound the range reserved for
	// implementation-defined server errors. Nothing in this package
	// rejects or logs codes in this range.
	ServerErrorRangeStart = -32768
	ServerErrorRangeEnd   = -32000
)

// ParamsKind tags the concrete shape an inbound request's params took
// on the wire.
type ParamsKind int

const (
	// ParamsNone marks params that were absent or null.
	ParamsNone ParamsKind = iota
	// ParamsObject marks a JSON object.
	ParamsObject
	// ParamsArray marks a JSON array.
	ParamsArray
)

// RequestParams is the structured params value carried by a
// JsonRpcRequest: an Object, an Array, or None. Scalars are rejected by
// the parser.
type RequestParams struct {
	Kind ParamsKind
	Raw  json.RawMessage
}

// JSON renders the params back to their wire form: the object/array
// bytes as received, or the literal null for None.
func (p RequestParams) JSON() json.RawMessage {
	if p.Kind == ParamsNone || len(p.Raw) == 0 {
		return json.RawMessage("null")
	}
	return p.Raw
}

// JsonRpcRequest is a parsed inbound JSON-RPC request or notification.
// ID is nil for a notification.
type JsonRpcRequest struct {
	ID     *RpcID
	Method string
	Params RequestParams
}

// IsNotification reports whether this request carries no id.
func (r JsonRpcRequest) IsNotification() bool { return r.ID == nil }

// wireRequest is the exact on-the-wire shape of a request, used only
// for serialization (outbound requests/notifications this endpoint
// originates). Field order is fixed for deterministic output:
// jsonrpc, id, method, params.
type wireRequest struct {
	Version string          `json:"jsonrpc"`
	ID      *RpcID          `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Serialize renders r to its wire JSON form. params is always present
// (even if empty/null); id is omitted entirely only for notifications.
func (r JsonRpcRequest) Serialize() ([]byte, error) {
	return json.Marshal(wireRequest{
		Version: Version,
		ID:      r.ID,
		Method:  r.Method,
		Params:  r.Params.JSON(),
	})
}

// ResponseResultKind tags whether a ResponseResult carries a result
// value or an error.
type ResponseResultKind int

const (
	// ResultValue marks a successful result payload.
	ResultValue ResponseResultKind = iota
	// ResultError marks an error payload.
	ResultError
)

// ResponseResult is exactly one of a JSON result value or an RpcError,
// never both.
type ResponseResult struct {
	Kind   ResponseResultKind
	Value  json.RawMessage
	ErrVal *RpcError
}

// NewResult wraps a successful value. v is marshaled to JSON; callers
// that already hold json.RawMessage should use NewRawResult.
func NewResult(v interface{}) ResponseResult {
	b, err := json.Marshal(v)
	if err != nil {
		// Programmer error: handler produced a value that cannot be
		// represented as JSON. Per category 7, this is fatal.
		panic("lsprpc: result is not representable as JSON: " + err.Error())
	}
	return ResponseResult{Kind: ResultValue, Value: b}
}

// NewRawResult wraps an already-encoded JSON result value.
func NewRawResult(raw json.RawMessage) ResponseResult {
	return ResponseResult{Kind: ResultValue, Value: raw}
}

// NewErrorResult wraps an RpcError.
func NewErrorResult(e *RpcError) ResponseResult {
	return ResponseResult{Kind: ResultError, ErrVal: e}
}

// RpcError is the JSON-RPC 2.0 error object. See
// http://www.jsonrpc.org/specification#error_object
type RpcError struct {
	// Code is a signed 64-bit error code (the wire permits any
	// integer; widened beyond a plain int so a handler-chosen uint32
	// service-error code never overflows).
	Code int64 `json:"code"`

	// Message is a short, single-sentence human description.
	Message string `json:"message"`

	// Data carries additional, server-defined detail. Present whenever
	// the producer set it explicitly (see serviceerror.go for the rule
	// that handler-originated errors always set it).
	Data interface{} `json:"data,omitempty"`
}

func (e *RpcError) Error() string {
	return e.Message
}

// NewParseError builds the standard -32700 error. msg, if non-empty, is
// appended after the standard prefix used throughout this package.
func NewParseError(msg string) *RpcError {
	return &RpcError{Code: ParseError, Message: "Invalid JSON was received by the server: " + msg}
}

// NewInvalidRequestError builds the standard -32600 error with the
// given explanatory suffix.
func NewInvalidRequestError(msg string) *RpcError {
	return &RpcError{Code: InvalidRequest, Message: "The JSON sent is not a valid Request object: " + msg}
}

// NewMethodNotFoundError builds the standard -32601 error.
func NewMethodNotFoundError() *RpcError {
	return &RpcError{Code: MethodNotFound, Message: "The method does not exist / is not available."}
}

// NewInvalidParamsError builds the standard -32602 error with the
// decoder's message appended after the standard prefix, matching the
// prefix discipline of the other standard error constructors in this
// file.
func NewInvalidParamsError(msg string) *RpcError {
	return &RpcError{Code: InvalidParams, Message: "Invalid method parameter(s): " + msg}
}

// NewInternalError builds the standard -32603 error.
func NewInternalError(msg string) *RpcError {
	return &RpcError{Code: InternalError, Message: msg}
}

// JsonRpcResponse is an outbound JSON-RPC response. ID is always
// present on the wire; it is RpcID's Null variant when no
// valid id could be recovered from a malformed request.
type JsonRpcResponse struct {
	ID     RpcID
	Result ResponseResult
}

// wireResponse is the exact on-the-wire shape, field order fixed:
// jsonrpc, id, then result or error.
type wireResponse struct {
	Version string          `json:"jsonrpc"`
	ID      RpcID           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RpcError       `json:"error,omitempty"`
}

// Serialize renders the response to its wire JSON form.
func (r JsonRpcResponse) Serialize() ([]byte, error) {
	w := wireResponse{Version: Version, ID: r.ID}
	if r.Result.Kind == ResultError {
		w.Error = r.Result.ErrVal
	} else {
		w.Result = r.Result.Value
		if w.Result == nil {
			w.Result = json.RawMessage("null")
		}
	}
	return json.Marshal(w)
}

// NewResponseError is a convenience constructor for a response carrying
// an error with the given id, code, message, and optional data.
func NewResponseError(id RpcID, code int64, message string, data interface{}) JsonRpcResponse {
	return JsonRpcResponse{
		ID:     id,
		Result: NewErrorResult(&RpcError{Code: code, Message: message, Data: data}),
	}
}

// MessageKind tags the two outbound message shapes this package knows
// how to serialize uniformly through JsonRpcMessage.
type MessageKind int

const (
	// MessageRequest marks a request or notification.
	MessageRequest MessageKind = iota
	// MessageResponse marks a response.
	MessageResponse
)

// JsonRpcMessage is the tagged union used for all outbound
// serialization: either a Request (possibly a notification)
// or a Response.
type JsonRpcMessage struct {
	Kind     MessageKind
	Request  *JsonRpcRequest
	Response *JsonRpcResponse
}

// Serialize renders the held message to its wire JSON form.
func (m JsonRpcMessage) Serialize() ([]byte, error) {
	if m.Kind == MessageRequest {
		return m.Request.Serialize()
	}
	return m.Response.Serialize()
}
