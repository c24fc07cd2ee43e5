package lsprpc

// ServiceError is the error carrier handler code returns:
// an unsigned 32-bit code, a message, and a typed data payload.
// Reserved JSON-RPC codes (-32768..-32000) are not checked here; since
// the unsigned code is widened to int64 without reinterpretation, a
// ServiceError's wire code is never negative and so never falls in
// that range.
type ServiceError struct {
	Code    uint32
	Message string
	Data    interface{}
}

// NewServiceError builds a ServiceError.
func NewServiceError(code uint32, message string, data interface{}) *ServiceError {
	return &ServiceError{Code: code, Message: message, Data: data}
}

// ToRpcError converts a ServiceError to its wire RpcError form. The
// code is widened to signed 64-bit verbatim (no narrowing from a plain
// int code field) and Data is always present - even a nil Data value
// is carried through, rather than omitted, so a handler's deliberately
// empty data still shows up on the wire as an explicit null.
func (e *ServiceError) ToRpcError() *RpcError {
	return &RpcError{
		Code:    int64(e.Code),
		Message: e.Message,
		Data:    dataOrNull(e.Data),
	}
}

// dataOrNull wraps nil as an explicit JSON null wrapper so RpcError's
// `json:"data,omitempty"` tag (needed so handler-less errors like
// MethodNotFound omit data entirely) does not also suppress a
// service error's deliberately-empty data.
type jsonNull struct{}

func (jsonNull) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func dataOrNull(data interface{}) interface{} {
	if data == nil {
		return jsonNull{}
	}
	return data
}

// isReservedCode reports whether code falls in the standard JSON-RPC
// reserved range once widened to signed 64-bit.
func isReservedCode(code int64) bool {
	return code >= ServerErrorRangeStart && code <= ServerErrorRangeEnd
}
