package lsprpc

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ParseRequest parses the raw text of one JSON-RPC message into a
// JsonRpcRequest, or returns the RpcError that should be sent back
// (with id Null) when the text is not a valid request.
func ParseRequest(text []byte) (*JsonRpcRequest, *RpcError) {
	obj, err := decodeObject(text)
	if err != nil {
		if err == errNotAnObject {
			return nil, NewInvalidRequestError("root value is not an Object.")
		}
		return nil, NewParseError(err.Error())
	}

	version, err := requireString(obj, "jsonrpc")
	if err != nil {
		return nil, NewInvalidRequestError(versionMissingMessage(err))
	}
	if version != Version {
		return nil, NewInvalidRequestError(fmt.Sprintf("Property `jsonrpc` is not \"2.0\". Got %q.", version))
	}

	id, err := parseID(obj)
	if err != nil {
		return nil, NewInvalidRequestError(err.Error())
	}

	method, err := requireString(obj, "method")
	if err != nil {
		return nil, NewInvalidRequestError(err.Error())
	}

	params, err := parseParams(obj)
	if err != nil {
		return nil, NewInvalidRequestError(err.Error())
	}

	return &JsonRpcRequest{ID: id, Method: method, Params: params}, nil
}

// versionMissingMessage returns requireString's message for the
// "jsonrpc" field unchanged (for a missing field, "Property `jsonrpc`
// is missing."); it is a named pass-through, not a special case.
func versionMissingMessage(err error) string {
	return err.Error()
}

// parseID extracts the optional id field: absent or null both yield a
// nil *RpcID (notification); a non-negative integer that fits in
// uint64, or a string, yields the corresponding RpcID; anything else,
// including a negative or fractional number, is InvalidRequest.
func parseID(obj jsonObject) (*RpcID, error) {
	raw, ok := obj["id"]
	if !ok || isJSONNull(raw) {
		return nil, nil
	}

	dec := json.NewDecoder(jsonReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("Property `id` not a String or integer.")
	}

	switch t := v.(type) {
	case string:
		id := StringID(t)
		return &id, nil
	case json.Number:
		n, err := strconv.ParseUint(t.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("Property `id` not a String or integer.")
		}
		id := NumberID(n)
		return &id, nil
	default:
		return nil, fmt.Errorf("Property `id` not a String or integer.")
	}
}

// parseParams extracts the params field: an object or array is carried
// through as-is; a missing key or an explicit null both become
// ParamsNone; any scalar is rejected.
func parseParams(obj jsonObject) (RequestParams, error) {
	raw, ok := obj["params"]
	if !ok || isJSONNull(raw) {
		return RequestParams{Kind: ParamsNone}, nil
	}

	trimmed := raw
	for len(trimmed) > 0 && isSpace(trimmed[0]) {
		trimmed = trimmed[1:]
	}
	if len(trimmed) == 0 {
		return RequestParams{Kind: ParamsNone}, nil
	}

	switch trimmed[0] {
	case '{':
		return RequestParams{Kind: ParamsObject, Raw: raw}, nil
	case '[':
		return RequestParams{Kind: ParamsArray, Raw: raw}, nil
	default:
		return RequestParams{}, fmt.Errorf("Property `params` must be an Object, Array, or null.")
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
