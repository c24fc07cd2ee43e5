package lsprpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseRequest_ValidRequest(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"rootUri":"file:///x"}}`))
	require.Nil(t, rpcErr)
	require.NotNil(t, req)

	assert.Equal(t, "initialize", req.Method)
	require.NotNil(t, req.ID)
	assert.Equal(t, NumberID(1), *req.ID)
	assert.Equal(t, ParamsObject, req.Params.Kind)
	assert.False(t, req.IsNotification())
}

func Test_ParseRequest_ValidNotification(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"2.0","method":"exit"}`))
	require.Nil(t, rpcErr)
	require.NotNil(t, req)

	assert.Nil(t, req.ID)
	assert.True(t, req.IsNotification())
	assert.Equal(t, ParamsNone, req.Params.Kind)
}

func Test_ParseRequest_MalformedJSON(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{`))
	assert.Nil(t, req)
	require.NotNil(t, rpcErr)
	assert.Equal(t, int64(ParseError), rpcErr.Code)
	assert.Contains(t, rpcErr.Message, "Invalid JSON was received by the server:")
}

func Test_ParseRequest_RootNotObject(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`[1,2,3]`))
	assert.Nil(t, req)
	require.NotNil(t, rpcErr)
	assert.Equal(t, int64(InvalidRequest), rpcErr.Code)
	assert.Contains(t, rpcErr.Message, "root value is not an Object.")
}

func Test_ParseRequest_MissingJsonrpc(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"method":"m"}`))
	assert.Nil(t, req)
	require.NotNil(t, rpcErr)
	assert.Equal(t, int64(InvalidRequest), rpcErr.Code)
}

func Test_ParseRequest_WrongJsonrpcVersion(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"1.0","method":"m"}`))
	assert.Nil(t, req)
	require.NotNil(t, rpcErr)
	assert.Contains(t, rpcErr.Message, `Property `+"`jsonrpc`"+` is not "2.0". Got "1.0".`)
}

func Test_ParseRequest_MissingMethod(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"2.0","id":1}`))
	assert.Nil(t, req)
	require.NotNil(t, rpcErr)
	assert.Equal(t, int64(InvalidRequest), rpcErr.Code)
}

func Test_ParseRequest_InvalidID(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"2.0","id":true,"method":"m"}`))
	assert.Nil(t, req)
	require.NotNil(t, rpcErr)
	assert.Contains(t, rpcErr.Message, "Property `id` not a String or integer.")
}

func Test_ParseRequest_NullIDIsNotification(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"2.0","id":null,"method":"m"}`))
	require.Nil(t, rpcErr)
	require.NotNil(t, req)
	assert.Nil(t, req.ID)
}

func Test_ParseRequest_InvalidParams(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":"m","params":"nope"}`))
	assert.Nil(t, req)
	require.NotNil(t, rpcErr)
	assert.Contains(t, rpcErr.Message, "Property `params` must be an Object, Array, or null.")
}

func Test_ParseRequest_MissingParamsIsNone(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":"m"}`))
	require.Nil(t, rpcErr)
	require.NotNil(t, req)
	assert.Equal(t, ParamsNone, req.Params.Kind)
}

func Test_ParseRequest_NullParamsIsNone(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"2.0","id":1,"method":"m","params":null}`))
	require.Nil(t, rpcErr)
	require.NotNil(t, req)
	assert.Equal(t, ParamsNone, req.Params.Kind)
}

func Test_ParseRequest_IDAtUint64MaxDoesNotTruncate(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"2.0","id":18446744073709551615,"method":"m"}`))
	require.Nil(t, rpcErr)
	require.NotNil(t, req)
	require.NotNil(t, req.ID)
	assert.Equal(t, NumberID(18446744073709551615), *req.ID)
}

func Test_ParseRequest_StringID(t *testing.T) {
	req, rpcErr := ParseRequest([]byte(`{"jsonrpc":"2.0","id":"req-1","method":"m"}`))
	require.Nil(t, rpcErr)
	require.NotNil(t, req)
	require.NotNil(t, req.ID)
	assert.Equal(t, StringID("req-1"), *req.ID)
}
