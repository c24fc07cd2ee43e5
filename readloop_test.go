package lsprpc

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RunMessageReadLoop_ProcessesUntilEOF(t *testing.T) {
	in := "Content-Length: 41\r\n\r\n" + `{"jsonrpc":"2.0","id":1,"method":"hello"}`
	var out bytes.Buffer

	ep := NewEndpoint(echoHandler{}, EndpointOptions{})
	ep.Start(func() io.Writer { return &out })

	err := RunMessageReadLoop(ep, bufio.NewReader(bytes.NewReader([]byte(in))))
	assert.Equal(t, io.EOF, err)
	assert.True(t, ep.IsShutdown())

	payload, rerr := ReadMessage(bufio.NewReader(&out))
	require.NoError(t, rerr)
	assert.Contains(t, string(payload), `"result":"hello"`)
}

func Test_RunMessageReadLoop_ShutsDownOnFramingError(t *testing.T) {
	in := "garbage without content length\r\n\r\n"
	var out bytes.Buffer

	ep := NewEndpoint(echoHandler{}, EndpointOptions{})
	ep.Start(func() io.Writer { return &out })

	err := RunMessageReadLoop(ep, bufio.NewReader(bytes.NewReader([]byte(in))))
	assert.Equal(t, errMissingContentLength, err)
	assert.True(t, ep.IsShutdown())
}
