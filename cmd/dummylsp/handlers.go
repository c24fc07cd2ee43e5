package main

import (
	"context"
	"os"

	"github.com/semrush/lsprpc"
)

// InitializeParams is the minimal subset of LSP's InitializeParams this
// illustrative server cares about. The real method catalogue
// (textDocument/*, workspace/*, ...) is explicitly out of the core's
// scope - this dummy server exists only to prove the core
// wires up end to end, not to be a real language server.
type InitializeParams struct {
	ProcessID *int   `json:"processId"`
	RootURI   string `json:"rootUri"`
}

// InitializeResult is the minimal response to initialize.
type InitializeResult struct {
	Capabilities struct{} `json:"capabilities"`
}

// backend stands in for the outer collaborator a real language server
// would forward these calls to: an actual analysis engine. This one
// does nothing.
type backend struct {
	initialized bool
}

func newBackend() *backend { return &backend{} }

func (b *backend) initialize(_ context.Context, _ InitializeParams) (InitializeResult, *lsprpc.ServiceError) {
	b.initialized = true
	return InitializeResult{}, nil
}

func (b *backend) shutdown(_ context.Context, _ struct{}) (struct{}, *lsprpc.ServiceError) {
	b.initialized = false
	return struct{}{}, nil
}

func (b *backend) exit(_ context.Context, _ struct{}) {
	os.Exit(0)
}

// registerHandlers wires the illustrative initialize/shutdown/exit trio
// into h, the way a real language server would wire its much larger
// method catalogue - this is the one piece of the core's public API
// surface any outer program must exercise to be useful.
func registerHandlers(h *lsprpc.MapRequestHandler, b *backend) {
	lsprpc.AddRequest(h, "initialize", b.initialize)
	lsprpc.AddRequest(h, "shutdown", b.shutdown)
	lsprpc.AddNotification(h, "exit", b.exit)
}
