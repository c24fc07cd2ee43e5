package lsprpc

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrClientCorrelationUnsupported is the error every Future returned by
// DoSendRequest eventually resolves with: inbound responses to
// outbound requests are not yet correlated by this core.
var ErrClientCorrelationUnsupported = errors.New(
	"lsprpc: client-side request/response correlation is not implemented (stub)")

// Future is the already-resolved placeholder returned by
// DoSendRequest: its Done channel is closed from the start and Result
// always reports ErrClientCorrelationUnsupported. A complete implementation would need an id allocator,
// a pending-requests map (id -> one-shot result sink), and a second
// dispatch path in HandleMessage recognizing inbound responses - this
// type, and pendingRequests below, exist so that future work slots in
// without changing DoSendRequest's signature, but HandleMessage never
// consults pendingRequests today.
type Future struct {
	done chan struct{}
}

// Done returns a channel that is already closed: this stub never waits
// for a real response.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result always reports ErrClientCorrelationUnsupported.
func (f *Future) Result() (json.RawMessage, *RpcError, error) {
	return nil, nil, ErrClientCorrelationUnsupported
}

// pendingRequests is the id -> sink map a non-stub DoSendRequest would
// consult from a response-recognizing HandleMessage path. It is
// populated but never read, matching the stub described above.
type pendingRequests struct {
	mu   sync.Mutex
	byID map[string]*Future
}

func newPendingRequests() *pendingRequests {
	return &pendingRequests{byID: make(map[string]*Future)}
}

func (p *pendingRequests) registerStub(id RpcID) *Future {
	f := &Future{done: closedChan}
	p.mu.Lock()
	p.byID[id.String()] = f
	p.mu.Unlock()
	return f
}

var closedChan = make(chan struct{})

func init() { close(closedChan) }

// NewStringRequestID allocates a collision-resistant string id for an
// outbound request this endpoint originates.
func NewStringRequestID() RpcID {
	return StringID(uuid.NewString())
}
