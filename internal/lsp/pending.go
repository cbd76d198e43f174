package lsp

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
)

// pendingReply is the pair of continuations waiting on a server-issued
// request's eventual reply.
type pendingReply struct {
	onResult func(json.RawMessage)
	onError  func(*RPCError)
}

// PendingRequests correlates server-issued requests (this process asking
// the client to do something, e.g. ReadFile) with their eventual replies.
// Request IDs are minted as "ruby-typer-req-N" strings, matching the
// covered core's literal id format, so a reply's id can be matched back to
// exactly one waiting handler.
type PendingRequests struct {
	mu      sync.Mutex
	pending map[string]pendingReply
	counter uint64
}

// NewPendingRequests constructs an empty registry.
func NewPendingRequests() *PendingRequests {
	return &PendingRequests{pending: make(map[string]pendingReply)}
}

// NextID mints a fresh request id and records the continuations to invoke
// when a reply carrying that id arrives.
func (p *PendingRequests) NextID(onResult func(json.RawMessage), onError func(*RPCError)) string {
	n := atomic.AddUint64(&p.counter, 1)
	id := fmt.Sprintf("ruby-typer-req-%d", n)

	p.mu.Lock()
	p.pending[id] = pendingReply{onResult: onResult, onError: onError}
	p.mu.Unlock()

	return id
}

// Resolve dispatches an inbound reply to its waiting handler and forgets
// it. Replies whose id was never registered (or already resolved) are
// silently ignored, since a handler is single-shot by construction.
func (p *PendingRequests) Resolve(id string, msg *Message) {
	p.mu.Lock()
	reply, ok := p.pending[id]
	if ok {
		delete(p.pending, id)
	}
	p.mu.Unlock()

	if !ok {
		return
	}
	if msg.Error != nil {
		if reply.onError != nil {
			reply.onError(msg.Error)
		}
		return
	}
	if reply.onResult != nil {
		reply.onResult(msg.Result)
	}
}

// Len reports how many requests are still awaiting a reply. Exposed for
// tests and debug introspection only.
func (p *PendingRequests) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
