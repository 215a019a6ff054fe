package llm

import (
	"context"
	"sync"
)

// ScriptedClient is a test double that replays canned responses in order.
// An empty script or an entry whose Err is non-nil simulates service
// failure.
type ScriptedClient struct {
	mu       sync.Mutex
	script   []ScriptedReply
	Requests []Request
}

// ScriptedReply is one canned completion.
type ScriptedReply struct {
	Text string
	Err  error
}

// NewScriptedClient creates a client that answers with the given replies in
// sequence.
func NewScriptedClient(replies ...ScriptedReply) *ScriptedClient {
	return &ScriptedClient{script: replies}
}

// Complete pops the next scripted reply, recording the request for
// assertions.
func (c *ScriptedClient) Complete(_ context.Context, req Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Requests = append(c.Requests, req)

	if len(c.script) == 0 {
		return "", ErrCompletion
	}
	next := c.script[0]
	c.script = c.script[1:]
	if next.Err != nil {
		return "", next.Err
	}
	return next.Text, nil
}
