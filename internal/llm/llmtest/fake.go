// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"

	"github.com/mentra/group-booking/internal/llm"
)

// ErrNoReply is returned when the script runs out of replies.
var ErrNoReply = errors.New("llmtest: no scripted reply")

// Reply is one scripted answer: Content is returned unless Err is set.
type Reply struct {
	Content string
	Err     error
}

// Client answers requests from a queue of replies and records every request.
type Client struct {
	mu       sync.Mutex
	replies  []Reply
	requests []llm.CompletionRequest
}

// New returns a client that answers with replies in order.
func New(replies ...Reply) *Client {
	return &Client{replies: replies}
}

// Text is shorthand for a successful reply.
func Text(content string) Reply {
	return Reply{Content: content}
}

// Fail is shorthand for a failing reply.
func Fail(err error) Reply {
	return Reply{Err: err}
}

// Push appends replies to the script.
func (c *Client) Push(replies ...Reply) {
	c.mu.Lock()
	c.replies = append(c.replies, replies...)
	c.mu.Unlock()
}

// Requests returns a copy of every request received so far.
func (c *Client) Requests() []llm.CompletionRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.CompletionRequest(nil), c.requests...)
}

// Calls returns the number of requests received.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// Name returns the provider name.
func (c *Client) Name() string { return "fake" }

// Models returns a single fake model.
func (c *Client) Models() []string { return []string{"fake-model"} }

// Complete pops the next scripted reply.
func (c *Client) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	c.mu.Lock()
	c.requests = append(c.requests, *req)
	if len(c.replies) == 0 {
		c.mu.Unlock()
		return nil, ErrNoReply
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return &llm.CompletionResponse{Content: r.Content, Model: "fake-model", StopReason: "stop"}, nil
}

// CompleteStream delivers the scripted reply as a single token.
func (c *Client) CompleteStream(ctx context.Context, req *llm.CompletionRequest, callback llm.StreamCallback) (*llm.CompletionResponse, error) {
	resp, err := c.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := callback(resp.Content, 0); err != nil {
		return nil, err
	}
	return resp, nil
}
