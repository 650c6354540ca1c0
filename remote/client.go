package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// DefaultAddr is where the host's remote surface listens unless configured
// otherwise.
const DefaultAddr = "127.0.0.1:3030"

// triggerMethod names the host RPC that injects a named event.
const triggerMethod = "world.trigger_event"

// Caller issues one named remote call to the host. The call is atomic from
// the client's point of view: the whole event reaches the host or the call
// fails.
type Caller interface {
	TriggerEvent(ctx context.Context, event Event) error
}

// request is a JSON-RPC request.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// response is a JSON-RPC response.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// triggerParams is the parameter shape of the trigger RPC: the registered
// event type name plus the event value.
type triggerParams struct {
	Event eventRef `json:"event"`
}

type eventRef struct {
	Type  string `json:"type"`
	Value Event  `json:"value"`
}

// Client speaks JSON-RPC 2.0 over HTTP to the host's remote endpoint. It is
// stateless apart from the request ID counter and safe for concurrent use.
type Client struct {
	url    string
	http   *http.Client
	nextID atomic.Int64
}

// NewClient creates a client for the host at addr ("host:port").
func NewClient(addr string) *Client {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Client{
		url:  "http://" + addr + "/",
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// TriggerEvent sends one named event to the host.
func (c *Client) TriggerEvent(ctx context.Context, event Event) error {
	return c.call(ctx, triggerMethod, triggerParams{
		Event: eventRef{Type: EventType, Value: event},
	}, nil)
}

// call performs one JSON-RPC request/response round trip.
func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	id := c.nextID.Add(1)

	body, err := json.Marshal(&request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: host returned %s", method, httpResp.Status)
	}

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var resp response
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("unmarshal result: %w", err)
		}
	}
	return nil
}
