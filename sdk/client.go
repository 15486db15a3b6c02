package sdk

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

// Client is a JSON-RPC client for a catalogd server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	nextID     int
}

// NewClient creates a client for a TCP server, e.g. "http://localhost:7425".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		nextID:     1,
	}
}

// NewClientUnix creates a client that talks HTTP over a Unix domain socket.
func NewClientUnix(socketPath string) *Client {
	dial := func(ctx context.Context, network, addr string) (net.Conn, error) {
		return net.Dial("unix", socketPath)
	}
	transport := &http.Transport{
		DialContext:         dial,
		DisableCompression:  true,
		MaxIdleConnsPerHost: 2,
	}
	return &Client{
		baseURL:    "http://unix",
		httpClient: &http.Client{Transport: transport},
		nextID:     1,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
	ID      int             `json:"id"`
}

// RPCError is a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

func (c *Client) call(method string, params any, result any) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      c.nextID,
	}
	c.nextID++

	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/rpc", bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var rpcResp rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return rpcResp.Error
	}

	if result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}

	return nil
}

// PutTable creates or updates a table entity.
func (c *Client) PutTable(table Table) (*Table, error) {
	var result Table
	if err := c.call("catalog.putTable", PutTableParams{Table: table}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTable fetches a table entity by UUID.
func (c *Client) GetTable(id string) (*Table, error) {
	var result Table
	if err := c.call("catalog.getTable", GetTableParams{ID: id}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTableByName fetches a table entity by fully qualified name.
func (c *Client) GetTableByName(fqn string) (*Table, error) {
	var result Table
	if err := c.call("catalog.getTableByName", GetTableByNameParams{FullyQualifiedName: fqn}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListTables returns one page of the catalog.
func (c *Client) ListTables(limit int, after string) (*TableList, error) {
	var result TableList
	if err := c.call("catalog.listTables", ListTablesParams{Limit: limit, After: after}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteTable removes a table entity by UUID.
func (c *Client) DeleteTable(id string) error {
	var result DeleteTableResult
	return c.call("catalog.deleteTable", DeleteTableParams{ID: id}, &result)
}

// RelatedTables returns the neighbors of a table and the rendered panel.
func (c *Client) RelatedTables(fqn string) (*RelatedTablesResult, error) {
	var result RelatedTablesResult
	if err := c.call("catalog.relatedTables", RelatedTablesParams{FullyQualifiedName: fqn}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Events opens the server's event stream. Frames arrive on the returned
// channel until ctx is cancelled or the connection drops, after which the
// channel is closed. Heartbeat comments are filtered out.
func (c *Client) Events(ctx context.Context) (<-chan Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create event stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to open event stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("event stream returned status %d", resp.StatusCode)
	}

	ch := make(chan Event, 8)
	go func() {
		defer close(ch)
		defer func() {
			_ = resp.Body.Close()
		}()

		var evt Event
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case line == "":
				if evt.Name == "" && len(evt.Data) == 0 {
					continue
				}
				select {
				case ch <- evt:
				case <-ctx.Done():
					return
				}
				evt = Event{}
			case strings.HasPrefix(line, "event: "):
				evt.Name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				evt.Data = json.RawMessage(strings.TrimPrefix(line, "data: "))
			}
			// id fields and comment lines carry no payload
		}
	}()
	return ch, nil
}

// Health reports whether the server answers its healthcheck endpoint.
func (c *Client) Health() bool {
	resp, err := c.httpClient.Get(c.baseURL + "/healthcheck")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false
	}
	return resp.StatusCode == http.StatusOK && string(body) == "ok"
}
