package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusError reports a response whose status was not 200 OK.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

type Client struct {
	HTTP *http.Client
}

// DoJSON sends req once and decodes a 200 OK body into out. There are no retries.
func (c *Client) DoJSON(ctx context.Context, req *http.Request, out any) error {
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
