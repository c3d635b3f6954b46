// Package supabase is a minimal client for the hosted auth/profile backend:
// the GoTrue auth endpoints and the PostgREST rows that hold user profiles.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to one Supabase project.
type Client struct {
	BaseURL    string
	AnonKey    string
	ServiceKey string
	Client     *http.Client
}

func NewClient(baseURL, anonKey, serviceKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		AnonKey:    anonKey,
		ServiceKey: serviceKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do sends a JSON request with the project api key and the given bearer
// token, returning the raw status and body.
func (c *Client) do(ctx context.Context, method, path, bearer string, payload interface{}, extraHeaders map[string]string) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.AnonKey)
	if bearer == "" {
		bearer = c.ServiceKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	res, err := c.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, resBody, nil
}
