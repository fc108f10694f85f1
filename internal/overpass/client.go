package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Element is a raw Overpass result. Nodes carry Lat/Lon directly; ways and
// relations carry either a precomputed Center or a Geometry vertex list.
type Element struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Lat      float64           `json:"lat,omitempty"`
	Lon      float64           `json:"lon,omitempty"`
	Center   *Point            `json:"center,omitempty"`
	Geometry []Point           `json:"geometry,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
}

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type response struct {
	Elements []Element `json:"elements"`
}

// Client talks to an Overpass interpreter endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given interpreter URL. The HTTP timeout
// leaves headroom over the 25s execution budget embedded in the query.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Execute POSTs an Overpass QL query and decodes the returned elements.
// Failures carry the provider name and enough request context to diagnose.
func (c *Client) Execute(ctx context.Context, query string) ([]Element, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("overpass: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass: execute query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass: unexpected status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("overpass: decode response: %w", err)
	}
	return body.Elements, nil
}
