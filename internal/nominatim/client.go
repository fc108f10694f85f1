package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/kidspots/kidspots-api/internal/domain"
)

const (
	maxResults = 5

	// Nominatim's usage policy discourages repeat identical lookups, so
	// results are cached briefly in process.
	cacheTTL = 5 * time.Minute
)

// result mirrors the fields we read from a Nominatim search hit. Lat/lon
// arrive as strings.
type result struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Client geocodes free-text queries against a Nominatim instance.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	cache     *gocache.Cache
}

func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: 15 * time.Second},
		cache:     gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Search returns up to five locations in the provider's relevance order.
// An empty slice is a valid outcome meaning "no match", not an error.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Location, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]domain.Location), nil
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(maxResults))
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: search %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var results []result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("nominatim: decode response: %w", err)
	}

	locations := make([]domain.Location, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lng, lngErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		locations = append(locations, domain.Location{
			Query:       query,
			Lat:         lat,
			Lng:         lng,
			DisplayName: r.DisplayName,
		})
	}

	c.cache.Set(key, locations, gocache.DefaultExpiration)
	return locations, nil
}
