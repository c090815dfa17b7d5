package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/tidwall/gjson"
)

const googleTimeout = 10 * time.Second

// GoogleClient is the structured lookup branch against the Custom Search
// JSON API.
type GoogleClient struct {
	client   *http.Client
	endpoint string
	apiKey   string
	cseID    string
	limit    int
}

func NewGoogleClient(cfg *config.SearchConfig) *GoogleClient {
	return &GoogleClient{
		client:   &http.Client{Timeout: googleTimeout},
		endpoint: cfg.GoogleEndpoint,
		apiKey:   cfg.GoogleAPIKey,
		cseID:    cfg.GoogleCSEID,
		limit:    clampLimit(cfg.ResultLimit),
	}
}

// The API rejects num outside 1..10.
func clampLimit(n int) int {
	if n <= 0 {
		return 5
	}
	if n > 10 {
		return 10
	}
	return n
}

func (g *GoogleClient) Search(ctx context.Context, query string) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	values := url.Values{}
	values.Set("key", g.apiKey)
	values.Set("cx", g.cseID)
	values.Set("q", query)
	values.Set("num", strconv.Itoa(g.limit))
	req.URL.RawQuery = values.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var results []Result
	gjson.GetBytes(body, "items").ForEach(func(_, item gjson.Result) bool {
		snippet := strings.TrimSpace(item.Get("snippet").String())
		if snippet == "" {
			snippet = "No description available."
		}
		results = append(results, Result{
			Title:   strings.TrimSpace(item.Get("title").String()),
			Link:    strings.TrimSpace(item.Get("link").String()),
			Snippet: snippet,
		})
		return len(results) < g.limit
	})

	return results, nil
}
