package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inbucket/html2text"
	"github.com/sandevgo/alicebot/internal/config"
	"golang.org/x/net/html"
)

const (
	// Bing has no API contract for this; the container class comes from its
	// current result markup and the branch degrades to a fallback string
	// whenever the layout changes.
	bingResultClass = "rwrl rwrl_sec rwrl_padref rwrl_fontexp rwrl_bchl"

	// Browser-like UA so the results page is served at all
	scrapeUserAgent = "Mozilla/5.0"

	scrapeTimeout = 10 * time.Second
)

// Result is one extracted search hit, shared by both lookup branches.
type Result struct {
	Title   string
	Link    string
	Snippet string
}

// BingScraper is the HTML-parsing lookup branch.
type BingScraper struct {
	client   *http.Client
	endpoint string
	limit    int
}

func NewBingScraper(cfg *config.SearchConfig) *BingScraper {
	return &BingScraper{
		client:   &http.Client{Timeout: scrapeTimeout},
		endpoint: cfg.BingEndpoint,
		limit:    cfg.ResultLimit,
	}
}

func (s *BingScraper) Search(ctx context.Context, query string) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", scrapeUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch results page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("results page returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	return s.extract(doc), nil
}

// extract walks the parsed page and pulls title/link/snippet out of each
// result container, up to the configured limit. An unrecognized layout just
// yields no results.
func (s *BingScraper) extract(doc *html.Node) []Result {
	var results []Result
	for _, div := range findAll(doc, isResultContainer, s.limit) {
		title := findOne(div, isElement("h2"))
		link := findOne(div, isAnchorWithHref)
		if title == nil || link == nil {
			continue
		}

		snippet := "No description available."
		if p := findOne(div, isElement("p")); p != nil {
			if text := flattenNode(p); text != "" {
				snippet = text
			}
		}

		results = append(results, Result{
			Title:   collectText(title),
			Link:    attrValue(link, "href"),
			Snippet: snippet,
		})
	}
	return results
}

func isResultContainer(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "div" && attrValue(n, "class") == bingResultClass
}

func isElement(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == name
	}
}

func isAnchorWithHref(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "a" && attrValue(n, "href") != ""
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func findAll(n *html.Node, match func(*html.Node) bool, limit int) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if limit > 0 && len(found) >= limit {
			return
		}
		if match(node) {
			found = append(found, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func findOne(n *html.Node, match func(*html.Node) bool) *html.Node {
	if nodes := findAll(n, match, 1); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}

func collectText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// flattenNode renders a snippet node back to HTML and flattens it to text.
// Bing nests highlight markup inside snippets; html2text handles it in one
// pass.
func flattenNode(n *html.Node) string {
	var buf strings.Builder
	if err := html.Render(&buf, n); err != nil {
		return collectText(n)
	}

	text, err := html2text.FromReader(strings.NewReader(buf.String()), html2text.Options{OmitLinks: true})
	if err != nil {
		return collectText(n)
	}
	return strings.TrimSpace(text)
}
