package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/alicebot/internal/config"
	"github.com/sandevgo/alicebot/internal/core"
	"github.com/sandevgo/alicebot/pkg/log"
	"golang.org/x/sync/errgroup"
)

const (
	noBingResults   = "No results found on Bing."
	noGoogleResults = "No results found on Google."
)

// Aggregator fans a query out to both lookup branches concurrently. Search is
// a soft dependency: every failure is caught here and converted into an
// explanatory string, so callers always get two usable values.
type Aggregator struct {
	bing   *BingScraper
	google *GoogleClient
}

func NewAggregator(cfg *config.SearchConfig) *Aggregator {
	return &Aggregator{
		bing:   NewBingScraper(cfg),
		google: NewGoogleClient(cfg),
	}
}

func (a *Aggregator) Aggregate(ctx context.Context, query string) core.SearchPair {
	logger := log.FromCtx(ctx)

	var pair core.SearchPair
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		results, err := a.bing.Search(gctx, query)
		if err != nil {
			logger.Warn().Err(err).Msg("bing scrape failed")
			pair.Scraped = fmt.Sprintf("Error scraping Bing: %v", err)
			return nil
		}
		pair.Scraped = formatResults(results, noBingResults)
		return nil
	})

	g.Go(func() error {
		results, err := a.google.Search(gctx, query)
		if err != nil {
			logger.Warn().Err(err).Msg("google search failed")
			pair.API = fmt.Sprintf("Error with Google Search API: %v", err)
			return nil
		}
		pair.API = formatResults(results, noGoogleResults)
		return nil
	})

	// Branches never return errors; Wait is just the join point.
	_ = g.Wait()

	return pair
}

func formatResults(results []Result, fallback string) string {
	if len(results) == 0 {
		return fallback
	}

	entries := make([]string, 0, len(results))
	for _, r := range results {
		entries = append(entries, fmt.Sprintf("Title: %s\nLink: %s\nSnippet: %s\n", r.Title, r.Link, r.Snippet))
	}
	return strings.Join(entries, "\n")
}
