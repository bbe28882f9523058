// Package dashboard assembles the marketplace overview served on the main
// page: a concurrent fan-out over fixed keyword searches, summarized into
// a single aggregate.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yahuti/trade-engine/internal/market"
	"github.com/yahuti/trade-engine/internal/metrics"
	"github.com/yahuti/trade-engine/internal/sim"
	domain "github.com/yahuti/trade-engine/pkg/types"
)

const (
	defaultCallTimeout = 10 * time.Second
	defaultFeatured    = 8
	perKeywordLimit    = 20
)

// Aggregator fans searches out over a fixed keyword set and folds the
// results into a SearchAggregate.
type Aggregator struct {
	adapter     market.Adapter
	keywords    []string
	callTimeout time.Duration
	featured    int
	log         *slog.Logger
	nowFunc     func() time.Time
}

// New creates an Aggregator over the given adapter and keyword set.
func New(adapter market.Adapter, keywords []string, callTimeout time.Duration, featured int, log *slog.Logger) *Aggregator {
	if callTimeout <= 0 {
		callTimeout = defaultCallTimeout
	}
	if featured <= 0 {
		featured = defaultFeatured
	}
	return &Aggregator{
		adapter:     adapter,
		keywords:    keywords,
		callTimeout: callTimeout,
		featured:    featured,
		log:         log,
		nowFunc:     time.Now,
	}
}

type keywordResult struct {
	keyword string
	result  *market.Result
	err     error
}

// Build runs one dashboard aggregation. Every keyword search runs
// concurrently with its own timeout; failed searches are dropped from the
// aggregate. If every search fails, Build returns the demo dataset so the
// dashboard always renders.
func (a *Aggregator) Build(ctx context.Context) *domain.SearchAggregate {
	start := a.nowFunc()
	defer func() {
		metrics.DashboardDuration.Observe(time.Since(start).Seconds())
	}()

	results := make([]keywordResult, len(a.keywords))
	var wg sync.WaitGroup
	for i, keyword := range a.keywords {
		wg.Add(1)
		go func(i int, keyword string) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, a.callTimeout)
			defer cancel()

			res, err := a.adapter.Search(callCtx, market.Query{
				Keywords: keyword,
				Limit:    perKeywordLimit,
			})
			results[i] = keywordResult{keyword: keyword, result: res, err: err}
		}(i, keyword)
	}
	wg.Wait()

	var (
		items      []domain.MarketplaceItem
		categories []string
		total      int
		source     domain.DataSource
		anyLive    bool
	)
	for _, kr := range results {
		if kr.err != nil {
			a.log.Warn("dashboard search dropped", "keyword", kr.keyword, "error", kr.err)
			continue
		}
		items = append(items, kr.result.Items...)
		categories = append(categories, kr.keyword)
		total += kr.result.Total
		source = kr.result.DataSource
		if !kr.result.Simulated() {
			anyLive = true
		}
	}

	if len(categories) == 0 {
		a.log.Warn("all dashboard searches failed, serving demo dataset")
		metrics.DashboardDemoFallbacksTotal.Inc()
		return a.demoAggregate()
	}

	// Mixed live and simulated batches report the live source.
	if anyLive {
		for _, kr := range results {
			if kr.err == nil && !kr.result.Simulated() {
				source = kr.result.DataSource
				break
			}
		}
	}

	return &domain.SearchAggregate{
		TotalListings:     total,
		AveragePrice:      domain.AveragePriceOf(items),
		CategoryBreakdown: domain.CategoryCounts(items),
		FeaturedProducts:  firstN(items, a.featured),
		SearchCategories:  categories,
		DataSource:        source,
		GeneratedAt:       a.nowFunc(),
	}
}

func (a *Aggregator) demoAggregate() *domain.SearchAggregate {
	items := sim.DemoDashboard()
	return &domain.SearchAggregate{
		TotalListings:     len(items),
		AveragePrice:      domain.AveragePriceOf(items),
		CategoryBreakdown: domain.CategoryCounts(items),
		FeaturedProducts:  firstN(items, a.featured),
		SearchCategories:  a.keywords,
		DataSource:        domain.SourceDemoDataset,
		GeneratedAt:       a.nowFunc(),
	}
}

func firstN(items []domain.MarketplaceItem, n int) []domain.MarketplaceItem {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
