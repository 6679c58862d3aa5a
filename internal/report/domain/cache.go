package domain

import "github.com/haroun39/facteur/internal/cache"

// SummaryCache holds the dashboard rollup between ledger writes. Invoice,
// payment, and customer writes drop SummaryCacheKey so the next read
// recomputes; the TTL only bounds staleness against writes that bypass
// the services.
type SummaryCache = cache.TTLCache[string, ReportSummary]

// SummaryCacheKey is the single key the rollup is stored under.
const SummaryCacheKey = "report_summary"

func NewSummaryCache() *SummaryCache {
	return cache.NewTTLCache[string, ReportSummary]()
}
