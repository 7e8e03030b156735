package aggregate

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"sherialink/internal/domain"
	"sherialink/internal/platform/metrics"
	pkgstrings "sherialink/pkg/platform/strings"
)

const (
	// UnknownRegion groups records with a blank county.
	UnknownRegion = "Unknown"

	// MaxRegions bounds the region ranking.
	MaxRegions = 10
)

// RegionCount is one entry of the region ranking.
type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// SummaryReport is computed per request and never stored.
//
// StatusCounts always carries all four statuses. Its values sum to TotalCount.
// ExcludedCount is the number of filtered records that were malformed (no ID,
// or a status outside the known set) and therefore left out of every tally.
type SummaryReport struct {
	TotalCount    int            `json:"totalCount"`
	StatusCounts  map[string]int `json:"statusCounts"`
	RegionRanking []RegionCount  `json:"regionRanking"`
	ExcludedCount int            `json:"excludedCount"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	AppliedFilter FilterSpec     `json:"appliedFilter"`
}

// Engine summarizes case snapshots. Its clock is injected so that identical
// input produces identical reports.
type Engine struct {
	now     func() time.Time
	metrics *metrics.Metrics
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock replaces time.Now as the source of GeneratedAt.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Summarize filters records with f and tallies the result.
func (e *Engine) Summarize(records []domain.CaseReport, f FilterSpec) SummaryReport {
	start := time.Now()
	defer func() {
		e.metrics.ObserveAggregationLatency(time.Since(start))
	}()

	report := SummaryReport{
		StatusCounts:  make(map[string]int, len(domain.CaseStatuses)),
		RegionRanking: []RegionCount{},
		GeneratedAt:   e.now().UTC(),
		AppliedFilter: f.Normalize(),
	}
	for _, st := range domain.CaseStatuses {
		report.StatusCounts[string(st)] = 0
	}

	// insertion order of regions doubles as the tie-break
	var order []string
	counts := make(map[string]int)

	for _, r := range FilterRecords(records, f) {
		status, ok := recordStatus(r)
		if !ok {
			report.ExcludedCount++
			continue
		}
		report.TotalCount++
		report.StatusCounts[string(status)]++

		region := strings.TrimSpace(r.County)
		if region == "" {
			region = UnknownRegion
		}
		if _, seen := counts[region]; !seen {
			order = append(order, region)
		}
		counts[region]++
	}

	report.RegionRanking = rankRegions(order, counts)
	return report
}

// recordStatus reports the canonical status of a well-formed record. A blank
// status reads as Pending, which is what the record store defaults to.
func recordStatus(r domain.CaseReport) (domain.CaseStatus, bool) {
	if strings.TrimSpace(r.ID) == "" {
		return "", false
	}
	if strings.TrimSpace(string(r.Status)) == "" {
		return domain.CaseStatusPending, true
	}
	return domain.ParseCaseStatus(string(r.Status))
}

// rankRegions sorts descending by count, keeping first-seen order among
// equals, and keeps the top MaxRegions.
func rankRegions(order []string, counts map[string]int) []RegionCount {
	ranking := make([]RegionCount, 0, len(order))
	for _, region := range order {
		ranking = append(ranking, RegionCount{Region: region, Count: counts[region]})
	}
	slices.SortStableFunc(ranking, func(a, b RegionCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(ranking) > MaxRegions {
		ranking = ranking[:MaxRegions]
	}
	return ranking
}

// Counties lists the distinct county labels in first-seen order, for the
// dashboard's filter choices. Labels differing only in case collapse into the
// first spelling seen, matching the case-insensitive county filter. Blank
// counties are skipped.
func Counties(records []domain.CaseReport) []string {
	labels := make([]string, len(records))
	for i, r := range records {
		labels[i] = r.County
	}
	return pkgstrings.DedupeAndTrimFold(labels)
}
