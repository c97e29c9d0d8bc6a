package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"orderdesk/internal"
	"orderdesk/internal/util"
)

var etaLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02.01.2006",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseEta leniently parses a sheet ETA cell. Unparseable values are treated
// as absent, never as an error.
func ParseEta(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range etaLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BuildSummary aggregates the order table: totals, delayed share, by-status
// counts, and SLA misses (ETA strictly before today and not delivered).
func BuildSummary(table []internal.OrderRecord, today time.Time) internal.ReportSummary {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	counts := map[string]int{}
	delayed := 0
	slaMisses := 0
	for _, rec := range table {
		status := strings.TrimSpace(rec.Status)
		counts[status]++
		if util.IsDelayed(status) {
			delayed++
		}
		if eta, ok := ParseEta(rec.Eta); ok && eta.Before(day) && !strings.Contains(strings.ToLower(status), "delivered") {
			slaMisses++
		}
	}

	byStatus := make([]internal.StatusCount, 0, len(counts))
	for status, count := range counts {
		byStatus = append(byStatus, internal.StatusCount{Status: status, Count: count})
	}
	sort.Slice(byStatus, func(i, j int) bool { return byStatus[i].Status < byStatus[j].Status })

	pct := 0.0
	if len(table) > 0 {
		pct = math.Round(1000*float64(delayed)/float64(len(table))) / 10
	}

	return internal.ReportSummary{
		Date:        day.Format("2006-01-02"),
		TotalOrders: len(table),
		DelayedPct:  pct,
		SLAMisses:   slaMisses,
		ByStatus:    byStatus,
	}
}
