package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/openstride/stride-go/pkg/log"
)

// Stats summarizes the contents of an event log file.
type Stats struct {
	TotalEvents int
	ByCategory  map[log.Category]int
	BySession   map[string]int
	ByMetric    map[string]int // anomaly breakdown
	FirstEvent  time.Time
	LastEvent   time.Time
}

// CollectStats reads a log file and accumulates statistics.
func CollectStats(path string) (*Stats, error) {
	reader, err := log.NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		ByCategory: make(map[log.Category]int),
		BySession:  make(map[string]int),
		ByMetric:   make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.ByCategory[event.Category]++
		stats.BySession[event.SessionID]++
		if event.Anomaly != nil {
			stats.ByMetric[event.Anomaly.Metric]++
		}

		if stats.FirstEvent.IsZero() || event.Timestamp.Before(stats.FirstEvent) {
			stats.FirstEvent = event.Timestamp
		}
		if event.Timestamp.After(stats.LastEvent) {
			stats.LastEvent = event.Timestamp
		}
	}

	return stats, nil
}

// RunStats executes the stats command.
func RunStats(path string, w io.Writer) error {
	stats, err := CollectStats(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Total events: %d\n", stats.TotalEvents)
	if stats.TotalEvents == 0 {
		return nil
	}

	fmt.Fprintf(w, "Time range:   %s - %s (%s)\n",
		stats.FirstEvent.UTC().Format("2006-01-02T15:04:05Z"),
		stats.LastEvent.UTC().Format("2006-01-02T15:04:05Z"),
		stats.LastEvent.Sub(stats.FirstEvent).Round(time.Second))

	fmt.Fprintln(w, "\nBy category:")
	categories := []log.Category{
		log.CategoryState, log.CategoryAnomaly, log.CategorySplit,
		log.CategoryMetrics, log.CategoryRecord,
	}
	for _, c := range categories {
		if n := stats.ByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", c, n)
		}
	}

	fmt.Fprintf(w, "\nSessions (%d):\n", len(stats.BySession))
	sessions := make([]string, 0, len(stats.BySession))
	for id := range stats.BySession {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	for _, id := range sessions {
		fmt.Fprintf(w, "  %s  %d events\n", shortenSessionID(id), stats.BySession[id])
	}

	if len(stats.ByMetric) > 0 {
		fmt.Fprintln(w, "\nAnomalies by metric:")
		metrics := make([]string, 0, len(stats.ByMetric))
		for m := range stats.ByMetric {
			metrics = append(metrics, m)
		}
		sort.Strings(metrics)
		for _, m := range metrics {
			fmt.Fprintf(w, "  %-10s %d\n", m, stats.ByMetric[m])
		}
	}

	return nil
}
