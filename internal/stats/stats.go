// Package stats reduces the full entry history into the summary numbers and
// chartable series the dashboard shows. Everything here is pure; scores are
// assumed to be validated before they reach aggregation.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/pbaille/ht/internal/domain"
	"github.com/pbaille/ht/internal/window"
)

// SeriesPoint is one chartable observation within the 30-day window.
type SeriesPoint struct {
	Date            string   `json:"date"` // short label like "Jan 2"
	Score           float64  `json:"score"`
	PotentialCauses []string `json:"potentialCauses"`
	Locations       []string `json:"locations"`
	TimeOfDay       string   `json:"timeOfDay,omitempty"`
}

// Summary holds the derived statistics over the full entry history.
type Summary struct {
	TotalCount   int           `json:"totalCount"`
	AverageScore float64       `json:"averageScore"`
	WeekHigh     *float64      `json:"weekHigh"` // nil when no entries in the past 7 days
	WeekLow      *float64      `json:"weekLow"`
	Series       []SeriesPoint `json:"series"` // past 30 days, oldest first
}

// Aggregate derives a Summary from the entry list. The incoming order is not
// trusted: entries are re-sorted newest-first before windowing. An empty list
// is a normal state and yields a zero average with no week extrema.
func Aggregate(entries []domain.Entry, now time.Time) Summary {
	sorted := make([]domain.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})

	s := Summary{
		TotalCount: len(sorted),
		Series:     []SeriesPoint{},
	}

	if len(sorted) > 0 {
		var sum float64
		for _, e := range sorted {
			sum += e.Score
		}
		s.AverageScore = round1(sum / float64(len(sorted)))
	}

	weekStart := window.RollingStart(now, 7).UnixMilli()
	for _, e := range sorted {
		if e.CreatedAt < weekStart {
			continue
		}
		if s.WeekHigh == nil || e.Score > *s.WeekHigh {
			high := e.Score
			s.WeekHigh = &high
		}
		if s.WeekLow == nil || e.Score < *s.WeekLow {
			low := e.Score
			s.WeekLow = &low
		}
	}

	// Series runs oldest-first so consumers can render it left to right.
	// Entries sharing a date label are kept as separate points.
	monthStart := window.RollingStart(now, 30).UnixMilli()
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		if e.CreatedAt < monthStart {
			continue
		}
		causes := e.PotentialCauses
		if causes == nil {
			causes = []string{}
		}
		locations := e.Locations
		if locations == nil {
			locations = []string{}
		}
		s.Series = append(s.Series, SeriesPoint{
			Date:            time.UnixMilli(e.CreatedAt).Format("Jan 2"),
			Score:           e.Score,
			PotentialCauses: causes,
			Locations:       locations,
			TimeOfDay:       e.TimeOfDay,
		})
	}

	return s
}

// ScoreLabel maps a score to the intensity band shown next to it.
func ScoreLabel(score float64) string {
	switch {
	case score < 1:
		return "None"
	case score < 2:
		return "Mild"
	case score < 3:
		return "Moderate"
	case score < 4:
		return "Severe"
	case score < 5:
		return "Very Severe"
	default:
		return "Extreme"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
