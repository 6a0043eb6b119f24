package stats

import (
	"reflect"
	"testing"
	"time"

	"github.com/pbaille/ht/internal/domain"
)

func ms(t time.Time) int64 { return t.UnixMilli() }

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil, time.Now())

	if s.TotalCount != 0 {
		t.Errorf("Expected total count 0, got %d", s.TotalCount)
	}
	if s.AverageScore != 0 {
		t.Errorf("Expected average 0 on empty input, got %v", s.AverageScore)
	}
	if s.WeekHigh != nil || s.WeekLow != nil {
		t.Errorf("Expected no week extrema on empty input, got high=%v low=%v", s.WeekHigh, s.WeekLow)
	}
	if s.Series == nil || len(s.Series) != 0 {
		t.Errorf("Expected empty non-nil series, got %#v", s.Series)
	}
}

func TestAggregateTwoEntries(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.Local)
	entries := []domain.Entry{
		{ID: "a", Score: 1, CreatedAt: ms(now)},
		{ID: "b", Score: 5, CreatedAt: ms(now.Add(-24 * time.Hour))},
	}

	s := Aggregate(entries, now)

	if s.TotalCount != 2 {
		t.Errorf("Expected total count 2, got %d", s.TotalCount)
	}
	if s.AverageScore != 3.0 {
		t.Errorf("Expected average 3.0, got %v", s.AverageScore)
	}
	if s.WeekHigh == nil || *s.WeekHigh != 5 {
		t.Errorf("Expected week high 5, got %v", s.WeekHigh)
	}
	if s.WeekLow == nil || *s.WeekLow != 1 {
		t.Errorf("Expected week low 1, got %v", s.WeekLow)
	}

	// Series is oldest first
	if len(s.Series) != 2 || s.Series[0].Score != 5 || s.Series[1].Score != 1 {
		t.Errorf("Expected series scores [5 1] oldest first, got %#v", s.Series)
	}
}

func TestAggregateAverageRounding(t *testing.T) {
	now := time.Now()
	entries := []domain.Entry{
		{Score: 1, CreatedAt: ms(now)},
		{Score: 2, CreatedAt: ms(now.Add(-24 * time.Hour))},
		{Score: 2, CreatedAt: ms(now.Add(-48 * time.Hour))},
	}

	// 5/3 = 1.666..., displayed as 1.7
	if s := Aggregate(entries, now); s.AverageScore != 1.7 {
		t.Errorf("Expected average rounded to 1.7, got %v", s.AverageScore)
	}
}

func TestAggregateWindows(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.Local)
	entries := []domain.Entry{
		{ID: "recent", Score: 2, CreatedAt: ms(now.Add(-2 * 24 * time.Hour))},
		{ID: "mid", Score: 4, CreatedAt: ms(now.Add(-10 * 24 * time.Hour))},
		{ID: "old", Score: 5, CreatedAt: ms(now.Add(-40 * 24 * time.Hour))},
	}

	s := Aggregate(entries, now)

	// Average covers the full history
	if want := 3.7; s.AverageScore != want {
		t.Errorf("Expected average %v over all entries, got %v", want, s.AverageScore)
	}

	// Week extrema cover only the past 7 days; they never fall back to the
	// full history
	if s.WeekHigh == nil || *s.WeekHigh != 2 || s.WeekLow == nil || *s.WeekLow != 2 {
		t.Errorf("Expected week extrema 2/2, got high=%v low=%v", s.WeekHigh, s.WeekLow)
	}

	// Series covers the past 30 days, oldest first
	if len(s.Series) != 2 || s.Series[0].Score != 4 || s.Series[1].Score != 2 {
		t.Errorf("Expected series scores [4 2], got %#v", s.Series)
	}
}

func TestAggregateNoRecentEntries(t *testing.T) {
	now := time.Now()
	entries := []domain.Entry{
		{Score: 3, CreatedAt: ms(now.Add(-60 * 24 * time.Hour))},
	}

	s := Aggregate(entries, now)

	if s.WeekHigh != nil || s.WeekLow != nil {
		t.Errorf("Expected nil week extrema when the week is empty, got high=%v low=%v", s.WeekHigh, s.WeekLow)
	}
	if len(s.Series) != 0 {
		t.Errorf("Expected empty series, got %#v", s.Series)
	}
	if s.AverageScore != 3 {
		t.Errorf("Expected average 3 from full history, got %v", s.AverageScore)
	}
}

func TestAggregateSortsDefensively(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.Local)
	// Deliberately out of order
	entries := []domain.Entry{
		{ID: "middle", Score: 2, CreatedAt: ms(now.Add(-3 * 24 * time.Hour))},
		{ID: "newest", Score: 1, CreatedAt: ms(now)},
		{ID: "oldest", Score: 3, CreatedAt: ms(now.Add(-6 * 24 * time.Hour))},
	}

	s := Aggregate(entries, now)

	got := []float64{s.Series[0].Score, s.Series[1].Score, s.Series[2].Score}
	if !reflect.DeepEqual(got, []float64{3, 2, 1}) {
		t.Errorf("Expected series sorted oldest first [3 2 1], got %v", got)
	}
}

func TestAggregateKeepsSameDayDuplicates(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.Local)
	// Two entries on the same calendar day: the engine must not collapse them
	entries := []domain.Entry{
		{ID: "a", Score: 1, CreatedAt: ms(now.Add(-2 * time.Hour))},
		{ID: "b", Score: 4, CreatedAt: ms(now.Add(-5 * time.Hour))},
	}

	s := Aggregate(entries, now)

	if len(s.Series) != 2 {
		t.Fatalf("Expected 2 points for same-day entries, got %d", len(s.Series))
	}
	if s.Series[0].Date != s.Series[1].Date {
		t.Errorf("Expected identical date labels, got %q and %q", s.Series[0].Date, s.Series[1].Date)
	}
}

func TestAggregateSeriesPassthrough(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.Local)
	entries := []domain.Entry{
		{
			ID:              "a",
			Score:           2.5,
			CreatedAt:       ms(time.Date(2024, 6, 14, 9, 0, 0, 0, time.Local)),
			PotentialCauses: []string{"Stress", "Screen time"},
			Locations:       []string{"Right temple"},
			TimeOfDay:       "Morning",
		},
		{ID: "b", Score: 1, CreatedAt: ms(now)},
	}

	s := Aggregate(entries, now)

	p := s.Series[0]
	if p.Date != "Jun 14" {
		t.Errorf("Expected date label 'Jun 14', got %q", p.Date)
	}
	if !reflect.DeepEqual(p.PotentialCauses, []string{"Stress", "Screen time"}) {
		t.Errorf("Expected causes passthrough, got %#v", p.PotentialCauses)
	}
	if !reflect.DeepEqual(p.Locations, []string{"Right temple"}) {
		t.Errorf("Expected locations passthrough, got %#v", p.Locations)
	}
	if p.TimeOfDay != "Morning" {
		t.Errorf("Expected time of day passthrough, got %q", p.TimeOfDay)
	}

	// Absent labels default to empty collections, never nil
	q := s.Series[1]
	if q.PotentialCauses == nil || q.Locations == nil {
		t.Errorf("Expected empty label slices on bare entry, got causes=%#v locations=%#v", q.PotentialCauses, q.Locations)
	}
}

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "None"},
		{0.5, "None"},
		{1, "Mild"},
		{2.5, "Moderate"},
		{3, "Severe"},
		{4.5, "Very Severe"},
		{5, "Extreme"},
	}

	for _, tt := range tests {
		if got := ScoreLabel(tt.score); got != tt.want {
			t.Errorf("ScoreLabel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
