package domain

import "time"

const (
	// ConfidenceCap bounds the confidence score.
	ConfidenceCap = 100
	// ConfidencePerCoin scales lifetime reward into the score.
	ConfidencePerCoin = 2

	// DayKeyLayout buckets entries into calendar days.
	DayKeyLayout = "2006-01-02"
)

// Entry is one completed forging session. Entries are immutable once created
// and the journal only ever appends.
type Entry struct {
	ID              string    `json:"id"`
	CompletedAt     time.Time `json:"completed_at"`
	TaskName        string    `json:"task_name"`
	DurationSeconds int       `json:"duration_seconds"`
	CoinsEarned     int       `json:"coins_earned"`
	Feeling         string    `json:"feeling,omitempty"`
	Advisory        string    `json:"advisory,omitempty"`
}

// DayTotal is one bucket of the daily reward aggregation.
type DayTotal struct {
	Day   time.Time
	Coins int
}

// DayKey returns the calendar-day bucket for an instant.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// FillDailyTotals expands sparse per-day sums into a dense window of
// windowDays buckets in chronological order ending today. Days without
// entries report zero.
func FillDailyTotals(today time.Time, windowDays int, sums map[string]int) []DayTotal {
	totals := make([]DayTotal, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		totals = append(totals, DayTotal{Day: day, Coins: sums[DayKey(day)]})
	}
	return totals
}

// Confidence maps lifetime reward into the bounded score. It is monotonically
// non-decreasing in totalCoins and never exceeds the cap.
func Confidence(totalCoins int) int {
	score := totalCoins * ConfidencePerCoin
	if score > ConfidenceCap {
		return ConfidenceCap
	}
	if score < 0 {
		return 0
	}
	return score
}
