package dto

import "time"

type AppendInput struct {
	TaskName        string
	DurationSeconds int
	CoinsEarned     int
	Feeling         string
	Advisory        string
}

type EntryOutput struct {
	ID              string
	CompletedAt     time.Time
	TaskName        string
	DurationSeconds int
	CoinsEarned     int
	Feeling         string
	Advisory        string
	NotePath        string
}

type HistoryInput struct {
	Limit int
}

type DayTotalOutput struct {
	Day   time.Time
	Label string
	Coins int
}

type ConfidenceOutput struct {
	Score      int
	TotalCoins int
}
