package dto

import "time"

type StartInput struct {
	TaskName string
}

type CrucibleOutput struct {
	ID        string
	TaskName  string
	State     string
	Remaining int
	StartedAt time.Time
	Advisory  string
}

type FinalizeInput struct {
	Feeling string
}

type FinalizeOutput struct {
	EntryID     string
	TaskName    string
	Advisory    string
	CoinsEarned int
	Coins       int
	Streak      int
}
