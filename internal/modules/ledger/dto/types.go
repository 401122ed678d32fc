package dto

import "time"

type StateOutput struct {
	Coins          int
	Streak         int
	LastActiveDate *time.Time
}

type GrantInput struct {
	Coins int
}

type PurchaseInput struct {
	ItemID string
}

type PurchaseOutput struct {
	ItemID   string
	ItemName string
	Cost     int
	Coins    int
}

type ItemOutput struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Icon        string
	Affordable  bool
}
