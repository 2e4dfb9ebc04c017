package models

import "time"

// Budget is a spending limit for one category in one calendar month.
// (UserID, Category, Month, Year) is unique.
type Budget struct {
	ID        string
	UserID    string
	Category  string
	Month     int
	Year      int
	Amount    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
