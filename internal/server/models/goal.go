package models

import "time"

type Goal struct {
	ID            string
	UserID        string
	Title         string
	TargetAmount  float64
	CurrentAmount float64
	Deadline      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OptionalTime distinguishes "leave as is" (Set == false) from "set to
// Time", where a nil Time clears the value.
type OptionalTime struct {
	Set  bool
	Time *time.Time
}

type GoalPatch struct {
	Title         *string
	TargetAmount  *float64
	CurrentAmount *float64
	Deadline      OptionalTime
}
