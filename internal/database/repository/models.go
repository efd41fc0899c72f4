package repository

import "time"

// Item is a menu item row.
type Item struct {
	ID          string
	Title       string
	Icon        string
	Destination string
	Description string
	SortOrder   int
}

// Transition is one committed menu state change.
type Transition struct {
	ID          string
	State       string
	Source      string
	Destination *string
	At          time.Time
}
