package model

import "time"

// Model is the base of every persisted record.
type Model struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}
