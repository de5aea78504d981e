package model

import "time"

// Partner is an organization that defines and funds programs.
type Partner struct {
	CreatedAt    time.Time
	ID           string
	Name         string
	ContactEmail string
	Description  string
}
