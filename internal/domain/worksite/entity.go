package worksite

import (
	"time"
)

type WorkSite struct {
	ID           string
	Name         string
	Address      string
	CheckInToken string
	Active       bool
	Description  *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
