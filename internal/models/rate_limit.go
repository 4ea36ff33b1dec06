package models

import "time"

// RateHit is one counted request against a rate-limited endpoint,
// keyed by client IP. Old rows are swept on a schedule.
type RateHit struct {
	ID        uint      `gorm:"primaryKey"`
	ClientIP  string    `gorm:"size:64;index;not null"`
	Scope     string    `gorm:"size:32;index;not null"`
	CreatedAt time.Time `gorm:"index"`
}
