package models

import "time"

// ResetToken is a single-use password reset token. Rows past ExpiresAt
// are dead weight; the cron sweep deletes them (see main.go).
type ResetToken struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Used      bool      `gorm:"not null"`
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
