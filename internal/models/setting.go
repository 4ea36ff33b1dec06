package models

import "time"

// Setting is one per-user configuration value. The key is stored in the
// clear; the value is JSON, AES-GCM encrypted and base64 encoded.
type Setting struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"uniqueIndex:idx_settings_user_key;not null"`
	Key       string `gorm:"size:64;uniqueIndex:idx_settings_user_key;not null"`
	ValueEnc  string `gorm:"size:1024;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
