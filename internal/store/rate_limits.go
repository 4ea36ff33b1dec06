package store

import (
	"fmt"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/models"

	"gorm.io/gorm"
)

// RateLimitStore counts requests per client IP and scope over a sliding
// window. Counters are database rows rather than in-process state, so
// limits hold across restarts and the sweep can reclaim old rows.
type RateLimitStore struct {
	DB *gorm.DB
}

func NewRateLimitStore(db *gorm.DB) *RateLimitStore {
	return &RateLimitStore{DB: db}
}

// Allow records one hit and reports whether the client is still under
// max hits within the trailing window.
func (s *RateLimitStore) Allow(clientIP, scope string, max int, window time.Duration, now time.Time) (bool, error) {
	since := now.Add(-window)

	var count int64
	err := s.DB.Model(&models.RateHit{}).
		Where("client_ip = ? AND scope = ? AND created_at >= ?", clientIP, scope, since).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count rate hits: %w", err)
	}
	if count >= int64(max) {
		return false, nil
	}

	hit := models.RateHit{ClientIP: clientIP, Scope: scope, CreatedAt: now}
	if err := s.DB.Create(&hit).Error; err != nil {
		return false, fmt.Errorf("record rate hit: %w", err)
	}
	return true, nil
}

// SweepBefore deletes hits older than cutoff, returning the number
// removed.
func (s *RateLimitStore) SweepBefore(cutoff time.Time) (int64, error) {
	res := s.DB.Where("created_at < ?", cutoff).Delete(&models.RateHit{})
	if res.Error != nil {
		return 0, fmt.Errorf("sweep rate hits: %w", res.Error)
	}
	return res.RowsAffected, nil
}
