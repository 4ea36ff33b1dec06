package store

import (
	"fmt"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/models"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"gorm.io/gorm"
)

// DefaultResetTokenTTL is how long a password reset token stays valid.
const DefaultResetTokenTTL = time.Hour

// ResetTokenStore issues and consumes single-use password reset tokens.
// Tokens live in the database with an explicit expiry, so they survive
// restarts and can be swept on a schedule.
type ResetTokenStore struct {
	DB  *gorm.DB
	TTL time.Duration
}

func NewResetTokenStore(db *gorm.DB, ttl time.Duration) *ResetTokenStore {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &ResetTokenStore{DB: db, TTL: ttl}
}

// Issue creates a fresh token for the user, invalidating any earlier
// unused tokens so only the newest one works.
func (s *ResetTokenStore) Issue(userID uint, now time.Time) (string, error) {
	token, err := util.RandomToken(48)
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ResetToken{}).
			Where("user_id = ? AND used = ?", userID, false).
			Update("used", true).Error; err != nil {
			return fmt.Errorf("invalidate old tokens: %w", err)
		}
		row := models.ResetToken{
			Token:     token,
			UserID:    userID,
			ExpiresAt: now.Add(s.TTL),
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create reset token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Verify returns the owning user ID when the token exists, is unused
// and has not expired.
func (s *ResetTokenStore) Verify(token string, now time.Time) (uint, bool, error) {
	var row models.ResetToken
	err := s.DB.Where("token = ?", token).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup reset token: %w", err)
	}
	if row.Used || now.After(row.ExpiresAt) {
		return 0, false, nil
	}
	return row.UserID, true, nil
}

// Consume marks the token used after a successful password change.
func (s *ResetTokenStore) Consume(token string) error {
	if err := s.DB.Model(&models.ResetToken{}).
		Where("token = ?", token).
		Update("used", true).Error; err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	return nil
}

// SweepExpired deletes tokens whose expiry has passed, returning the
// number removed.
func (s *ResetTokenStore) SweepExpired(now time.Time) (int64, error) {
	res := s.DB.Where("expires_at < ?", now).Delete(&models.ResetToken{})
	if res.Error != nil {
		return 0, fmt.Errorf("sweep reset tokens: %w", res.Error)
	}
	return res.RowsAffected, nil
}
