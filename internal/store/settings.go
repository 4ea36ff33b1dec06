// Package store is the persistence layer: per-user encrypted settings,
// expense and transaction repositories, and the small bookkeeping
// stores (reset tokens, rate limit counters). Handlers and the CLI go
// through these types rather than touching gorm directly.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/WatsonMulkey/The-Number/internal/models"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"gorm.io/gorm"
)

// SettingsStore is a per-user key-value store. Keys are plaintext,
// values are JSON encrypted at rest.
type SettingsStore struct {
	DB         *gorm.DB
	EncryptKey string
}

func NewSettingsStore(db *gorm.DB, encryptKey string) *SettingsStore {
	return &SettingsStore{DB: db, EncryptKey: encryptKey}
}

// Set stores value under key for the user, replacing any previous
// value.
func (s *SettingsStore) Set(userID uint, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal setting %s: %w", key, err)
	}
	enc, err := util.EncryptString(s.EncryptKey, string(raw))
	if err != nil {
		return fmt.Errorf("encrypt setting %s: %w", key, err)
	}

	var existing models.Setting
	err = s.DB.Where("user_id = ? AND key = ?", userID, key).First(&existing).Error
	switch {
	case err == nil:
		existing.ValueEnc = enc
		if err := s.DB.Save(&existing).Error; err != nil {
			return fmt.Errorf("update setting %s: %w", key, err)
		}
	case err == gorm.ErrRecordNotFound:
		row := models.Setting{UserID: userID, Key: key, ValueEnc: enc}
		if err := s.DB.Create(&row).Error; err != nil {
			return fmt.Errorf("create setting %s: %w", key, err)
		}
	default:
		return fmt.Errorf("lookup setting %s: %w", key, err)
	}
	return nil
}

// Get decrypts the value stored under key into out. Returns false when
// the key has never been set.
func (s *SettingsStore) Get(userID uint, key string, out interface{}) (bool, error) {
	var row models.Setting
	err := s.DB.Where("user_id = ? AND key = ?", userID, key).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup setting %s: %w", key, err)
	}

	raw, err := util.DecryptString(s.EncryptKey, row.ValueEnc)
	if err != nil {
		return false, fmt.Errorf("decrypt setting %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("unmarshal setting %s: %w", key, err)
	}
	return true, nil
}

// Delete removes the key; deleting an absent key is not an error.
func (s *SettingsStore) Delete(userID uint, key string) error {
	if err := s.DB.Where("user_id = ? AND key = ?", userID, key).
		Delete(&models.Setting{}).Error; err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// All returns every decrypted setting for the user as raw JSON values,
// used by backups.
func (s *SettingsStore) All(userID uint) (map[string]json.RawMessage, error) {
	var rows []models.Setting
	if err := s.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	out := make(map[string]json.RawMessage, len(rows))
	for i := range rows {
		raw, err := util.DecryptString(s.EncryptKey, rows[i].ValueEnc)
		if err != nil {
			return nil, fmt.Errorf("decrypt setting %s: %w", rows[i].Key, err)
		}
		out[rows[i].Key] = json.RawMessage(raw)
	}
	return out, nil
}

// ReplaceAll wipes the user's settings and writes the given raw values,
// used by restore.
func (s *SettingsStore) ReplaceAll(userID uint, values map[string]json.RawMessage) error {
	if err := s.DB.Where("user_id = ?", userID).Delete(&models.Setting{}).Error; err != nil {
		return fmt.Errorf("clear settings: %w", err)
	}
	for key, raw := range values {
		enc, err := util.EncryptString(s.EncryptKey, string(raw))
		if err != nil {
			return fmt.Errorf("encrypt setting %s: %w", key, err)
		}
		row := models.Setting{UserID: userID, Key: key, ValueEnc: enc}
		if err := s.DB.Create(&row).Error; err != nil {
			return fmt.Errorf("restore setting %s: %w", key, err)
		}
	}
	return nil
}
