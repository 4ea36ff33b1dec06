package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/models"
	"github.com/WatsonMulkey/The-Number/internal/store"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BackupHandler snapshots a user's full dataset (settings, expenses,
// transactions) into an encrypted file and restores from it.
type BackupHandler struct {
	DB         *gorm.DB
	Settings   *store.SettingsStore
	Expenses   *store.ExpenseStore
	Txns       *store.TransactionStore
	EncryptKey string
	BackupDir  string
}

func NewBackupHandler(db *gorm.DB, settings *store.SettingsStore, expenses *store.ExpenseStore, txns *store.TransactionStore, encryptKey, backupDir string) *BackupHandler {
	return &BackupHandler{
		DB:         db,
		Settings:   settings,
		Expenses:   expenses,
		Txns:       txns,
		EncryptKey: encryptKey,
		BackupDir:  backupDir,
	}
}

type backupData struct {
	UserID       uint                       `json:"user_id"`
	Created      time.Time                  `json:"created"`
	Settings     map[string]json.RawMessage `json:"settings"`
	Expenses     []models.Expense           `json:"expenses"`
	Transactions []models.Transaction       `json:"transactions"`
}

// CreateBackup writes an encrypted snapshot of the user's data.
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	settings, err := h.Settings.All(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "read settings failed")
		return
	}
	expenses, err := h.Expenses.List(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "read expenses failed")
		return
	}
	txns, err := h.Txns.List(user.ID, 0)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "read transactions failed")
		return
	}

	data := backupData{
		UserID:       user.ID,
		Created:      time.Now(),
		Settings:     settings,
		Expenses:     expenses,
		Transactions: txns,
	}
	raw, err := json.MarshalIndent(&data, "", "  ")
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "serialize failed")
		return
	}

	enc, err := util.EncryptAES(h.EncryptKey, raw)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "encrypt failed")
		return
	}

	if err := os.MkdirAll(h.BackupDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create backup dir failed")
		return
	}

	fileName := fmt.Sprintf("backup-%d-%s.bin", user.ID, uuid.New().String())
	filePath := filepath.Join(h.BackupDir, fileName)

	if err := os.WriteFile(filePath, enc, 0o600); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "write backup file failed")
		return
	}

	info, _ := os.Stat(filePath)

	backup := models.Backup{
		UserID:   user.ID,
		FileName: fileName,
		FilePath: filePath,
		Size:     info.Size(),
	}
	if err := h.DB.Create(&backup).Error; err != nil {
		_ = os.Remove(filePath)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save backup record failed")
		return
	}

	util.Success(c, util.Response{
		"backup": gin.H{
			"id":         backup.ID,
			"file_name":  backup.FileName,
			"size":       backup.Size,
			"created_at": backup.CreatedAt,
		},
	})
}

// ListBackups lists the user's backups, newest first.
func (h *BackupHandler) ListBackups(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var list []models.Backup
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "list backups failed")
		return
	}

	items := make([]gin.H, 0, len(list))
	for i := range list {
		b := &list[i]
		items = append(items, gin.H{
			"id":         b.ID,
			"file_name":  b.FileName,
			"size":       b.Size,
			"created_at": b.CreatedAt,
		})
	}

	util.Success(c, util.Response{"items": items})
}

func (h *BackupHandler) findBackup(c *gin.Context, user *models.User) (*models.Backup, bool) {
	id := c.Param("id")

	var backup models.Backup
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&backup).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup backup failed")
		}
		return nil, false
	}
	return &backup, true
}

// DownloadBackup streams the encrypted backup file.
func (h *BackupHandler) DownloadBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	backup, ok := h.findBackup(c, user)
	if !ok {
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", backup.FileName))
	c.File(backup.FilePath)
}

// DeleteBackup removes the file and the record.
func (h *BackupHandler) DeleteBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	backup, ok := h.findBackup(c, user)
	if !ok {
		return
	}

	// file first, then record
	_ = os.Remove(backup.FilePath)
	if err := h.DB.Delete(backup).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "delete backup record failed")
		return
	}

	util.Success(c, util.Response{"message": "deleted"})
}

// RestoreBackup replaces the user's settings, expenses and transactions
// with the snapshot's contents.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	backup, ok := h.findBackup(c, user)
	if !ok {
		return
	}

	encData, err := os.ReadFile(backup.FilePath)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "read backup file failed")
		return
	}

	raw, err := util.DecryptAES(h.EncryptKey, encData)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "decrypt backup file failed")
		return
	}

	var data backupData
	if err := json.Unmarshal(raw, &data); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "parse backup data failed")
		return
	}

	if data.UserID != 0 && data.UserID != user.ID {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "backup belongs to a different user")
		return
	}

	if err := h.Settings.ReplaceAll(user.ID, data.Settings); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "restore settings failed")
		return
	}
	if err := h.Expenses.ReplaceAll(user.ID, data.Expenses); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "restore expenses failed")
		return
	}
	if err := h.Txns.ReplaceAll(user.ID, data.Transactions); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "restore transactions failed")
		return
	}

	util.Success(c, util.Response{
		"message":            "restored",
		"expenses_count":     len(data.Expenses),
		"transactions_count": len(data.Transactions),
	})
}
