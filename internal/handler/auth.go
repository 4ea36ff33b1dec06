package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/models"
	"github.com/WatsonMulkey/The-Number/internal/store"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthHandler owns register, login and password reset.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration
	Tokens    *store.ResetTokenStore
	Log       *logrus.Logger
}

func NewAuthHandler(db *gorm.DB, jwtSecret, jwtIssuer string, ttlHours int, tokens *store.ResetTokenStore, log *logrus.Logger) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		JWTIssuer: jwtIssuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
		Tokens:    tokens,
		Log:       log,
	}
}

// ---------- register ----------

type registerReq struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	DisplayName     string `json:"display_name" binding:"max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	if err := util.ValidateUsername(req.Username); err != nil {
		util.FieldError(c, "username", "must be 3-20 letters, digits or underscores")
		return
	}
	if !util.StrongPassword(req.Password) {
		util.FieldError(c, "password", "must be 8-32 characters with upper, lower and digit")
		return
	}
	if req.Password != req.ConfirmPassword {
		util.FieldError(c, "confirm_password", "does not match password")
		return
	}

	// case-insensitive uniqueness
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup user failed")
		return
	}
	if count > 0 {
		util.FieldError(c, "username", "is already taken")
		return
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "hash password failed")
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hash,
		DisplayName:  req.DisplayName,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create user failed")
		return
	}

	h.Log.WithField("user_id", user.ID).Info("user registered")

	util.Success(c, util.Response{
		"message": "registered",
		"user":    userResp(&user),
	})
}

// ---------- login ----------

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("LOWER(username) = LOWER(?)", req.Username).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "wrong username or password")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup user failed")
		}
		return
	}

	now := time.Now()

	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "account locked, try again later")
		return
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		// wrong password: bump the counter, 5 strikes locks for 10 minutes
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= 5 {
			lockUntil := now.Add(10 * time.Minute)
			user.LockedUntil = &lockUntil
			user.FailedLoginAttempts = 0
			h.Log.WithFields(logrus.Fields{
				"user_id": user.ID,
				"ip":      c.ClientIP(),
			}).Warn("account locked after failed logins")
		}
		_ = h.DB.Save(&user).Error
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "wrong username or password")
		return
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginIP = c.ClientIP()
	user.LastLoginAt = &now
	_ = h.DB.Save(&user).Error

	token, err := util.GenerateToken(h.JWTSecret, h.JWTIssuer, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "generate token failed")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user":  userResp(&user),
	})
}

// ---------- password reset ----------

type resetRequestReq struct {
	Username string `json:"username" binding:"required"`
}

// RequestPasswordReset issues a single-use token. The reply is the same
// whether or not the username exists, so the endpoint cannot be used to
// probe for accounts. The route is rate limited separately.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req resetRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var user models.User
	err := h.DB.Where("LOWER(username) = LOWER(?)", strings.TrimSpace(req.Username)).
		First(&user).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "lookup user failed")
		return
	}

	resp := util.Response{"message": "if the account exists, a reset token has been issued"}

	if err == gorm.ErrRecordNotFound {
		util.Success(c, resp)
		return
	}

	token, err := h.Tokens.Issue(user.ID, time.Now())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "issue reset token failed")
		return
	}

	// Single-user local deployment: there is no mail pipeline, the
	// token comes back in the response for the CLI to display.
	resp["reset_token"] = token
	util.Success(c, resp)
}

type resetConfirmReq struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ConfirmPasswordReset trades a valid token for a new password.
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req resetConfirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	if !util.StrongPassword(req.NewPassword) {
		util.FieldError(c, "new_password", "must be 8-32 characters with upper, lower and digit")
		return
	}

	userID, ok, err := h.Tokens.Verify(req.Token, time.Now())
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "verify reset token failed")
		return
	}
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired reset token")
		return
	}

	hash, err := util.HashPassword(req.NewPassword)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "hash password failed")
		return
	}

	if err := h.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("password_hash", hash).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update password failed")
		return
	}
	if err := h.Tokens.Consume(req.Token); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "consume reset token failed")
		return
	}

	h.Log.WithField("user_id", userID).Info("password reset")

	util.Success(c, util.Response{"message": "password updated, log in with the new password"})
}
