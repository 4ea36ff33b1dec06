package handler

import (
	"net/http"
	"strings"

	"github.com/WatsonMulkey/The-Number/internal/timeutil"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type updateProfileReq struct {
	DisplayName *string `json:"display_name" binding:"omitempty,max=64"`
	Timezone    *string `json:"timezone" binding:"omitempty,max=64"`
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// GetMe returns the current user's profile.
func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		resp := userResp(user)
		resp["last_login_at"] = user.LastLoginAt
		util.Success(c, util.Response{"user": resp})
	}
}

// UpdateProfile changes display name and/or timezone. The timezone must
// be a valid IANA name; it decides where the user's day starts.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req updateProfileReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}

		updates := map[string]interface{}{}
		if req.DisplayName != nil {
			name := strings.TrimSpace(*req.DisplayName)
			updates["display_name"] = name
			user.DisplayName = name
		}
		if req.Timezone != nil {
			tz := strings.TrimSpace(*req.Timezone)
			if tz != "" && !timeutil.Valid(tz) {
				util.FieldError(c, "timezone", "is not a valid IANA timezone name")
				return
			}
			updates["timezone"] = tz
			user.Timezone = tz
		}

		if len(updates) > 0 {
			if err := db.Model(user).Updates(updates).Error; err != nil {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update profile failed")
				return
			}
		}

		util.Success(c, util.Response{"user": userResp(user)})
	}
}

// ChangePassword verifies the old password before setting the new one.
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}

		var req changePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}

		if !util.CheckPassword(req.OldPassword, user.PasswordHash) {
			util.FieldError(c, "old_password", "is incorrect")
			return
		}
		if !util.StrongPassword(req.NewPassword) {
			util.FieldError(c, "new_password", "must be 8-32 characters with upper, lower and digit")
			return
		}

		hash, err := util.HashPassword(req.NewPassword)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "hash password failed")
			return
		}

		if err := db.Model(user).Update("password_hash", hash).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "update password failed")
			return
		}

		util.Success(c, util.Response{"message": "password changed, log in with the new password"})
	}
}
