// Package handler holds the HTTP endpoints. Each handler is a struct
// carrying the stores it needs; auth puts the current user into the
// gin context and every endpoint here assumes it is present.
package handler

import (
	"net/http"

	"github.com/WatsonMulkey/The-Number/internal/models"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user from the context, writing
// the 401 itself when missing.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
		return nil, false
	}
	return user, true
}

func userResp(u *models.User) gin.H {
	return gin.H{
		"id":           u.ID,
		"username":     u.Username,
		"display_name": u.DisplayName,
		"timezone":     u.Timezone,
	}
}
