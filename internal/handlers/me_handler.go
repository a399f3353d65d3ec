package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Studio").
		Where("studio_id = ?", studioID(c)).
		First(&user, userID(c)).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "Không tìm thấy người dùng.")
			return
		}
		httperr.FromError(c, err, "failed_to_get_user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   userJSON(&user),
		"studio": user.Studio,
	})
}
