package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

type StudioHandler struct {
	db *gorm.DB
}

func NewStudioHandler(db *gorm.DB) *StudioHandler {
	return &StudioHandler{db: db}
}

type UpdateStudioRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *StudioHandler) load(c *gin.Context) (*models.Studio, bool) {
	var studio models.Studio
	if err := h.db.WithContext(c.Request.Context()).First(&studio, studioID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "studio_not_found", "Không tìm thấy studio.")
			return nil, false
		}
		httperr.FromError(c, err, "failed_to_get_studio")
		return nil, false
	}
	return &studio, true
}

func (h *StudioHandler) Get(c *gin.Context) {
	studio, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, studio)
}

func (h *StudioHandler) Update(c *gin.Context) {
	studio, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateStudioRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "missing_name", "Vui lòng nhập tên studio.")
			return
		}
		studio.Name = name
	}
	if req.Phone != nil {
		studio.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		studio.Address = strings.TrimSpace(*req.Address)
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Múi giờ không hợp lệ.")
			return
		}
		studio.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Thời gian đặt trước phải lớn hơn hoặc bằng 0 phút.")
			return
		}
		studio.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.WithContext(c.Request.Context()).Save(studio).Error; err != nil {
		httperr.FromError(c, err, "failed_to_update_studio")
		return
	}

	httpresp.OK(c, studio)
}
