package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	sid := studioID(c)
	ctx := c.Request.Context()

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var studio models.Studio
	if err := h.db.WithContext(ctx).First(&studio, sid).Error; err != nil {
		httperr.FromError(c, err, "failed_to_get_studio")
		return
	}
	loc := timezone.Location(studio.Timezone)

	// --------------------------------------------------
	// Base query, always scoped to the studio
	// --------------------------------------------------

	q := h.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("studio_id = ?", sid)

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Mã không hợp lệ.")
			return
		}
		q = q.Where("entity_id = ?", id)
	}

	// from/to are inclusive calendar days in the studio timezone
	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation(dateLayout, raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Ngày không hợp lệ.")
			return
		}
		q = q.Where("created_at >= ?", from.UTC())
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation(dateLayout, raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Ngày không hợp lệ.")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1).UTC())
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.FromError(c, err, "audit_count_failed")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {

		httperr.FromError(c, err, "audit_list_failed")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
