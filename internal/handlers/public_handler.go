package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/domain/catalog"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	ucAppointment "github.com/BruksfildServices01/studio-manager/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler backs the studio's booking page: the price list, free
// consultation slots and the consultation request form. No auth.
type PublicHandler struct {
	db           *gorm.DB
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucAppointment.GetAvailability,
	create *ucAppointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{db: db, availability: availability, create: create}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicConsultationRequest struct {
	CoupleName string `json:"couple_name" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string `json:"time" binding:"required"` // HH:mm
	Notes      string `json:"notes"`
}

type publicItem struct {
	ID          uint     `json:"id"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	Features    []string `json:"features"`
	Category    string   `json:"category"`
}

func (h *PublicHandler) studio(c *gin.Context) (*models.Studio, bool) {
	var studio models.Studio
	if err := h.db.WithContext(c.Request.Context()).
		Where("slug = ?", c.Param("slug")).
		First(&studio).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "studio_not_found", "Không tìm thấy studio.")
			return nil, false
		}
		httperr.FromError(c, err, "failed_to_get_studio")
		return nil, false
	}
	return &studio, true
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) Catalog(c *gin.Context) {
	studio, ok := h.studio(c)
	if !ok {
		return
	}

	q := h.db.WithContext(c.Request.Context()).
		Where("studio_id = ? AND active = ?", studio.ID, true)

	if raw := c.Query("kind"); raw != "" {
		kind, err := catalog.ParseKind(raw)
		if err != nil {
			httperr.FromError(c, err, "")
			return
		}
		q = q.Where("kind = ?", string(kind))
	}

	var items []models.CatalogItem
	if err := q.Order("kind DESC, price ASC, id ASC").Find(&items).Error; err != nil {
		httperr.FromError(c, err, "failed_to_list_catalog")
		return
	}

	out := make([]publicItem, 0, len(items))
	for _, it := range items {
		out = append(out, publicItem{
			ID:          it.ID,
			Kind:        it.Kind,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Features:    it.Features,
			Category:    it.Category,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"studio": gin.H{"name": studio.Name, "slug": studio.Slug, "phone": studio.Phone, "address": studio.Address},
		"items":  out,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY (same use case as the private route)
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	studio, ok := h.studio(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Vui lòng chọn ngày.")
		return
	}
	date, err := parseDay(dateStr)
	if err != nil {
		httperr.FromError(c, err, "")
		return
	}

	duration := domain.DefaultDuration(domain.KindConsultation)
	if raw := c.Query("duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 || minutes > 1440 {
			httperr.BadRequest(c, "invalid_duration", "Thời lượng không hợp lệ.")
			return
		}
		duration = time.Duration(minutes) * time.Minute
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		StudioID: studio.ID,
		Date:     date,
		Duration: duration,
	})
	if err != nil {
		httperr.FromError(c, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CONSULTATION REQUEST (reuses the private use case)
////////////////////////////////////////////////////////

func (h *PublicHandler) RequestConsultation(c *gin.Context) {
	studio, ok := h.studio(c)
	if !ok {
		return
	}

	var req PublicConsultationRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		StudioID:   studio.ID,
		CoupleName: req.CoupleName,
		Phone:      req.Phone,
		Kind:       string(domain.KindConsultation),
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, gin.H{
		"id":         ap.ID,
		"status":     ap.Status,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
	})
}
