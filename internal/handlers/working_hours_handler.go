package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	"github.com/BruksfildServices01/studio-manager/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

// validate checks clock values and their order. "HH:MM" strings compare
// correctly as text.
func (d WorkingDayConfig) validate() error {
	if !d.Active {
		return nil
	}
	if !domain.ValidClock(d.StartTime) || !domain.ValidClock(d.EndTime) || d.StartTime >= d.EndTime {
		return httperr.ErrBusiness("invalid_working_hours")
	}
	if d.LunchStart == "" && d.LunchEnd == "" {
		return nil
	}
	if !domain.ValidClock(d.LunchStart) || !domain.ValidClock(d.LunchEnd) ||
		d.LunchStart >= d.LunchEnd || d.LunchStart < d.StartTime || d.LunchEnd > d.EndTime {
		return httperr.ErrBusiness("invalid_lunch_break")
	}
	return nil
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	var hours []models.WorkingHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("studio_id = ?", studioID(c)).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.FromError(c, err, "failed_to_get_working_hours")
		return
	}

	httpresp.List(c, hours)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	sid := studioID(c)

	var req WorkingHoursUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	seen := map[int]bool{}
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Một ngày trong tuần bị lặp lại.")
			return
		}
		seen[d.Weekday] = true

		if err := d.validate(); err != nil {
			httperr.FromError(c, err, "")
			return
		}

		toCreate = append(toCreate, models.WorkingHours{
			StudioID:   sid,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("studio_id = ?", sid).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_save_working_hours")
		return
	}

	httpresp.List(c, toCreate)
}
