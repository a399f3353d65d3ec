package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/appointment"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/studio-manager/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	confirm      *ucAppointment.ConfirmAppointment
	complete     *ucAppointment.CompleteAppointment
	cancel       *ucAppointment.CancelAppointment
	noShow       *ucAppointment.MarkNoShow
	listByDate   *ucAppointment.ListAppointmentsByDate
	listByMonth  *ucAppointment.ListAppointmentsByMonth
	listUpcoming *ucAppointment.ListUpcomingAppointments
	availability *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	confirm *ucAppointment.ConfirmAppointment,
	complete *ucAppointment.CompleteAppointment,
	cancel *ucAppointment.CancelAppointment,
	noShow *ucAppointment.MarkNoShow,
	listByDate *ucAppointment.ListAppointmentsByDate,
	listByMonth *ucAppointment.ListAppointmentsByMonth,
	listUpcoming *ucAppointment.ListUpcomingAppointments,
	availability *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		confirm:      confirm,
		complete:     complete,
		cancel:       cancel,
		noShow:       noShow,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
		listUpcoming: listUpcoming,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CoupleName    string `json:"couple_name"`
	Phone         string `json:"phone"`
	CustomerID    *uint  `json:"customer_id"`
	ContractID    *uint  `json:"contract_id"`
	StaffMemberID *uint  `json:"staff_member_id"`
	Kind          string `json:"kind"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	DurationMin   int    `json:"duration_min" binding:"min=0,max=1440"`
	Location      string `json:"location"`
	Notes         string `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		StudioID:      studioID(c),
		UserID:        userID(c),
		CoupleName:    req.CoupleName,
		Phone:         req.Phone,
		CustomerID:    req.CustomerID,
		ContractID:    req.ContractID,
		StaffMemberID: req.StaffMemberID,
		Kind:          req.Kind,
		Date:          req.Date,
		Time:          req.Time,
		DurationMin:   req.DurationMin,
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Vui lòng chọn ngày.")
		return
	}

	date, err := parseDay(dateStr)
	if err != nil {
		httperr.FromError(c, err, "invalid_date")
		return
	}

	var statuses []string
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		statuses = strings.Split(raw, ",")
		for _, s := range statuses {
			if !domain.Machine.Valid(domain.Status(s)) {
				httperr.FromError(c, httperr.ErrBusiness("invalid_status"), "")
				return
			}
		}
	}

	list, err := h.listByDate.Execute(c.Request.Context(), studioID(c), date, statuses)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}

	list, err := h.listByMonth.Execute(c.Request.Context(), studioID(c), year, int(month))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        int(month),
		"appointments": list,
	})
}

func (h *AppointmentHandler) ListUpcoming(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	list, err := h.listUpcoming.Execute(c.Request.Context(), studioID(c), days)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Vui lòng chọn ngày.")
		return
	}
	date, err := parseDay(dateStr)
	if err != nil {
		httperr.FromError(c, err, "invalid_date")
		return
	}

	in := domain.AvailabilityInput{StudioID: studioID(c), Date: date}

	if raw := c.Query("kind"); raw != "" {
		kind, err := domain.ParseKind(raw)
		if err != nil {
			httperr.FromError(c, err, "invalid_kind")
			return
		}
		in.Kind = kind
	}

	if raw := c.Query("duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 || minutes > 1440 {
			httperr.BadRequest(c, "invalid_duration", "Thời lượng không hợp lệ.")
			return
		}
		in.Duration = time.Duration(minutes) * time.Minute
	}

	if raw := c.Query("staff_member_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Mã không hợp lệ.")
			return
		}
		staffID := uint(id)
		in.StaffMemberID = &staffID
	}

	slots, err := h.availability.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err, "availability_failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

func (h *AppointmentHandler) Statuses(c *gin.Context) {
	httpresp.List(c, domain.Machine.Describe())
}

// ======================================================
// STATUS ACTIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), studioID(c), userID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_confirm_appointment")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), studioID(c), userID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_complete_appointment")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), studioID(c), userID(c), id, req.Reason)
	if err != nil {
		httperr.FromError(c, err, "failed_to_cancel_appointment")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.noShow.Execute(c.Request.Context(), studioID(c), userID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_mark_no_show")
		return
	}

	httpresp.OK(c, ap)
}
