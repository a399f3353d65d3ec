package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	ucPayroll "github.com/BruksfildServices01/studio-manager/internal/usecase/payroll"
)

// StaffHandler serves staff records, attendance, rewards and payslips.
type StaffHandler struct {
	staff      *ucPayroll.ManageStaff
	attendance *ucPayroll.RecordAttendance
	payroll    *ucPayroll.CalculatePayroll
}

func NewStaffHandler(
	staff *ucPayroll.ManageStaff,
	attendance *ucPayroll.RecordAttendance,
	payroll *ucPayroll.CalculatePayroll,
) *StaffHandler {
	return &StaffHandler{staff: staff, attendance: attendance, payroll: payroll}
}

// ======================================================
// STAFF
// ======================================================

func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.staff.List(c.Request.Context(), studioID(c), c.Query("status"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_staff")
		return
	}
	httpresp.List(c, staff)
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	s, err := h.staff.Get(c.Request.Context(), studioID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_staff")
		return
	}
	httpresp.OK(c, s)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req ucPayroll.StaffInput
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.staff.Create(c.Request.Context(), studioID(c), userID(c), req)
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_staff")
		return
	}
	httpresp.Created(c, s)
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ucPayroll.StaffInput
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.staff.Update(c.Request.Context(), studioID(c), userID(c), id, req)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_staff")
		return
	}
	httpresp.OK(c, s)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.staff.Delete(c.Request.Context(), studioID(c), userID(c), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_staff")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// ATTENDANCE + REWARDS
// ======================================================

func (h *StaffHandler) RecordAttendance(c *gin.Context) {
	var req ucPayroll.AttendanceInput
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.attendance.Record(c.Request.Context(), studioID(c), req)
	if err != nil {
		httperr.FromError(c, err, "failed_to_record_attendance")
		return
	}
	httpresp.OK(c, a)
}

func (h *StaffHandler) ListAttendance(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}

	rows, err := h.attendance.List(c.Request.Context(), studioID(c), id, year, month)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_attendance")
		return
	}
	httpresp.List(c, rows)
}

func (h *StaffHandler) AddReward(c *gin.Context) {
	var req ucPayroll.RewardInput
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.attendance.AddReward(c.Request.Context(), studioID(c), req)
	if err != nil {
		httperr.FromError(c, err, "failed_to_add_reward")
		return
	}
	httpresp.Created(c, r)
}

func (h *StaffHandler) ListRewards(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}

	rows, err := h.attendance.ListRewards(c.Request.Context(), studioID(c), id, year, month)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_rewards")
		return
	}
	httpresp.List(c, rows)
}

func (h *StaffHandler) DeleteReward(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.attendance.DeleteReward(c.Request.Context(), studioID(c), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_reward")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// PAYROLL
// ======================================================

func (h *StaffHandler) Payslip(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}

	slip, err := h.payroll.ForStaff(c.Request.Context(), studioID(c), id, year, month)
	if err != nil {
		httperr.FromError(c, err, "failed_to_calculate_payroll")
		return
	}
	httpresp.OK(c, slip)
}

func (h *StaffHandler) Payroll(c *gin.Context) {
	year, month, ok := yearMonth(c)
	if !ok {
		return
	}

	out, err := h.payroll.ForStudio(c.Request.Context(), studioID(c), year, month)
	if err != nil {
		httperr.FromError(c, err, "failed_to_calculate_payroll")
		return
	}
	httpresp.OK(c, out)
}
