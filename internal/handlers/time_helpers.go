package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
)

const dateLayout = "2006-01-02"

// parseDay reads a calendar day. Calendar days (wedding, shoot, handover)
// are stored as UTC midnight.
func parseDay(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date")
	}
	return t, nil
}

// optionalDay returns nil for an empty string.
func optionalDay(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDay(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// yearMonth reads ?year=&month= and writes the 400 itself.
func yearMonth(c *gin.Context) (int, time.Month, bool) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Vui lòng chọn năm và tháng.")
		return 0, 0, false
	}

	year, err1 := strconv.Atoi(yearStr)
	month, err2 := strconv.Atoi(monthStr)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_period", "Kỳ không hợp lệ.")
		return 0, 0, false
	}
	return year, time.Month(month), true
}
