package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/middleware"
)

func studioID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextStudioID).(uint)
}

func userID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

func userName(c *gin.Context) string {
	return c.GetString(middleware.ContextUserName)
}

// idParam reads a positive numeric path parameter and writes the 400 itself.
func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_id", "Mã không hợp lệ.")
		return 0, false
	}
	return uint(v), true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dữ liệu không hợp lệ.")
		return false
	}
	return true
}

// boolQuery reads an optional true/false query parameter.
func boolQuery(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Dữ liệu không hợp lệ.")
		return nil, false
	}
	return &v, true
}
