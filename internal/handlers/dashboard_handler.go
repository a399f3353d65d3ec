package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	ucDashboard "github.com/BruksfildServices01/studio-manager/internal/usecase/dashboard"
)

type DashboardHandler struct {
	overview *ucDashboard.GetOverview
}

func NewDashboardHandler(overview *ucDashboard.GetOverview) *DashboardHandler {
	return &DashboardHandler{overview: overview}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	o, err := h.overview.Execute(c.Request.Context(), studioID(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_build_dashboard")
		return
	}
	httpresp.OK(c, o)
}
