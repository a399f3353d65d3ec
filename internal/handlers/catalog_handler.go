package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	ucCatalog "github.com/BruksfildServices01/studio-manager/internal/usecase/catalog"
)

type CatalogHandler struct {
	catalog *ucCatalog.Catalog
}

func NewCatalogHandler(catalog *ucCatalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List serves both the "Dịch vụ" and "Gói chụp" tabs; ?kind selects one.
func (h *CatalogHandler) List(c *gin.Context) {
	active, ok := boolQuery(c, "active")
	if !ok {
		return
	}

	items, err := h.catalog.List(c.Request.Context(), studioID(c), ucCatalog.ListQuery{
		Kind:   c.Query("kind"),
		Active: active,
		Query:  c.Query("query"),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_catalog")
		return
	}

	httpresp.List(c, items)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	item, err := h.catalog.Get(c.Request.Context(), studioID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_catalog_item")
		return
	}

	httpresp.OK(c, item)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req ucCatalog.ItemInput
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.catalog.Create(c.Request.Context(), studioID(c), userID(c), req)
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_catalog_item")
		return
	}

	httpresp.Created(c, item)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ucCatalog.ItemInput
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.catalog.Update(c.Request.Context(), studioID(c), userID(c), id, req)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_catalog_item")
		return
	}

	httpresp.OK(c, item)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), studioID(c), userID(c), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_catalog_item")
		return
	}

	c.Status(http.StatusNoContent)
}
