package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
	ucAccounting "github.com/BruksfildServices01/studio-manager/internal/usecase/accounting"
)

type AccountingHandler struct {
	transactions *ucAccounting.ManageTransactions
	reports      *ucAccounting.Reports
}

func NewAccountingHandler(
	transactions *ucAccounting.ManageTransactions,
	reports *ucAccounting.Reports,
) *AccountingHandler {
	return &AccountingHandler{transactions: transactions, reports: reports}
}

func period(c *gin.Context) ucAccounting.PeriodQuery {
	return ucAccounting.PeriodQuery{From: c.Query("from"), To: c.Query("to")}
}

// ======================================================
// TRANSACTIONS
// ======================================================

func (h *AccountingHandler) List(c *gin.Context) {
	txs, err := h.transactions.List(c.Request.Context(), studioID(c), ucAccounting.ListQuery{
		PeriodQuery: period(c),
		Type:        c.Query("type"),
		Category:    c.Query("category"),
		Status:      c.Query("status"),
		Query:       c.Query("query"),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_transactions")
		return
	}
	httpresp.List(c, txs)
}

func (h *AccountingHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	tx, err := h.transactions.Get(c.Request.Context(), studioID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_transaction")
		return
	}
	httpresp.OK(c, tx)
}

func (h *AccountingHandler) Create(c *gin.Context) {
	var req ucAccounting.TransactionInput
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.transactions.Create(c.Request.Context(), studioID(c), userID(c), req)
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_transaction")
		return
	}
	httpresp.Created(c, tx)
}

func (h *AccountingHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ucAccounting.TransactionInput
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.transactions.Update(c.Request.Context(), studioID(c), userID(c), id, req)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_transaction")
		return
	}
	httpresp.OK(c, tx)
}

func (h *AccountingHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.transactions.Delete(c.Request.Context(), studioID(c), userID(c), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// REPORTS
// ======================================================

func (h *AccountingHandler) Summary(c *gin.Context) {
	s, err := h.reports.Summary(c.Request.Context(), studioID(c), period(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_build_report")
		return
	}
	httpresp.OK(c, s)
}

func (h *AccountingHandler) ByCategory(c *gin.Context) {
	rows, err := h.reports.ByCategory(c.Request.Context(), studioID(c), period(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_build_report")
		return
	}
	httpresp.List(c, rows)
}

// Monthly defaults to the current year.
func (h *AccountingHandler) Monthly(c *gin.Context) {
	year := timezone.Now().Year()
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_period", "Kỳ không hợp lệ.")
			return
		}
		year = y
	}

	rows, err := h.reports.Monthly(c.Request.Context(), studioID(c), year)
	if err != nil {
		httperr.FromError(c, err, "failed_to_build_report")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":   year,
		"months": rows,
	})
}
