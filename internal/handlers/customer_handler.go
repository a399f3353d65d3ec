package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/customer"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	ucCustomer "github.com/BruksfildServices01/studio-manager/internal/usecase/customer"
)

type CustomerHandler struct {
	list      *ucCustomer.ListCustomers
	get       *ucCustomer.GetCustomer
	save      *ucCustomer.SaveCustomer
	addNote   *ucCustomer.AddCustomerNote
	summarize *ucCustomer.SummarizeNotes
}

func NewCustomerHandler(
	list *ucCustomer.ListCustomers,
	get *ucCustomer.GetCustomer,
	save *ucCustomer.SaveCustomer,
	addNote *ucCustomer.AddCustomerNote,
	summarize *ucCustomer.SummarizeNotes,
) *CustomerHandler {
	return &CustomerHandler{
		list:      list,
		get:       get,
		save:      save,
		addNote:   addNote,
		summarize: summarize,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CustomerRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Source      string `json:"source"`
	Status      string `json:"status"`
	WeddingDate string `json:"wedding_date"`
}

func (r CustomerRequest) input() (ucCustomer.CustomerInput, error) {
	wedding, err := optionalDay(r.WeddingDate)
	if err != nil {
		return ucCustomer.CustomerInput{}, err
	}
	return ucCustomer.CustomerInput{
		Name:        r.Name,
		Phone:       r.Phone,
		Email:       r.Email,
		Source:      r.Source,
		Status:      r.Status,
		WeddingDate: wedding,
	}, nil
}

type NoteRequest struct {
	Content string `json:"content"`
}

// ======================================================
// CRUD
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.list.Execute(c.Request.Context(), studioID(c), domain.ListFilter{
		Status: c.Query("status"),
		Query:  c.Query("query"),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_customers")
		return
	}

	httpresp.List(c, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.get.Execute(c.Request.Context(), studioID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_customer")
		return
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		httperr.FromError(c, err, "")
		return
	}

	customer, err := h.save.Create(c.Request.Context(), studioID(c), userID(c), in)
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_customer")
		return
	}

	httpresp.Created(c, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		httperr.FromError(c, err, "")
		return
	}

	customer, err := h.save.Update(c.Request.Context(), studioID(c), userID(c), id, in)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_customer")
		return
	}

	httpresp.OK(c, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.save.Delete(c.Request.Context(), studioID(c), userID(c), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_customer")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// NOTES
// ======================================================

func (h *CustomerHandler) AddNote(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req NoteRequest
	if !bindJSON(c, &req) {
		return
	}

	note, err := h.addNote.Execute(c.Request.Context(), studioID(c), id, userName(c), req.Content)
	if err != nil {
		httperr.FromError(c, err, "failed_to_add_note")
		return
	}

	httpresp.Created(c, note)
}

func (h *CustomerHandler) Summarize(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.summarize.Execute(c.Request.Context(), studioID(c), userID(c), id)
	if err != nil {
		httperr.FromError(c, err, "summary_unavailable")
		return
	}

	httpresp.OK(c, customer)
}
