package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/contract"
	"github.com/BruksfildServices01/studio-manager/internal/domain/fsm"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	"github.com/BruksfildServices01/studio-manager/internal/models"
	ucContract "github.com/BruksfildServices01/studio-manager/internal/usecase/contract"
)

// ======================================================
// HANDLER
// ======================================================

type ContractHandler struct {
	create      *ucContract.CreateContract
	get         *ucContract.GetContract
	list        *ucContract.ListContracts
	update      *ucContract.UpdateContract
	transition  *ucContract.ChangeContractStatus
	addNote     *ucContract.AddContractNote
	services    *ucContract.ManageContractServices
	payment     *ucContract.RecordContractPayment
	paymentLink *ucContract.CreatePaymentLink
}

func NewContractHandler(
	create *ucContract.CreateContract,
	get *ucContract.GetContract,
	list *ucContract.ListContracts,
	update *ucContract.UpdateContract,
	transition *ucContract.ChangeContractStatus,
	addNote *ucContract.AddContractNote,
	services *ucContract.ManageContractServices,
	payment *ucContract.RecordContractPayment,
	paymentLink *ucContract.CreatePaymentLink,
) *ContractHandler {
	return &ContractHandler{
		create:      create,
		get:         get,
		list:        list,
		update:      update,
		transition:  transition,
		addNote:     addNote,
		services:    services,
		payment:     payment,
		paymentLink: paymentLink,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateContractRequest struct {
	CustomerID  uint                     `json:"customer_id"`
	PackageID   uint                     `json:"package_id"`
	WeddingDate string                   `json:"wedding_date"`
	Location    string                   `json:"location"`
	Discount    int64                    `json:"discount"`
	Services    []ucContract.ServiceLine `json:"services"`
	Note        string                   `json:"note"`
}

type UpdateContractRequest struct {
	WeddingDate *string `json:"wedding_date"`
	Location    *string `json:"location"`
	Discount    *int64  `json:"discount"`
}

// ChangeStatusRequest mirrors the status change dialog.
type ChangeStatusRequest struct {
	Status       string `json:"status" binding:"required"`
	Note         string `json:"note"`
	ShootDate    string `json:"shoot_date"`
	HandoverDate string `json:"handover_date"`
	Reason       string `json:"reason"`
}

type RecordPaymentRequest struct {
	Amount int64      `json:"amount"`
	PaidAt *time.Time `json:"paid_at"`
	Note   string     `json:"note"`
}

type PaymentLinkRequest struct {
	Amount int64 `json:"amount"`
}

type statusInfo struct {
	fsm.StateInfo
	Required []string `json:"required"`
}

// ======================================================
// QUERIES
// ======================================================

func (h *ContractHandler) Statuses(c *gin.Context) {
	states := domain.Machine.Describe()
	out := make([]statusInfo, 0, len(states))
	for _, st := range states {
		req := domain.RequiredFields(domain.Status(st.Status))
		if req == nil {
			req = []string{}
		}
		out = append(out, statusInfo{StateInfo: st, Required: req})
	}
	httpresp.List(c, out)
}

func (h *ContractHandler) List(c *gin.Context) {
	f := domain.ListFilter{
		Status: c.Query("status"),
		Query:  c.Query("query"),
	}

	var err error
	if f.WeddingFrom, err = optionalDay(c.Query("wedding_from")); err != nil {
		httperr.FromError(c, err, "")
		return
	}
	if f.WeddingTo, err = optionalDay(c.Query("wedding_to")); err != nil {
		httperr.FromError(c, err, "")
		return
	}
	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Mã không hợp lệ.")
			return
		}
		f.CustomerID = uint(id)
	}

	contracts, err := h.list.Execute(c.Request.Context(), studioID(c), f)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_contracts")
		return
	}

	httpresp.List(c, contracts)
}

func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	v, err := h.get.Execute(c.Request.Context(), studioID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_contract")
		return
	}

	httpresp.OK(c, v)
}

// ======================================================
// COMMANDS
// ======================================================

func (h *ContractHandler) Create(c *gin.Context) {
	var req CreateContractRequest
	if !bindJSON(c, &req) {
		return
	}

	wedding, err := optionalDay(req.WeddingDate)
	if err != nil {
		httperr.FromError(c, err, "")
		return
	}

	contract, err := h.create.Execute(c.Request.Context(), ucContract.CreateContractInput{
		StudioID:    studioID(c),
		UserID:      userID(c),
		Author:      userName(c),
		CustomerID:  req.CustomerID,
		PackageID:   req.PackageID,
		WeddingDate: wedding,
		Location:    req.Location,
		Discount:    req.Discount,
		Services:    req.Services,
		Note:        req.Note,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_contract")
		return
	}

	httpresp.Created(c, ucContract.NewContractView(*contract))
}

func (h *ContractHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateContractRequest
	if !bindJSON(c, &req) {
		return
	}

	in := ucContract.UpdateContractInput{
		StudioID:   studioID(c),
		UserID:     userID(c),
		ContractID: id,
		Location:   req.Location,
		Discount:   req.Discount,
	}
	if req.WeddingDate != nil {
		wedding, err := parseDay(*req.WeddingDate)
		if err != nil {
			httperr.FromError(c, err, "")
			return
		}
		in.WeddingDate = &wedding
	}

	contract, err := h.update.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_contract")
		return
	}

	httpresp.OK(c, ucContract.NewContractView(*contract))
}

func (h *ContractHandler) ChangeStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	shoot, err := optionalDay(req.ShootDate)
	if err != nil {
		httperr.FromError(c, err, "")
		return
	}
	handover, err := optionalDay(req.HandoverDate)
	if err != nil {
		httperr.FromError(c, err, "")
		return
	}

	contract, err := h.transition.Execute(c.Request.Context(), studioID(c), userID(c), id, domain.TransitionInput{
		To:           domain.Status(req.Status),
		Note:         req.Note,
		ShootDate:    shoot,
		HandoverDate: handover,
		Reason:       req.Reason,
		Author:       userName(c),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_change_status")
		return
	}

	httpresp.OK(c, ucContract.NewContractView(*contract))
}

func (h *ContractHandler) AddNote(c *gin.Context) {
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

func (h *ContractHandler) AddService(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req ucContract.ServiceLine
	if !bindJSON(c, &req) {
		return
	}

	contract, err := h.services.Add(c.Request.Context(), studioID(c), userID(c), id, req)
	if err != nil {
		httperr.FromError(c, err, "failed_to_add_service")
		return
	}

	httpresp.OK(c, ucContract.NewContractView(*contract))
}

func (h *ContractHandler) RemoveService(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	lineID, ok := idParam(c, "lineId")
	if !ok {
		return
	}

	contract, err := h.services.Remove(c.Request.Context(), studioID(c), userID(c), id, lineID)
	if err != nil {
		httperr.FromError(c, err, "failed_to_remove_service")
		return
	}

	httpresp.OK(c, ucContract.NewContractView(*contract))
}

// ======================================================
// PAYMENTS
// ======================================================

func (h *ContractHandler) RecordPayment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	contract, tx, err := h.payment.Execute(c.Request.Context(), ucContract.RecordPaymentInput{
		StudioID:   studioID(c),
		UserID:     userID(c),
		ContractID: id,
		Amount:     req.Amount,
		Date:       req.PaidAt,
		Note:       req.Note,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_record_payment")
		return
	}

	httpresp.Created(c, struct {
		Contract    ucContract.ContractView `json:"contract"`
		Transaction *models.Transaction     `json:"transaction"`
	}{ucContract.NewContractView(*contract), tx})
}

func (h *ContractHandler) PaymentLink(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req PaymentLinkRequest
	if !bindJSON(c, &req) {
		return
	}

	link, err := h.paymentLink.Execute(c.Request.Context(), studioID(c), userID(c), id, req.Amount)
	if err != nil {
		httperr.FromError(c, err, "payment_provider_error")
		return
	}

	httpresp.Created(c, link)
}
