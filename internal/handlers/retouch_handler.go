package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/studio-manager/internal/domain/retouch"
	"github.com/BruksfildServices01/studio-manager/internal/httperr"
	"github.com/BruksfildServices01/studio-manager/internal/httpresp"
	"github.com/BruksfildServices01/studio-manager/internal/infra/imaging"
	"github.com/BruksfildServices01/studio-manager/internal/timezone"
	ucRetouch "github.com/BruksfildServices01/studio-manager/internal/usecase/retouch"
)

type RetouchHandler struct {
	list       *ucRetouch.ListRetouchItems
	get        *ucRetouch.GetRetouchItem
	create     *ucRetouch.CreateRetouchItem
	update     *ucRetouch.UpdateRetouchItem
	transition *ucRetouch.ChangeRetouchStatus
	addNote    *ucRetouch.AddRetouchNote
	upload     *ucRetouch.UploadRetouchImage
}

func NewRetouchHandler(
	list *ucRetouch.ListRetouchItems,
	get *ucRetouch.GetRetouchItem,
	create *ucRetouch.CreateRetouchItem,
	update *ucRetouch.UpdateRetouchItem,
	transition *ucRetouch.ChangeRetouchStatus,
	addNote *ucRetouch.AddRetouchNote,
	upload *ucRetouch.UploadRetouchImage,
) *RetouchHandler {
	return &RetouchHandler{
		list:       list,
		get:        get,
		create:     create,
		update:     update,
		transition: transition,
		addNote:    addNote,
		upload:     upload,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateRetouchRequest struct {
	ContractID uint       `json:"contract_id"`
	Title      string     `json:"title"`
	AssigneeID *uint      `json:"assignee_id"`
	Deadline   *time.Time `json:"deadline"`
}

// UpdateRetouchRequest: assignee_id 0 unassigns, clear_deadline drops the
// deadline.
type UpdateRetouchRequest struct {
	Title         *string    `json:"title"`
	AssigneeID    *uint      `json:"assignee_id"`
	Deadline      *time.Time `json:"deadline"`
	ClearDeadline bool       `json:"clear_deadline"`
}

type RetouchStatusRequest struct {
	Status           string `json:"status" binding:"required"`
	SelectedImageURL string `json:"selected_image_url"`
	RetouchImageURL  string `json:"retouch_image_url"`
	Note             string `json:"note"`
}

// ======================================================
// QUERIES
// ======================================================

func (h *RetouchHandler) Statuses(c *gin.Context) {
	httpresp.List(c, domain.Machine.Describe())
}

func (h *RetouchHandler) List(c *gin.Context) {
	f := domain.ListFilter{Status: c.Query("status")}

	for name, dst := range map[string]*uint{
		"contract_id": &f.ContractID,
		"assignee_id": &f.AssigneeID,
	} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "Mã không hợp lệ.")
			return
		}
		*dst = uint(id)
	}

	overdue, ok := boolQuery(c, "overdue")
	if !ok {
		return
	}

	items, err := h.list.Execute(c.Request.Context(), studioID(c), f, overdue != nil && *overdue)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_retouch")
		return
	}

	httpresp.List(c, items)
}

func (h *RetouchHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	v, err := h.get.Execute(c.Request.Context(), studioID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_retouch")
		return
	}

	httpresp.OK(c, v)
}

// ======================================================
// COMMANDS
// ======================================================

func (h *RetouchHandler) Create(c *gin.Context) {
	var req CreateRetouchRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.create.Execute(c.Request.Context(), ucRetouch.CreateRetouchInput{
		StudioID:   studioID(c),
		UserID:     userID(c),
		ContractID: req.ContractID,
		Title:      req.Title,
		AssigneeID: req.AssigneeID,
		Deadline:   req.Deadline,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_retouch")
		return
	}

	httpresp.Created(c, ucRetouch.NewItemView(*item, timezone.Now()))
}

func (h *RetouchHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRetouchRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.update.Execute(c.Request.Context(), ucRetouch.UpdateRetouchInput{
		StudioID:      studioID(c),
		UserID:        userID(c),
		ItemID:        id,
		Title:         req.Title,
		AssigneeID:    req.AssigneeID,
		Deadline:      req.Deadline,
		ClearDeadline: req.ClearDeadline,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_retouch")
		return
	}

	httpresp.OK(c, ucRetouch.NewItemView(*item, timezone.Now()))
}

func (h *RetouchHandler) ChangeStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RetouchStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.transition.Execute(c.Request.Context(), studioID(c), userID(c), id, domain.TransitionInput{
		To:               domain.Status(req.Status),
		SelectedImageURL: req.SelectedImageURL,
		RetouchImageURL:  req.RetouchImageURL,
		Note:             req.Note,
		Author:           userName(c),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_change_status")
		return
	}

	httpresp.OK(c, ucRetouch.NewItemView(*item, timezone.Now()))
}

func (h *RetouchHandler) AddNote(c *gin.Context) {
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

// Upload takes a multipart "file" field. :slot is "selected" or "retouch".
func (h *RetouchHandler) Upload(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	slot, err := ucRetouch.ParseSlot(c.Param("slot"))
	if err != nil {
		httperr.FromError(c, err, "")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, imaging.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "Ảnh vượt quá dung lượng cho phép.")
			return
		}
		httperr.BadRequest(c, "missing_file", "Vui lòng chọn ảnh.")
		return
	}
	if fh.Size > imaging.MaxUploadBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "Ảnh vượt quá dung lượng cho phép.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.FromError(c, err, "failed_to_read_file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, imaging.MaxUploadBytes+1))
	if err != nil {
		httperr.FromError(c, err, "failed_to_read_file")
		return
	}

	res, err := h.upload.Execute(c.Request.Context(), studioID(c), userID(c), id, slot, data)
	if err != nil {
		httperr.FromError(c, err, "storage_error")
		return
	}

	httpresp.Created(c, res)
}
