package inst

import (
	"fmt"
	"strconv"

	"swdb/internal/config"
	"swdb/internal/history"
	"swdb/internal/httpx"
	"swdb/internal/installation"
	"swdb/internal/model"
	"swdb/internal/validation"
	"swdb/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CollectionPath is the base path for Location headers on create
const CollectionPath = "/api/v1/inst"

// Handler owns the installation record routes
type Handler struct {
	svc   *installation.Service
	hist  *history.Service
	enums *config.Enums
}

// NewHandler creates the installation handler
func NewHandler(db *gorm.DB, hist *history.Service, enums *config.Enums) *Handler {
	return &Handler{
		svc:   installation.NewService(db, hist),
		hist:  hist,
		enums: enums,
	}
}

// List handles GET /api/v1/inst
func (h *Handler) List(c *gin.Context) {
	items, appErr := h.svc.List()
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	list := make([]map[string]interface{}, 0, len(items))
	for i := range items {
		list = append(list, RecordDTO(&items[i]))
	}
	httpx.OK(c, list)
}

// GetByID handles GET /api/v1/inst/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	in, appErr := h.svc.Get(id)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}
	httpx.OK(c, RecordDTO(in))
}

// Create handles POST /api/v1/inst. The software reference is accepted
// without checking it resolves to an existing software record.
func (h *Handler) Create(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	if violations := validation.Validate(validation.InstallationRules, body, validation.ModeCreate, h.enums); violations != nil {
		httpx.FailErr(c, httpx.ErrValidation(violations))
		return
	}

	in, appErr := h.svc.Create(body, c.GetString("username"))
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	dto := RecordDTO(in)
	ws.PublishRecordEvent("inst", ws.EventCreate, in.ID, dto)
	httpx.Created(c, fmt.Sprintf("%s/%d", CollectionPath, in.ID), dto)
}

// Update handles PUT and PATCH /api/v1/inst/:id with partial semantics
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	if violations := validation.Validate(validation.InstallationRules, body, validation.ModeUpdate, h.enums); violations != nil {
		httpx.FailErr(c, httpx.ErrValidation(violations))
		return
	}

	in, appErr := h.svc.Update(id, body, c.GetString("username"))
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	dto := RecordDTO(in)
	ws.PublishRecordEvent("inst", ws.EventUpdate, in.ID, dto)
	httpx.OK(c, dto)
}

// History handles GET /api/v1/inst/hist/:id, oldest entry first
func (h *Handler) History(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	entries, err := h.hist.List(model.DocTypeInstallation, id)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query history", err))
		return
	}
	httpx.OK(c, entries)
}

func (h *Handler) bindID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid id"))
		return 0, false
	}
	return id, true
}
