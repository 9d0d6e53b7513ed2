package swdb

import (
	"fmt"
	"strconv"

	"swdb/internal/config"
	"swdb/internal/history"
	"swdb/internal/httpx"
	"swdb/internal/model"
	"swdb/internal/software"
	"swdb/internal/validation"
	"swdb/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CollectionPath is the base path for Location headers on create
const CollectionPath = "/api/v1/swdb"

// Handler owns the software record routes
type Handler struct {
	svc   *software.Service
	hist  *history.Service
	enums *config.Enums
}

// NewHandler creates the software handler
func NewHandler(db *gorm.DB, hist *history.Service, enums *config.Enums) *Handler {
	return &Handler{
		svc:   software.NewService(db, hist),
		hist:  hist,
		enums: enums,
	}
}

// List handles GET /api/v1/swdb
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

// GetByID handles GET /api/v1/swdb/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	sw, appErr := h.svc.Get(id)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}
	httpx.OK(c, RecordDTO(sw))
}

// Create handles POST /api/v1/swdb
func (h *Handler) Create(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	if violations := validation.Validate(validation.SoftwareRules, body, validation.ModeCreate, h.enums); violations != nil {
		httpx.FailErr(c, httpx.ErrValidation(violations))
		return
	}

	sw, appErr := h.svc.Create(body, c.GetString("username"))
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	dto := RecordDTO(sw)
	ws.PublishRecordEvent("swdb", ws.EventCreate, sw.ID, dto)
	httpx.Created(c, fmt.Sprintf("%s/%d", CollectionPath, sw.ID), dto)
}

// Update handles PUT and PATCH /api/v1/swdb/:id. Both verbs share partial
// semantics: absent fields are left untouched on the stored record.
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

	if violations := validation.Validate(validation.SoftwareRules, body, validation.ModeUpdate, h.enums); violations != nil {
		httpx.FailErr(c, httpx.ErrValidation(violations))
		return
	}

	sw, appErr := h.svc.Update(id, body, c.GetString("username"))
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	dto := RecordDTO(sw)
	ws.PublishRecordEvent("swdb", ws.EventUpdate, sw.ID, dto)
	httpx.OK(c, dto)
}

// History handles GET /api/v1/swdb/hist/:id, oldest entry first
func (h *Handler) History(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	entries, err := h.hist.List(model.DocTypeSoftware, id)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to query history", err))
		return
	}
	httpx.OK(c, entries)
}

// BatchSummaries handles POST /api/v1/swdb/list: body is a list of record
// ids, response maps each resolvable id to its name/version/branch summary
func (h *Handler) BatchSummaries(c *gin.Context) {
	var rawIDs []interface{}
	if err := c.ShouldBindJSON(&rawIDs); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("request body must be a list of record ids"))
		return
	}

	ids := make([]int, 0, len(rawIDs))
	for _, raw := range rawIDs {
		switch v := raw.(type) {
		case float64:
			ids = append(ids, int(v))
		case string:
			n, err := strconv.Atoi(v)
			if err != nil {
				httpx.FailErr(c, httpx.ErrParamInvalid(fmt.Sprintf("invalid record id %q", v)))
				return
			}
			ids = append(ids, n)
		default:
			httpx.FailErr(c, httpx.ErrParamInvalid("record ids must be numbers"))
			return
		}
	}

	summaries, appErr := h.svc.Summaries(ids)
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	out := make(map[string]software.Summary, len(summaries))
	for id, s := range summaries {
		out[strconv.Itoa(id)] = s
	}
	httpx.OK(c, out)
}

func (h *Handler) bindID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid id"))
		return 0, false
	}
	return id, true
}
