package installation

import (
	"encoding/json"
	"errors"
	"time"

	"swdb/internal/history"
	"swdb/internal/httpx"
	"swdb/internal/model"
	"swdb/internal/utils"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Fields lists the externally-visible field names of an installation record,
// in the order history diffs are reported.
var Fields = []string{
	"host", "name", "area", "slots", "status", "statusDate", "software",
	"vvResultsLoc", "vvApprovalDate", "drr",
}

// Service is the store adapter for installation records. It owns the
// (host, software) uniqueness invariant and appends history entries after
// every successful write.
//
// The software reference is stored as-is: whether it resolves to an existing
// software record is not checked anywhere, mirroring the source system.
type Service struct {
	db   *gorm.DB
	hist *history.Service
}

// NewService creates an installation store adapter
func NewService(db *gorm.DB, hist *history.Service) *Service {
	return &Service{db: db, hist: hist}
}

// Create inserts a new record from validated request fields
func (s *Service) Create(fields map[string]interface{}, actor string) (*model.Installation, *httpx.AppError) {
	var inst model.Installation
	if err := apply(&inst, fields); err != nil {
		return nil, httpx.ErrParamInvalid(err.Error())
	}

	var count int64
	if err := s.db.Model(&model.Installation{}).
		Where("host = ? AND software_id = ?", inst.Host, inst.SoftwareID).
		Count(&count).Error; err != nil {
		return nil, httpx.ErrDatabaseError("failed to check installation uniqueness", err)
	}
	if count > 0 {
		return nil, httpx.ErrAlreadyExists("installation with this host and software already exists")
	}

	if err := s.db.Create(&inst).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, httpx.ErrAlreadyExists("installation with this host and software already exists")
		}
		return nil, httpx.ErrDatabaseError("failed to create installation", err)
	}

	s.hist.Record(model.DocTypeInstallation, inst.ID, actor, history.Diff(nil, Snapshot(&inst), submittedFields(fields)))
	return &inst, nil
}

// Get returns one record by id
func (s *Service) Get(id int) (*model.Installation, *httpx.AppError) {
	var inst model.Installation
	if err := s.db.First(&inst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound("installation not found")
		}
		return nil, httpx.ErrDatabaseError("failed to query installation", err)
	}
	return &inst, nil
}

// List returns all records
func (s *Service) List() ([]model.Installation, *httpx.AppError) {
	var items []model.Installation
	if err := s.db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, httpx.ErrDatabaseError("failed to query installations", err)
	}
	return items, nil
}

// Update applies a partial update with the same semantics as the software
// adapter: present fields overwrite, absent fields are untouched
func (s *Service) Update(id int, fields map[string]interface{}, actor string) (*model.Installation, *httpx.AppError) {
	var inst model.Installation
	if err := s.db.First(&inst, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound("installation not found")
		}
		return nil, httpx.ErrDatabaseError("failed to query installation", err)
	}

	before := Snapshot(&inst)

	if err := apply(&inst, fields); err != nil {
		return nil, httpx.ErrParamInvalid(err.Error())
	}

	_, hostSet := fields["host"]
	_, softwareSet := fields["software"]
	if hostSet || softwareSet {
		var count int64
		if err := s.db.Model(&model.Installation{}).
			Where("host = ? AND software_id = ? AND id <> ?", inst.Host, inst.SoftwareID, inst.ID).
			Count(&count).Error; err != nil {
			return nil, httpx.ErrDatabaseError("failed to check installation uniqueness", err)
		}
		if count > 0 {
			return nil, httpx.ErrAlreadyExists("installation with this host and software already exists")
		}
	}

	if err := s.db.Save(&inst).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, httpx.ErrAlreadyExists("installation with this host and software already exists")
		}
		return nil, httpx.ErrDatabaseError("failed to update installation", err)
	}

	s.hist.Record(model.DocTypeInstallation, inst.ID, actor, history.Diff(before, Snapshot(&inst), Fields))
	return &inst, nil
}

// Snapshot flattens a record into the wire-level field map used for history
// diffs and responses
func Snapshot(inst *model.Installation) map[string]interface{} {
	return map[string]interface{}{
		"host":           inst.Host,
		"name":           inst.Name,
		"area":           decodeArray(inst.Area),
		"slots":          decodeArray(inst.Slots),
		"status":         inst.Status,
		"statusDate":     formatDate(inst.StatusDate),
		"software":       float64(inst.SoftwareID),
		"vvResultsLoc":   decodeArray(inst.VVResultsLoc),
		"vvApprovalDate": formatDate(inst.VVApprovalDate),
		"drr":            inst.DRR,
	}
}

func apply(inst *model.Installation, fields map[string]interface{}) error {
	for name, raw := range fields {
		// A null value means not submitted, same as the validator treats it
		if raw == nil {
			continue
		}
		switch name {
		case "host":
			inst.Host = raw.(string)
		case "name":
			inst.Name = raw.(string)
		case "area":
			b, err := json.Marshal(raw)
			if err != nil {
				return err
			}
			inst.Area = b
		case "slots":
			b, err := json.Marshal(raw)
			if err != nil {
				return err
			}
			inst.Slots = b
		case "status":
			inst.Status = raw.(string)
		case "statusDate":
			t, err := utils.ParseDate(raw.(string))
			if err != nil {
				return err
			}
			inst.StatusDate = t
		case "software":
			id, err := utils.ToID(raw)
			if err != nil {
				return err
			}
			inst.SoftwareID = id
		case "vvResultsLoc":
			b, err := json.Marshal(raw)
			if err != nil {
				return err
			}
			inst.VVResultsLoc = b
		case "vvApprovalDate":
			t, err := utils.ParseDate(raw.(string))
			if err != nil {
				return err
			}
			inst.VVApprovalDate = t
		case "drr":
			inst.DRR = raw.(string)
		}
	}
	return nil
}

// submittedFields filters the declared field order down to what the request
// actually carried, so a create's history entry names only submitted fields
func submittedFields(fields map[string]interface{}) []string {
	out := make([]string, 0, len(fields))
	for _, name := range Fields {
		if raw, ok := fields[name]; ok && raw != nil {
			out = append(out, name)
		}
	}
	return out
}

func formatDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

func isDuplicateErr(err error) bool {
	var mysqlErr *mysqldriver.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func decodeArray(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out []interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
