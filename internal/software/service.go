package software

import (
	"database/sql"
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

// Fields lists the externally-visible field names of a software record, in
// the order history diffs are reported.
var Fields = []string{
	"swName", "version", "branch", "owner", "engineer", "levelOfCare",
	"status", "statusDate", "desc", "platforms", "designDescDocLoc",
	"descDocLoc", "vvProcLoc", "vvResultsLoc", "versionControl",
	"versionControlLoc", "recertFreq", "recertStatus", "recertDate",
	"previous", "comment",
}

// Summary is the batch-lookup projection of a software record
type Summary struct {
	SwName  string `json:"swName"`
	Version string `json:"version"`
	Branch  string `json:"branch"`
}

// Service is the store adapter for software records. It owns the
// (name, version, branch) uniqueness invariant and appends history entries
// after every successful write.
type Service struct {
	db   *gorm.DB
	hist *history.Service
}

// NewService creates a software store adapter
func NewService(db *gorm.DB, hist *history.Service) *Service {
	return &Service{db: db, hist: hist}
}

// Create inserts a new record from validated request fields and returns it.
// A record with the same (name, version, branch) triple already present
// yields an already-exists error.
func (s *Service) Create(fields map[string]interface{}, actor string) (*model.Software, *httpx.AppError) {
	var sw model.Software
	if err := apply(&sw, fields); err != nil {
		return nil, httpx.ErrParamInvalid(err.Error())
	}

	var count int64
	if err := s.db.Model(&model.Software{}).
		Where("name = ? AND version = ? AND branch = ?", sw.Name, sw.Version, sw.Branch).
		Count(&count).Error; err != nil {
		return nil, httpx.ErrDatabaseError("failed to check software uniqueness", err)
	}
	if count > 0 {
		return nil, httpx.ErrAlreadyExists("software with this name, version and branch already exists")
	}

	if err := s.db.Create(&sw).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, httpx.ErrAlreadyExists("software with this name, version and branch already exists")
		}
		return nil, httpx.ErrDatabaseError("failed to create software", err)
	}

	s.hist.Record(model.DocTypeSoftware, sw.ID, actor, history.Diff(nil, Snapshot(&sw), submittedFields(fields)))
	return &sw, nil
}

// Get returns one record by id
func (s *Service) Get(id int) (*model.Software, *httpx.AppError) {
	var sw model.Software
	if err := s.db.First(&sw, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound("software not found")
		}
		return nil, httpx.ErrDatabaseError("failed to query software", err)
	}
	return &sw, nil
}

// List returns all records
func (s *Service) List() ([]model.Software, *httpx.AppError) {
	var items []model.Software
	if err := s.db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, httpx.ErrDatabaseError("failed to query software", err)
	}
	return items, nil
}

// Summaries resolves a batch of ids to their name/version/branch projection.
// Unknown ids are simply absent from the result.
func (s *Service) Summaries(ids []int) (map[int]Summary, *httpx.AppError) {
	var items []model.Software
	if err := s.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, httpx.ErrDatabaseError("failed to query software", err)
	}

	out := make(map[int]Summary, len(items))
	for _, sw := range items {
		out[sw.ID] = Summary{SwName: sw.Name, Version: sw.Version, Branch: sw.Branch}
	}
	return out, nil
}

// Update applies a partial update: only the fields present in the request are
// overwritten (arrays wholesale-replaced), everything else is left untouched.
// The change set against the pre-write snapshot is appended to history.
func (s *Service) Update(id int, fields map[string]interface{}, actor string) (*model.Software, *httpx.AppError) {
	var sw model.Software
	if err := s.db.First(&sw, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httpx.ErrNotFound("software not found")
		}
		return nil, httpx.ErrDatabaseError("failed to query software", err)
	}

	before := Snapshot(&sw)

	if err := apply(&sw, fields); err != nil {
		return nil, httpx.ErrParamInvalid(err.Error())
	}

	// Re-check the uniqueness triple when any of its parts changed
	_, nameSet := fields["swName"]
	_, versionSet := fields["version"]
	_, branchSet := fields["branch"]
	if nameSet || versionSet || branchSet {
		var count int64
		if err := s.db.Model(&model.Software{}).
			Where("name = ? AND version = ? AND branch = ? AND id <> ?", sw.Name, sw.Version, sw.Branch, sw.ID).
			Count(&count).Error; err != nil {
			return nil, httpx.ErrDatabaseError("failed to check software uniqueness", err)
		}
		if count > 0 {
			return nil, httpx.ErrAlreadyExists("software with this name, version and branch already exists")
		}
	}

	if err := s.db.Save(&sw).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, httpx.ErrAlreadyExists("software with this name, version and branch already exists")
		}
		return nil, httpx.ErrDatabaseError("failed to update software", err)
	}

	s.hist.Record(model.DocTypeSoftware, sw.ID, actor, history.Diff(before, Snapshot(&sw), Fields))
	return &sw, nil
}

// Snapshot flattens a record into the wire-level field map used for history
// diffs and responses. Dates are rendered as yyyy-mm-dd, JSON array columns
// as plain slices.
func Snapshot(sw *model.Software) map[string]interface{} {
	snap := map[string]interface{}{
		"swName":            sw.Name,
		"version":           sw.Version,
		"branch":            sw.Branch,
		"owner":             sw.Owner,
		"engineer":          sw.Engineer,
		"levelOfCare":       sw.LevelOfCare,
		"status":            sw.Status,
		"statusDate":        formatDate(sw.StatusDate),
		"desc":              sw.Desc,
		"platforms":         sw.Platforms,
		"designDescDocLoc":  sw.DesignDescDocLoc,
		"descDocLoc":        sw.DescDocLoc,
		"vvProcLoc":         decodeArray(sw.VVProcLoc),
		"vvResultsLoc":      decodeArray(sw.VVResultsLoc),
		"versionControl":    sw.VersionControl,
		"versionControlLoc": sw.VersionControlLoc,
		"recertFreq":        sw.RecertFreq,
		"recertStatus":      sw.RecertStatus,
		"recertDate":        formatDate(sw.RecertDate),
		"comment":           sw.Comment,
	}
	if sw.Previous.Valid {
		snap["previous"] = float64(sw.Previous.Int32)
	} else {
		snap["previous"] = nil
	}
	return snap
}

func apply(sw *model.Software, fields map[string]interface{}) error {
	for name, raw := range fields {
		// A null value means not submitted, same as the validator treats it
		if raw == nil {
			continue
		}
		switch name {
		case "swName":
			sw.Name = raw.(string)
		case "version":
			sw.Version = raw.(string)
		case "branch":
			sw.Branch = raw.(string)
		case "owner":
			sw.Owner = raw.(string)
		case "engineer":
			sw.Engineer = raw.(string)
		case "levelOfCare":
			sw.LevelOfCare = raw.(string)
		case "status":
			sw.Status = raw.(string)
		case "statusDate":
			t, err := utils.ParseDate(raw.(string))
			if err != nil {
				return err
			}
			sw.StatusDate = t
		case "desc":
			sw.Desc = raw.(string)
		case "platforms":
			sw.Platforms = raw.(string)
		case "designDescDocLoc":
			sw.DesignDescDocLoc = raw.(string)
		case "descDocLoc":
			sw.DescDocLoc = raw.(string)
		case "vvProcLoc":
			b, err := json.Marshal(raw)
			if err != nil {
				return err
			}
			sw.VVProcLoc = b
		case "vvResultsLoc":
			b, err := json.Marshal(raw)
			if err != nil {
				return err
			}
			sw.VVResultsLoc = b
		case "versionControl":
			sw.VersionControl = raw.(string)
		case "versionControlLoc":
			sw.VersionControlLoc = raw.(string)
		case "recertFreq":
			sw.RecertFreq = raw.(string)
		case "recertStatus":
			sw.RecertStatus = raw.(string)
		case "recertDate":
			t, err := utils.ParseDate(raw.(string))
			if err != nil {
				return err
			}
			sw.RecertDate = t
		case "previous":
			id, err := utils.ToID(raw)
			if err != nil {
				return err
			}
			sw.Previous = sql.NullInt32{Int32: int32(id), Valid: true}
		case "comment":
			sw.Comment = raw.(string)
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
