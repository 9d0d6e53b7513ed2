package swdb

import (
	"swdb/internal/model"
	"swdb/internal/software"
)

// RecordDTO renders a record as its wire-level field map plus identity and
// bookkeeping timestamps. Field names match the request-body names so a
// create/read round trip returns exactly what was submitted.
func RecordDTO(sw *model.Software) map[string]interface{} {
	dto := software.Snapshot(sw)
	dto["id"] = sw.ID
	dto["createdAt"] = sw.CreatedAt
	dto["updatedAt"] = sw.UpdatedAt
	return dto
}
