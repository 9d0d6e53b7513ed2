package inst

import (
	"swdb/internal/installation"
	"swdb/internal/model"
)

// RecordDTO renders an installation record as its wire-level field map plus
// identity and bookkeeping timestamps
func RecordDTO(in *model.Installation) map[string]interface{} {
	dto := installation.Snapshot(in)
	dto["id"] = in.ID
	dto["createdAt"] = in.CreatedAt
	dto["updatedAt"] = in.UpdatedAt
	return dto
}
