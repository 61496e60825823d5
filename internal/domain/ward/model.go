package ward

import (
	"time"

	"github.com/google/uuid"

	"github.com/wardwatch/wardwatch/internal/domain/scoring"
)

// Department types a ward can belong to. ER and LR wards record outpatient
// style shifts but are reported separately from regular OPD clinics.
const (
	DeptIPD = "IPD"
	DeptOPD = "OPD"
	DeptER  = "ER"
	DeptLR  = "LR"
)

// Ward maps to the nursing_wards table.
type Ward struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	Code         string        `db:"code" json:"code"`
	Name         string        `db:"name" json:"name"`
	DeptType     string        `db:"dept_type" json:"dept_type"`
	IsActive     bool          `db:"is_active" json:"is_active"`
	FieldsConfig *FieldsConfig `db:"fields_config" json:"fields_config,omitempty"`
	HISWardKeys  []int         `db:"his_ward_keys" json:"his_ward_keys,omitempty"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// FieldsConfig is the per-ward workload schema stored as JSONB. A nil config
// means the ward scores with the legacy triage schema.
type FieldsConfig struct {
	Groups []scoring.FieldGroup `json:"groups"`
	Shifts []string             `json:"shifts,omitempty"`
}

// SchemaGroups returns the field groups to score against, or nil when the
// ward has no configuration so callers fall through to the legacy schema.
func (w *Ward) SchemaGroups() []scoring.FieldGroup {
	if w == nil || w.FieldsConfig == nil {
		return nil
	}
	return w.FieldsConfig.Groups
}

// ValidDeptType reports whether t is one of the known department types.
func ValidDeptType(t string) bool {
	switch t {
	case DeptIPD, DeptOPD, DeptER, DeptLR:
		return true
	}
	return false
}
