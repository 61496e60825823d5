// Package scoring computes nursing workload and staffing metrics. All
// functions are pure so both the persistence layer and the read models can
// share them.
package scoring

import "math"

const (
	// HoursPerShift is the productive hours one nurse contributes per shift.
	HoursPerShift = 7.0

	// StandardHPPD is the benchmark of nursing hours per patient day used to
	// grade inpatient productivity.
	StandardHPPD = 6.0
)

// Field is a single weighted counter in a workload schema.
type Field struct {
	Key        string  `json:"key"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// FieldGroup is a named block of fields, mirroring how the input form
// organizes its counters.
type FieldGroup struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// LegacySchema returns the fixed triage-based schema used when a ward has no
// configured field groups. The multipliers are the historical acuity weights.
func LegacySchema() []FieldGroup {
	return []FieldGroup{
		{
			Name: "Patient Acuity",
			Fields: []Field{
				{Key: "triage1", Label: "Triage 1", Multiplier: 3.2},
				{Key: "triage2", Label: "Triage 2", Multiplier: 2.5},
				{Key: "triage3", Label: "Triage 3", Multiplier: 1.0},
				{Key: "triage4", Label: "Triage 4", Multiplier: 0.5},
				{Key: "triage5", Label: "Triage 5", Multiplier: 0.25},
				{Key: "ivp", Label: "IVP", Multiplier: 2.0},
				{Key: "ems", Label: "EMS", Multiplier: 1.5},
				{Key: "lr", Label: "LR", Multiplier: 3.5},
			},
		},
	}
}

// WorkloadScore sums count x multiplier over every field in the schema.
// Counters in categoryData that no field claims contribute nothing. An empty
// schema falls back to LegacySchema.
func WorkloadScore(categoryData map[string]int, groups []FieldGroup) float64 {
	if len(groups) == 0 {
		groups = LegacySchema()
	}
	var total float64
	for _, g := range groups {
		for _, f := range g.Fields {
			if count, ok := categoryData[f.Key]; ok {
				total += float64(count) * f.Multiplier
			}
		}
	}
	return total
}

// ExpectedStaff converts a workload score into the number of nurses the
// shift needs.
func ExpectedStaff(workload float64) float64 {
	return workload / HoursPerShift
}

// ShiftProductivity compares required staff against actual staff as a
// percentage. Zero actual staff yields zero rather than a division error.
func ShiftProductivity(workload float64, actualStaff int) float64 {
	if actualStaff <= 0 {
		return 0
	}
	return ExpectedStaff(workload) / float64(actualStaff) * 100
}

// NHPPD is nursing hours per patient for a single shift.
func NHPPD(staff int, patientTotal int) float64 {
	if patientTotal <= 0 {
		return 0
	}
	return float64(staff) * HoursPerShift / float64(patientTotal)
}

// IPDHPPD is nursing hours per patient day across all shifts of an
// inpatient ward day.
func IPDHPPD(totalStaffAllShifts int, patientDay int) float64 {
	if patientDay <= 0 {
		return 0
	}
	return float64(totalStaffAllShifts) * HoursPerShift / float64(patientDay)
}

// IPDProductivity grades delivered inpatient hours against the StandardHPPD
// benchmark as a percentage.
func IPDProductivity(totalStaffAllShifts int, patientDay int) float64 {
	if totalStaffAllShifts <= 0 {
		return 0
	}
	return float64(patientDay) * StandardHPPD / (float64(totalStaffAllShifts) * HoursPerShift) * 100
}

// Round2 rounds half-up to two decimal places. Applied only when a value is
// about to leave the service, never on intermediate results.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
