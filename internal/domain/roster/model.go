package roster

import (
	"time"

	"github.com/google/uuid"
)

// Shift identifiers shared by IPD and OPD records.
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
	ShiftNight     = "night"
)

// ValidShift reports whether s is one of the known shift identifiers.
func ValidShift(s string) bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftNight:
		return true
	}
	return false
}

// IPDShift maps to the ipd_daily_shifts table. One row per ward, date and
// shift, keyed naturally so repeated saves overwrite in place.
type IPDShift struct {
	ID         int64     `db:"id" json:"id"`
	WardID     uuid.UUID `db:"ward_id" json:"ward_id"`
	RecordDate string    `db:"record_date" json:"record_date"`
	Shift      string    `db:"shift" json:"shift"`
	HNCount    int       `db:"hn_count" json:"hn_count"`
	RNCount    int       `db:"rn_count" json:"rn_count"`
	TNCount    int       `db:"tn_count" json:"tn_count"`
	NACount    int       `db:"na_count" json:"na_count"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// TotalStaff is the headcount across all skill levels for the shift.
func (s *IPDShift) TotalStaff() int {
	return s.HNCount + s.RNCount + s.TNCount + s.NACount
}

// OPDShift maps to the opd_daily_shifts table. CategoryData holds the raw
// per-field counters; WorkloadScore is recomputed from the ward's current
// schema on every save, never trusted from the payload.
type OPDShift struct {
	ID            int64          `db:"id" json:"id"`
	WardID        uuid.UUID      `db:"ward_id" json:"ward_id"`
	RecordDate    string         `db:"record_date" json:"record_date"`
	Shift         string         `db:"shift" json:"shift"`
	RNCount       int            `db:"rn_count" json:"rn_count"`
	NonRNCount    int            `db:"non_rn_count" json:"non_rn_count"`
	PatientTotal  int            `db:"patient_total" json:"patient_total"`
	CategoryData  map[string]int `db:"category_data" json:"category_data,omitempty"`
	WorkloadScore float64        `db:"workload_score" json:"workload_score"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// TotalStaff is the combined RN and non-RN headcount for the shift.
func (s *OPDShift) TotalStaff() int {
	return s.RNCount + s.NonRNCount
}

// DailySummary maps to the ipd_daily_summary table. One row per ward and
// date. HPPD and Productivity are derived from the day's shifts and patient
// day at save time.
type DailySummary struct {
	ID             int64     `db:"id" json:"id"`
	WardID         uuid.UUID `db:"ward_id" json:"ward_id"`
	RecordDate     string    `db:"record_date" json:"record_date"`
	TotalStaffDay  int       `db:"total_staff_day" json:"total_staff_day"`
	PatientDay     int       `db:"patient_day" json:"patient_day"`
	HPPD           float64   `db:"hppd" json:"hppd"`
	DischargeCount int       `db:"discharge_count" json:"discharge_count"`
	NewAdmission   int       `db:"new_admission" json:"new_admission"`
	Productivity   float64   `db:"productivity" json:"productivity"`
	CMI            *float64  `db:"cmi" json:"cmi,omitempty"`
	CAPStatus      *string   `db:"cap_status" json:"cap_status,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
