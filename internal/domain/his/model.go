package his

import "github.com/google/uuid"

// CensusResult is the outcome of a hospital-information-system lookup for
// one ward and date. Mapped is false when the ward has no HIS ward keys
// configured; the counts are then zero by construction, not by measurement.
type CensusResult struct {
	WardID     uuid.UUID `json:"ward_id"`
	Date       string    `json:"date"`
	Mapped     bool      `json:"mapped"`
	PatientDay int       `json:"patient_day"`
	Admissions int       `json:"admissions"`
	Discharges int       `json:"discharges"`
	BedCount   int       `json:"bed_count"`
}

// Ward is a row from the HIS ward dimension, used to map dashboard wards to
// their upstream keys.
type Ward struct {
	WardKey  int    `db:"ward_key" json:"ward_key"`
	SourceID string `db:"ward_id" json:"source_id"`
	Name     string `db:"ward_name" json:"name"`
	BedCount int    `db:"bed_count" json:"bed_count"`
}
