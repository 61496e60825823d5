package dashboard

import "github.com/google/uuid"

// IPDShiftTotals aggregates headcounts for one shift across the selected
// wards. RN includes head nurses; the raw skill breakdown is kept alongside.
type IPDShiftTotals struct {
	RN     int `json:"rn"`
	NonRN  int `json:"non_rn"`
	HN     int `json:"hn"`
	RNOnly int `json:"rn_only"`
	TN     int `json:"tn"`
	NA     int `json:"na"`
	Total  int `json:"total"`
}

// CAPTally counts wards per capacity-status bucket.
type CAPTally struct {
	Suitable int `json:"suitable"`
	Improve  int `json:"improve"`
	Shortage int `json:"shortage"`
	None     int `json:"none"`
}

// IPDWardRank is one row of the inpatient productivity ranking.
type IPDWardRank struct {
	WardID       uuid.UUID `json:"ward_id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	TotalStaff   int       `json:"total_staff"`
	PatientDay   int       `json:"patient_day"`
	HPPD         float64   `json:"hppd"`
	Productivity float64   `json:"productivity"`
	CMI          *float64  `json:"cmi,omitempty"`
	CAPStatus    string    `json:"cap_status"`
}

// IPDSnapshot is the inpatient dashboard read model for one date.
type IPDSnapshot struct {
	Date            string                     `json:"date"`
	Shifts          map[string]*IPDShiftTotals `json:"shifts"`
	TotalRN         int                        `json:"total_rn"`
	TotalNonRN      int                        `json:"total_non_rn"`
	TotalWorkforce  int                        `json:"total_workforce"`
	SkillMix        string                     `json:"skill_mix"`
	PatientDays     int                        `json:"patient_days"`
	Admissions      int                        `json:"admissions"`
	Discharges      int                        `json:"discharges"`
	AvgProductivity float64                    `json:"avg_productivity"`
	AvgCMI          float64                    `json:"avg_cmi"`
	CAP             CAPTally                   `json:"cap"`
	Wards           []IPDWardRank              `json:"wards"`
}

// OPDShiftAgg aggregates one shift across the selected outpatient wards.
type OPDShiftAgg struct {
	Staff        int     `json:"staff"`
	Patients     int     `json:"patients"`
	Workload     float64 `json:"workload"`
	Expected     float64 `json:"expected"`
	Productivity float64 `json:"productivity"`
}

// OPDWardRank is one row of the outpatient productivity ranking.
type OPDWardRank struct {
	WardID       uuid.UUID `json:"ward_id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Staff        int       `json:"staff"`
	Patients     int       `json:"patients"`
	Workload     float64   `json:"workload"`
	Expected     float64   `json:"expected"`
	Productivity float64   `json:"productivity"`
}

// OPDSnapshot is the outpatient dashboard read model for one date and
// department subtype.
type OPDSnapshot struct {
	Date          string                  `json:"date"`
	DeptType      string                  `json:"dept_type"`
	TotalStaff    int                     `json:"total_staff"`
	TotalPatients int                     `json:"total_patients"`
	TotalWorkload float64                 `json:"total_workload"`
	ExpectedStaff float64                 `json:"expected_staff"`
	Productivity  float64                 `json:"productivity"`
	Shifts        map[string]*OPDShiftAgg `json:"shifts"`
	Wards         []OPDWardRank           `json:"wards"`
}
