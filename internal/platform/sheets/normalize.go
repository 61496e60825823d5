// Package sheets ingests legacy staffing data published as Google Sheets.
// Sheets are fetched as CSV, headers are mapped onto canonical column keys
// and dates are normalized to ISO form before anything downstream sees them.
package sheets

import (
	"fmt"
	"strconv"
	"strings"
)

// headerSynonyms maps the column names seen across years of hand-maintained
// sheets, English and Thai, onto one canonical key per concept.
var headerSynonyms = map[string]string{
	"date":    "date",
	"วันที่":  "date",
	"วัน":     "date",
	"dept_type":  "dept_type",
	"department": "dept_type",
	"dept":       "dept_type",
	"type":       "dept_type",
	"ประเภท":     "dept_type",
	"แผนก":       "dept_type",
	"productivity": "productivity",
	"prod":         "productivity",
	"ผลิตภาพ":      "productivity",
	"ward_name": "ward_name",
	"ward":      "ward_name",
	"unit":      "ward_name",
	"หอผู้ป่วย": "ward_name",
	"หน่วยงาน":  "ward_name",
	"total_nurses":    "total_workforce",
	"total_workforce": "total_workforce",
	"total":           "total_workforce",
	"จำนวนพยาบาล":     "total_workforce",
	"กำลังคน":         "total_workforce",
	"rn_count":       "rn_count",
	"rn":             "rn_count",
	"พยาบาลวิชาชีพ":  "rn_count",
	"pn_count":       "pn_count",
	"pn":             "pn_count",
	"na":             "pn_count",
	"pn_na":          "pn_count",
	"ผู้ช่วย":        "pn_count",
	"ผู้ช่วยพยาบาล":  "pn_count",
	"night":   "night_shift_nurses",
	"เวรดึก":  "night_shift_nurses",
	"morning": "morning_shift_nurses",
	"เวรเช้า": "morning_shift_nurses",
	"afternoon": "afternoon_shift_nurses",
	"เวรบ่าย":   "afternoon_shift_nurses",
	"target":    "target_score",
	"เป้าหมาย":  "target_score",
	"actual":    "actual_score",
	"คะแนนจริง": "actual_score",
	"cmi":       "cmi",
	"patient_visit": "patient_visit",
	"visit":         "patient_visit",
	"ผู้ป่วย":       "patient_visit",
	"จำนวนผู้ป่วย":  "patient_visit",
	"cap_suitable": "cap_suitable",
	"suitable":     "cap_suitable",
	"เหมาะสม":      "cap_suitable",
	"cap_improve":  "cap_improve",
	"improve":      "cap_improve",
	"ปรับปรุง":     "cap_improve",
	"cap_shortage": "cap_shortage",
	"shortage":     "cap_shortage",
	"ขาดแคลน":      "cap_shortage",
}

// NormalizeHeader maps a raw column header onto its canonical key. Headers
// with no known synonym keep their cleaned form so no column is dropped.
func NormalizeHeader(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.Trim(cleaned, ".:")
	cleaned = strings.ReplaceAll(cleaned, " ", "_")
	if canonical, ok := headerSynonyms[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// NormalizeDate converts the date formats found in the sheets to YYYY-MM-DD.
// Slash dates are ambiguous between day-first and month-first entry. A first
// component above 12 forces day-first, a second component above 12 forces
// month-first, and when neither disambiguates, month-first wins because that
// is how the historical sheets were entered.
func NormalizeDate(raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", fmt.Errorf("empty date")
	}

	sep := ""
	switch {
	case strings.Contains(v, "/"):
		sep = "/"
	case strings.Contains(v, "-"):
		sep = "-"
	default:
		return "", fmt.Errorf("unrecognized date %q", raw)
	}

	parts := strings.Split(v, sep)
	if len(parts) != 3 {
		return "", fmt.Errorf("unrecognized date %q", raw)
	}

	if len(parts[0]) == 4 {
		y, errY := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		d, errD := strconv.Atoi(parts[2])
		if errY != nil || errM != nil || errD != nil {
			return "", fmt.Errorf("unrecognized date %q", raw)
		}
		return formatDate(y, m, d)
	}

	v1, err1 := strconv.Atoi(parts[0])
	v2, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return "", fmt.Errorf("unrecognized date %q", raw)
	}
	if y < 100 {
		y += 2000
	}

	var month, day int
	switch {
	case v1 > 12:
		day, month = v1, v2
	default:
		month, day = v1, v2
	}
	return formatDate(y, month, day)
}

func formatDate(y, m, d int) (string, error) {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return "", fmt.Errorf("date out of range %04d-%02d-%02d", y, m, d)
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), nil
}
