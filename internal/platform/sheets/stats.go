package sheets

import (
	"strconv"

	"github.com/wardwatch/wardwatch/internal/domain/scoring"
)

// Stats summarizes one ingested sheet the way the legacy dashboard did.
// Productivity is the ratio of summed actual to summed target scores, not
// an average of per-row percentages.
type Stats struct {
	Records        int     `json:"records"`
	TotalWorkforce int     `json:"total_workforce"`
	RNCount        int     `json:"rn_count"`
	PNCount        int     `json:"pn_count"`
	PatientVisits  int     `json:"patient_visits"`
	TargetScore    float64 `json:"target_score"`
	ActualScore    float64 `json:"actual_score"`
	Productivity   float64 `json:"productivity"`
	CAPSuitable    int     `json:"cap_suitable"`
	CAPImprove     int     `json:"cap_improve"`
	CAPShortage    int     `json:"cap_shortage"`
}

// CalculateStats aggregates the normalized rows of a legacy sheet.
// Unparseable cells count as zero so a single bad row never sinks the batch.
func CalculateStats(rows []map[string]string) *Stats {
	stats := &Stats{Records: len(rows)}

	for _, row := range rows {
		stats.TotalWorkforce += cellInt(row, "total_workforce")
		stats.RNCount += cellInt(row, "rn_count")
		stats.PNCount += cellInt(row, "pn_count")
		stats.PatientVisits += cellInt(row, "patient_visit")
		stats.TargetScore += cellFloat(row, "target_score")
		stats.ActualScore += cellFloat(row, "actual_score")
		stats.CAPSuitable += cellInt(row, "cap_suitable")
		stats.CAPImprove += cellInt(row, "cap_improve")
		stats.CAPShortage += cellInt(row, "cap_shortage")
	}

	if stats.TargetScore > 0 {
		stats.Productivity = scoring.Round2(stats.ActualScore / stats.TargetScore * 100)
	}
	return stats
}

func cellInt(row map[string]string, key string) int {
	v, err := strconv.Atoi(row[key])
	if err != nil {
		return 0
	}
	return v
}

func cellFloat(row map[string]string, key string) float64 {
	v, err := strconv.ParseFloat(row[key], 64)
	if err != nil {
		return 0
	}
	return v
}
