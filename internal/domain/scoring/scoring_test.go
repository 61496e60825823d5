package scoring

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWorkloadScore_WeightedSum(t *testing.T) {
	groups := []FieldGroup{
		{
			Name: "Acuity",
			Fields: []Field{
				{Key: "level1", Multiplier: 3.0},
				{Key: "level2", Multiplier: 1.5},
			},
		},
		{
			Name: "Procedures",
			Fields: []Field{
				{Key: "iv_push", Multiplier: 2.0},
			},
		},
	}
	data := map[string]int{"level1": 2, "level2": 4, "iv_push": 1}

	got := WorkloadScore(data, groups)
	want := 2*3.0 + 4*1.5 + 1*2.0
	if !almostEqual(got, want) {
		t.Errorf("WorkloadScore() = %v, want %v", got, want)
	}
}

func TestWorkloadScore_UnknownKeysIgnored(t *testing.T) {
	groups := []FieldGroup{
		{Fields: []Field{{Key: "known", Multiplier: 2.0}}},
	}
	data := map[string]int{"known": 3, "mystery": 100}

	if got := WorkloadScore(data, groups); !almostEqual(got, 6.0) {
		t.Errorf("WorkloadScore() = %v, want 6.0", got)
	}
}

func TestWorkloadScore_MissingCountsContributeNothing(t *testing.T) {
	groups := []FieldGroup{
		{Fields: []Field{
			{Key: "a", Multiplier: 5.0},
			{Key: "b", Multiplier: 7.0},
		}},
	}
	data := map[string]int{"a": 1}

	if got := WorkloadScore(data, groups); !almostEqual(got, 5.0) {
		t.Errorf("WorkloadScore() = %v, want 5.0", got)
	}
}

func TestWorkloadScore_EmptyData(t *testing.T) {
	groups := []FieldGroup{
		{Fields: []Field{{Key: "a", Multiplier: 5.0}}},
	}
	if got := WorkloadScore(nil, groups); got != 0 {
		t.Errorf("WorkloadScore(nil) = %v, want 0", got)
	}
}

func TestWorkloadScore_Linearity(t *testing.T) {
	// Doubling every count doubles the score.
	groups := []FieldGroup{
		{Fields: []Field{
			{Key: "x", Multiplier: 1.3},
			{Key: "y", Multiplier: 0.7},
		}},
	}
	single := map[string]int{"x": 3, "y": 5}
	double := map[string]int{"x": 6, "y": 10}

	if got, want := WorkloadScore(double, groups), 2*WorkloadScore(single, groups); !almostEqual(got, want) {
		t.Errorf("doubled counts: got %v, want %v", got, want)
	}
}

func TestWorkloadScore_LegacyFallback(t *testing.T) {
	data := map[string]int{
		"triage1": 1, "triage2": 2, "triage3": 3,
		"triage4": 4, "triage5": 5, "ivp": 6, "ems": 7, "lr": 8,
	}
	want := 1*3.2 + 2*2.5 + 3*1.0 + 4*0.5 + 5*0.25 + 6*2.0 + 7*1.5 + 8*3.5

	if got := WorkloadScore(data, nil); !almostEqual(got, want) {
		t.Errorf("legacy fallback (nil) = %v, want %v", got, want)
	}
	if got := WorkloadScore(data, []FieldGroup{}); !almostEqual(got, want) {
		t.Errorf("legacy fallback (empty) = %v, want %v", got, want)
	}
	if got := WorkloadScore(data, LegacySchema()); !almostEqual(got, want) {
		t.Errorf("explicit legacy schema = %v, want %v", got, want)
	}
}

func TestExpectedStaff(t *testing.T) {
	if got := ExpectedStaff(14.0); !almostEqual(got, 2.0) {
		t.Errorf("ExpectedStaff(14) = %v, want 2", got)
	}
	if got := ExpectedStaff(0); got != 0 {
		t.Errorf("ExpectedStaff(0) = %v, want 0", got)
	}
}

func TestShiftProductivity(t *testing.T) {
	tests := []struct {
		name     string
		workload float64
		actual   int
		want     float64
	}{
		{"exact match", 35.0, 5, 100.0},
		{"understaffed", 70.0, 5, 200.0},
		{"overstaffed", 35.0, 10, 50.0},
		{"zero staff", 35.0, 0, 0},
		{"negative staff", 35.0, -1, 0},
		{"zero workload", 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShiftProductivity(tt.workload, tt.actual); !almostEqual(got, tt.want) {
				t.Errorf("ShiftProductivity(%v, %d) = %v, want %v", tt.workload, tt.actual, got, tt.want)
			}
		})
	}
}

func TestNHPPD(t *testing.T) {
	if got := NHPPD(3, 7); !almostEqual(got, 3.0) {
		t.Errorf("NHPPD(3, 7) = %v, want 3", got)
	}
	if got := NHPPD(3, 0); got != 0 {
		t.Errorf("NHPPD with zero patients = %v, want 0", got)
	}
}

func TestIPDHPPD(t *testing.T) {
	// 21 nurses across three shifts, 49 patient days -> exactly 3 hours per
	// patient day.
	if got := IPDHPPD(21, 49); !almostEqual(got, 3.0) {
		t.Errorf("IPDHPPD(21, 49) = %v, want 3", got)
	}
	if got := IPDHPPD(21, 0); got != 0 {
		t.Errorf("IPDHPPD with zero patient day = %v, want 0", got)
	}
}

func TestIPDProductivity(t *testing.T) {
	// 50 patient days against 20 nurses: 50*6 / (20*7) * 100.
	if got := Round2(IPDProductivity(20, 50)); !almostEqual(got, 214.29) {
		t.Errorf("IPDProductivity(20, 50) = %v, want 214.29", got)
	}
	if got := IPDProductivity(0, 50); got != 0 {
		t.Errorf("IPDProductivity with zero staff = %v, want 0", got)
	}
	if got := IPDProductivity(20, 0); got != 0 {
		t.Errorf("IPDProductivity with zero patient day = %v, want 0", got)
	}
}

func TestIPDProductivity_BenchmarkDay(t *testing.T) {
	// When HPPD equals the benchmark exactly, productivity is 100%.
	// 42 staff hours over 49 patient days would be 6 HPPD with 42 staff*7/49.
	staff := 42
	patientDay := 49
	if got := IPDHPPD(staff, patientDay); !almostEqual(got, StandardHPPD) {
		t.Fatalf("setup: IPDHPPD = %v, want %v", got, StandardHPPD)
	}
	if got := IPDProductivity(staff, patientDay); !almostEqual(got, 100.0) {
		t.Errorf("IPDProductivity at benchmark = %v, want 100", got)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{214.2857142857, 214.29},
		{0.125, 0.13},
		{2.004, 2.0},
		{0, 0},
		{99.999, 100.0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
