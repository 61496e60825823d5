package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/wardwatch/wardwatch/internal/domain/roster"
	"github.com/wardwatch/wardwatch/internal/domain/ward"
)

// -- Mock Repositories --

type mockWardRepo struct {
	wards []*ward.Ward
}

func (m *mockWardRepo) List(_ context.Context, deptType string, includeInactive bool) ([]*ward.Ward, error) {
	var result []*ward.Ward
	for _, w := range m.wards {
		if deptType != "" && w.DeptType != deptType {
			continue
		}
		if !includeInactive && !w.IsActive {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

func (m *mockWardRepo) GetByID(_ context.Context, id uuid.UUID) (*ward.Ward, error) {
	for _, w := range m.wards {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockWardRepo) GetByCode(_ context.Context, code string) (*ward.Ward, error) {
	for _, w := range m.wards {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockWardRepo) Create(_ context.Context, w *ward.Ward) error { return nil }
func (m *mockWardRepo) Update(_ context.Context, w *ward.Ward) error { return nil }
func (m *mockWardRepo) Delete(_ context.Context, id uuid.UUID) error { return nil }

type mockIPDRepo struct {
	shifts []*roster.IPDShift
}

func (m *mockIPDRepo) Upsert(_ context.Context, s *roster.IPDShift) error { return nil }

func (m *mockIPDRepo) ListByDate(_ context.Context, date string, wardID uuid.UUID) ([]*roster.IPDShift, error) {
	var result []*roster.IPDShift
	for _, s := range m.shifts {
		if s.RecordDate != date {
			continue
		}
		if wardID != uuid.Nil && s.WardID != wardID {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockIPDRepo) ListByWardDate(_ context.Context, wardID uuid.UUID, date string) ([]*roster.IPDShift, error) {
	return nil, nil
}

func (m *mockIPDRepo) ListRange(_ context.Context, wardIDs []uuid.UUID, dateFrom, dateTo string) ([]*roster.IPDShift, error) {
	return nil, nil
}

func (m *mockIPDRepo) LatestDate(_ context.Context) (string, error) {
	latest := ""
	for _, s := range m.shifts {
		if s.RecordDate > latest {
			latest = s.RecordDate
		}
	}
	return latest, nil
}

type mockOPDRepo struct {
	shifts []*roster.OPDShift
}

func (m *mockOPDRepo) Upsert(_ context.Context, s *roster.OPDShift) error { return nil }

func (m *mockOPDRepo) ListByDate(_ context.Context, date string, wardID uuid.UUID) ([]*roster.OPDShift, error) {
	var result []*roster.OPDShift
	for _, s := range m.shifts {
		if s.RecordDate != date {
			continue
		}
		if wardID != uuid.Nil && s.WardID != wardID {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockOPDRepo) ListRange(_ context.Context, wardIDs []uuid.UUID, dateFrom, dateTo string) ([]*roster.OPDShift, error) {
	return nil, nil
}

func (m *mockOPDRepo) LatestDate(_ context.Context) (string, error) {
	latest := ""
	for _, s := range m.shifts {
		if s.RecordDate > latest {
			latest = s.RecordDate
		}
	}
	return latest, nil
}

type mockSummaryRepo struct {
	summaries []*roster.DailySummary
}

func (m *mockSummaryRepo) Upsert(_ context.Context, s *roster.DailySummary) error { return nil }

func (m *mockSummaryRepo) ListByDate(_ context.Context, date string, wardID uuid.UUID) ([]*roster.DailySummary, error) {
	var result []*roster.DailySummary
	for _, s := range m.summaries {
		if s.RecordDate != date {
			continue
		}
		if wardID != uuid.Nil && s.WardID != wardID {
			continue
		}
		result = append(result, s)
	}
	return result, nil
}

func (m *mockSummaryRepo) ListRange(_ context.Context, wardIDs []uuid.UUID, dateFrom, dateTo string) ([]*roster.DailySummary, error) {
	return nil, nil
}

func (m *mockSummaryRepo) LatestDate(_ context.Context) (string, error) {
	latest := ""
	for _, s := range m.summaries {
		if s.RecordDate > latest {
			latest = s.RecordDate
		}
	}
	return latest, nil
}

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }

// -- Tests --

func TestIPDSnapshot_ShiftTotalsAndSkillMix(t *testing.T) {
	w := &ward.Ward{ID: uuid.New(), Code: "MED1", Name: "Medicine", DeptType: ward.DeptIPD, IsActive: true}
	date := "2024-03-01"

	ipd := &mockIPDRepo{shifts: []*roster.IPDShift{
		{WardID: w.ID, RecordDate: date, Shift: roster.ShiftMorning, HNCount: 1, RNCount: 4, TNCount: 2, NACount: 1},
		{WardID: w.ID, RecordDate: date, Shift: roster.ShiftNight, RNCount: 2, TNCount: 1, NACount: 1},
	}}
	svc := NewService(&mockWardRepo{wards: []*ward.Ward{w}}, ipd, &mockOPDRepo{}, &mockSummaryRepo{})

	snap, err := svc.IPD(context.Background(), date, uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	morning := snap.Shifts[roster.ShiftMorning]
	if morning.RN != 5 {
		t.Errorf("morning rn (hn+rn) = %d, want 5", morning.RN)
	}
	if morning.NonRN != 3 {
		t.Errorf("morning non_rn (tn+na) = %d, want 3", morning.NonRN)
	}
	if morning.HN != 1 || morning.RNOnly != 4 {
		t.Errorf("breakdown hn=%d rn_only=%d, want 1 and 4", morning.HN, morning.RNOnly)
	}

	// Night shift is reported under the midnight key.
	if _, exists := snap.Shifts[roster.ShiftNight]; exists {
		t.Error("night key should not appear in the response")
	}
	mid := snap.Shifts[midnightKey]
	if mid.RN != 2 || mid.NonRN != 2 {
		t.Errorf("midnight rn=%d non_rn=%d, want 2 and 2", mid.RN, mid.NonRN)
	}

	if snap.TotalWorkforce != 12 {
		t.Errorf("total workforce = %d, want 12", snap.TotalWorkforce)
	}
	// 7 RN vs 5 non-RN.
	if snap.SkillMix != "1:0.7" {
		t.Errorf("skill mix = %q, want 1:0.7", snap.SkillMix)
	}
}

func TestIPDSnapshot_AveragesExcludeZeroProductivity(t *testing.T) {
	wardA := &ward.Ward{ID: uuid.New(), Code: "A", Name: "A", DeptType: ward.DeptIPD, IsActive: true}
	wardB := &ward.Ward{ID: uuid.New(), Code: "B", Name: "B", DeptType: ward.DeptIPD, IsActive: true}
	wardC := &ward.Ward{ID: uuid.New(), Code: "C", Name: "C", DeptType: ward.DeptIPD, IsActive: true}
	date := "2024-03-01"

	sums := &mockSummaryRepo{summaries: []*roster.DailySummary{
		{WardID: wardA.ID, RecordDate: date, Productivity: 120, CMI: floatPtr(1.2), PatientDay: 30, CAPStatus: strPtr("suitable")},
		{WardID: wardB.ID, RecordDate: date, Productivity: 80, CMI: floatPtr(0.8), PatientDay: 20, CAPStatus: strPtr("ขาดแคลน")},
		{WardID: wardC.ID, RecordDate: date, Productivity: 0, CMI: floatPtr(9.9), PatientDay: 0},
	}}
	svc := NewService(&mockWardRepo{wards: []*ward.Ward{wardA, wardB, wardC}}, &mockIPDRepo{}, &mockOPDRepo{}, sums)

	snap, err := svc.IPD(context.Background(), date, uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.AvgProductivity != 100.0 {
		t.Errorf("avg productivity = %v, want 100 (zero-productivity ward excluded)", snap.AvgProductivity)
	}
	if snap.AvgCMI != 1.0 {
		t.Errorf("avg cmi = %v, want 1.0", snap.AvgCMI)
	}

	if snap.CAP.Suitable != 1 || snap.CAP.Shortage != 1 || snap.CAP.None != 1 {
		t.Errorf("cap tally = %+v, want suitable=1 shortage=1 none=1", snap.CAP)
	}

	// Ranking is by productivity descending.
	if snap.Wards[0].Code != "A" || snap.Wards[1].Code != "B" || snap.Wards[2].Code != "C" {
		t.Errorf("ranking order = %s %s %s, want A B C",
			snap.Wards[0].Code, snap.Wards[1].Code, snap.Wards[2].Code)
	}

	if snap.PatientDays != 50 {
		t.Errorf("patient days = %d, want 50", snap.PatientDays)
	}
}

func TestIPDSnapshot_LatestDateFallback(t *testing.T) {
	w := &ward.Ward{ID: uuid.New(), Code: "A", Name: "A", DeptType: ward.DeptIPD, IsActive: true}
	sums := &mockSummaryRepo{summaries: []*roster.DailySummary{
		{WardID: w.ID, RecordDate: "2024-02-28", Productivity: 90},
		{WardID: w.ID, RecordDate: "2024-03-02", Productivity: 110},
	}}
	svc := NewService(&mockWardRepo{wards: []*ward.Ward{w}}, &mockIPDRepo{}, &mockOPDRepo{}, sums)

	snap, err := svc.IPD(context.Background(), "", uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Date != "2024-03-02" {
		t.Errorf("fallback date = %q, want 2024-03-02", snap.Date)
	}
	if len(snap.Wards) != 1 || snap.Wards[0].Productivity != 110 {
		t.Errorf("expected only the latest day's summary in the snapshot")
	}
}

func TestIPDSnapshot_NoData(t *testing.T) {
	svc := NewService(&mockWardRepo{}, &mockIPDRepo{}, &mockOPDRepo{}, &mockSummaryRepo{})
	snap, err := svc.IPD(context.Background(), "", uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Date != "" || len(snap.Wards) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestOPDSnapshot_RatioOfSums(t *testing.T) {
	wardA := &ward.Ward{ID: uuid.New(), Code: "A", Name: "A", DeptType: ward.DeptOPD, IsActive: true}
	wardB := &ward.Ward{ID: uuid.New(), Code: "B", Name: "B", DeptType: ward.DeptOPD, IsActive: true}
	date := "2024-03-01"

	// Ward A: workload 70, staff 5 -> 200%. Ward B: workload 7, staff 15 ->
	// 6.67%. The mean of those is ~103%, but pooling gives
	// (77/7) / 20 = 55%: the correct fleet-wide number.
	opd := &mockOPDRepo{shifts: []*roster.OPDShift{
		{WardID: wardA.ID, RecordDate: date, Shift: roster.ShiftMorning, RNCount: 5, PatientTotal: 50, WorkloadScore: 70},
		{WardID: wardB.ID, RecordDate: date, Shift: roster.ShiftMorning, RNCount: 10, NonRNCount: 5, PatientTotal: 10, WorkloadScore: 7},
	}}
	svc := NewService(&mockWardRepo{wards: []*ward.Ward{wardA, wardB}}, &mockIPDRepo{}, opd, &mockSummaryRepo{})

	snap, err := svc.OPD(context.Background(), date, ward.DeptOPD, uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Productivity != 55.0 {
		t.Errorf("overall productivity = %v, want 55 (ratio of sums)", snap.Productivity)
	}
	if snap.TotalStaff != 20 {
		t.Errorf("total staff = %d, want 20", snap.TotalStaff)
	}
	if snap.ExpectedStaff != 11.0 {
		t.Errorf("expected staff = %v, want 11", snap.ExpectedStaff)
	}

	// Per-ward ranking still uses each ward's own ratio.
	if snap.Wards[0].Code != "A" || snap.Wards[0].Productivity != 200.0 {
		t.Errorf("top ward = %s at %v, want A at 200", snap.Wards[0].Code, snap.Wards[0].Productivity)
	}
	if snap.Wards[1].Productivity != 6.67 {
		t.Errorf("ward B productivity = %v, want 6.67", snap.Wards[1].Productivity)
	}
}

func TestOPDSnapshot_DeptTypeFilter(t *testing.T) {
	opdWard := &ward.Ward{ID: uuid.New(), Code: "OPD1", Name: "Clinic", DeptType: ward.DeptOPD, IsActive: true}
	erWard := &ward.Ward{ID: uuid.New(), Code: "ER1", Name: "Emergency", DeptType: ward.DeptER, IsActive: true}
	date := "2024-03-01"

	opd := &mockOPDRepo{shifts: []*roster.OPDShift{
		{WardID: opdWard.ID, RecordDate: date, Shift: roster.ShiftMorning, RNCount: 3, WorkloadScore: 10},
		{WardID: erWard.ID, RecordDate: date, Shift: roster.ShiftMorning, RNCount: 4, WorkloadScore: 20},
	}}
	svc := NewService(&mockWardRepo{wards: []*ward.Ward{opdWard, erWard}}, &mockIPDRepo{}, opd, &mockSummaryRepo{})

	erSnap, err := svc.OPD(context.Background(), date, ward.DeptER, uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if erSnap.TotalStaff != 4 {
		t.Errorf("ER staff = %d, want 4 (OPD ward excluded)", erSnap.TotalStaff)
	}
	if len(erSnap.Wards) != 1 || erSnap.Wards[0].Code != "ER1" {
		t.Errorf("expected only ER1 in ranking, got %+v", erSnap.Wards)
	}

	if _, err := svc.OPD(context.Background(), date, "IPD", uuid.Nil); err == nil {
		t.Error("expected error for IPD dept type on the outpatient view")
	}
}

func TestOPDSnapshot_ZeroStaffShift(t *testing.T) {
	w := &ward.Ward{ID: uuid.New(), Code: "OPD1", Name: "Clinic", DeptType: ward.DeptOPD, IsActive: true}
	date := "2024-03-01"

	opd := &mockOPDRepo{shifts: []*roster.OPDShift{
		{WardID: w.ID, RecordDate: date, Shift: roster.ShiftNight, PatientTotal: 5, WorkloadScore: 8},
	}}
	svc := NewService(&mockWardRepo{wards: []*ward.Ward{w}}, &mockIPDRepo{}, opd, &mockSummaryRepo{})

	snap, err := svc.OPD(context.Background(), date, ward.DeptOPD, uuid.Nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Productivity != 0 {
		t.Errorf("zero-staff productivity = %v, want 0", snap.Productivity)
	}
	if snap.Shifts[midnightKey].Patients != 5 {
		t.Errorf("expected night data under midnight key")
	}
}
