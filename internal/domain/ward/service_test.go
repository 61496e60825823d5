package ward

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wardwatch/wardwatch/internal/domain/scoring"
)

// -- Mock Repository --

type mockWardRepo struct {
	records map[uuid.UUID]*Ward
}

func newMockWardRepo() *mockWardRepo {
	return &mockWardRepo{records: make(map[uuid.UUID]*Ward)}
}

func (m *mockWardRepo) List(_ context.Context, deptType string, includeInactive bool) ([]*Ward, error) {
	var result []*Ward
	for _, w := range m.records {
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

func (m *mockWardRepo) GetByID(_ context.Context, id uuid.UUID) (*Ward, error) {
	w, ok := m.records[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return w, nil
}

func (m *mockWardRepo) GetByCode(_ context.Context, code string) (*Ward, error) {
	for _, w := range m.records {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockWardRepo) Create(_ context.Context, w *Ward) error {
	w.ID = uuid.New()
	w.CreatedAt = time.Now()
	w.UpdatedAt = time.Now()
	m.records[w.ID] = w
	return nil
}

func (m *mockWardRepo) Update(_ context.Context, w *Ward) error {
	if _, ok := m.records[w.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.records[w.ID] = w
	return nil
}

func (m *mockWardRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.records, id)
	return nil
}

// -- Tests --

func TestCreateWard_Valid(t *testing.T) {
	svc := NewService(newMockWardRepo())

	w := &Ward{Code: "MED1", Name: "Medicine 1", DeptType: DeptIPD, IsActive: true}
	if err := svc.Create(context.Background(), w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.ID == uuid.Nil {
		t.Error("expected ID to be assigned")
	}
}

func TestCreateWard_MissingFields(t *testing.T) {
	svc := NewService(newMockWardRepo())

	tests := []struct {
		name string
		w    *Ward
	}{
		{"missing code", &Ward{Name: "X", DeptType: DeptIPD}},
		{"missing name", &Ward{Code: "X", DeptType: DeptIPD}},
		{"missing dept type", &Ward{Code: "X", Name: "X"}},
		{"bad dept type", &Ward{Code: "X", Name: "X", DeptType: "ICU"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), tt.w); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateWard_DuplicateCode(t *testing.T) {
	repo := newMockWardRepo()
	svc := NewService(repo)

	first := &Ward{Code: "ER1", Name: "Emergency", DeptType: DeptER, IsActive: true}
	if err := svc.Create(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := &Ward{Code: "ER1", Name: "Another", DeptType: DeptER}
	if err := svc.Create(context.Background(), dup); err == nil {
		t.Error("expected duplicate code error")
	}
}

func TestUpdateWard_KeepsOwnCode(t *testing.T) {
	repo := newMockWardRepo()
	svc := NewService(repo)

	w := &Ward{Code: "OPD1", Name: "Clinic", DeptType: DeptOPD, IsActive: true}
	if err := svc.Create(context.Background(), w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w.Name = "Renamed Clinic"
	if err := svc.Update(context.Background(), w); err != nil {
		t.Fatalf("update with unchanged code should pass: %v", err)
	}
}

func TestUpdateWard_CodeCollision(t *testing.T) {
	repo := newMockWardRepo()
	svc := NewService(repo)

	a := &Ward{Code: "A", Name: "A", DeptType: DeptIPD, IsActive: true}
	b := &Ward{Code: "B", Name: "B", DeptType: DeptIPD, IsActive: true}
	svc.Create(context.Background(), a)
	svc.Create(context.Background(), b)

	b.Code = "A"
	if err := svc.Update(context.Background(), b); err == nil {
		t.Error("expected code collision error")
	}
}

func TestCreateWard_NormalizesConfig(t *testing.T) {
	repo := newMockWardRepo()
	svc := NewService(repo)

	w := &Ward{
		Code: "ER2", Name: "Emergency 2", DeptType: DeptER, IsActive: true,
		FieldsConfig: &FieldsConfig{
			Groups: []scoring.FieldGroup{
				{Fields: []scoring.Field{{Label: "Triage 1", Multiplier: 3.2}}},
			},
			Shifts: []string{"morning", "afternoon", "night"},
		},
	}
	if err := svc.Create(context.Background(), w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := w.FieldsConfig.Groups[0].Fields[0].Key; got != "triage_1" {
		t.Errorf("expected derived key triage_1, got %q", got)
	}
}

func TestCreateWard_RejectsFieldGroupsOnIPD(t *testing.T) {
	svc := NewService(newMockWardRepo())

	w := &Ward{
		Code: "MED2", Name: "Medicine 2", DeptType: DeptIPD, IsActive: true,
		FieldsConfig: &FieldsConfig{
			Groups: []scoring.FieldGroup{
				{Fields: []scoring.Field{{Label: "Triage 1", Multiplier: 3.2}}},
			},
		},
	}
	if err := svc.Create(context.Background(), w); err == nil {
		t.Error("inpatient wards must not accept a workload field schema")
	}

	// A shifts-only config carries no groups and stays legal.
	w.FieldsConfig = &FieldsConfig{Shifts: []string{"morning", "night"}}
	if err := svc.Create(context.Background(), w); err != nil {
		t.Errorf("shifts-only config on an IPD ward should pass: %v", err)
	}
}

func TestCreateWard_RejectsDuplicateConfigKeys(t *testing.T) {
	svc := NewService(newMockWardRepo())

	w := &Ward{
		Code: "ER3", Name: "Emergency 3", DeptType: DeptER,
		FieldsConfig: &FieldsConfig{
			Groups: []scoring.FieldGroup{
				{Fields: []scoring.Field{
					{Key: "same", Label: "One"},
					{Key: "same", Label: "Two"},
				}},
			},
		},
	}
	if err := svc.Create(context.Background(), w); err == nil {
		t.Error("expected duplicate key error")
	}
}

func TestListWards_DeptTypeFilter(t *testing.T) {
	repo := newMockWardRepo()
	svc := NewService(repo)

	svc.Create(context.Background(), &Ward{Code: "I1", Name: "I1", DeptType: DeptIPD, IsActive: true})
	svc.Create(context.Background(), &Ward{Code: "O1", Name: "O1", DeptType: DeptOPD, IsActive: true})

	ipd, err := svc.List(context.Background(), DeptIPD, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ipd) != 1 || ipd[0].Code != "I1" {
		t.Errorf("expected only I1, got %v", ipd)
	}

	if _, err := svc.List(context.Background(), "XX", false); err == nil {
		t.Error("expected error for unknown dept type filter")
	}
}

func TestWard_SchemaGroups(t *testing.T) {
	w := &Ward{}
	if w.SchemaGroups() != nil {
		t.Error("unconfigured ward should return nil groups")
	}

	w.FieldsConfig = &FieldsConfig{
		Groups: []scoring.FieldGroup{{Name: "G"}},
	}
	if len(w.SchemaGroups()) != 1 {
		t.Error("expected configured groups")
	}
}
