package ward

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	wards Repository
}

func NewService(wards Repository) *Service {
	return &Service{wards: wards}
}

func (s *Service) List(ctx context.Context, deptType string, includeInactive bool) ([]*Ward, error) {
	if deptType != "" && !ValidDeptType(deptType) {
		return nil, fmt.Errorf("unknown dept_type %q", deptType)
	}
	return s.wards.List(ctx, deptType, includeInactive)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Ward, error) {
	return s.wards.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, w *Ward) error {
	if err := s.validate(w); err != nil {
		return err
	}
	if existing, err := s.wards.GetByCode(ctx, w.Code); err == nil && existing != nil {
		return fmt.Errorf("ward code %q already exists", w.Code)
	}
	return s.wards.Create(ctx, w)
}

func (s *Service) Update(ctx context.Context, w *Ward) error {
	if w.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if err := s.validate(w); err != nil {
		return err
	}
	if existing, err := s.wards.GetByCode(ctx, w.Code); err == nil && existing != nil && existing.ID != w.ID {
		return fmt.Errorf("ward code %q already exists", w.Code)
	}
	return s.wards.Update(ctx, w)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.wards.Delete(ctx, id)
}

func (s *Service) validate(w *Ward) error {
	if w.Code == "" {
		return fmt.Errorf("code is required")
	}
	if w.Name == "" {
		return fmt.Errorf("name is required")
	}
	if w.DeptType == "" {
		return fmt.Errorf("dept_type is required")
	}
	if !ValidDeptType(w.DeptType) {
		return fmt.Errorf("unknown dept_type %q", w.DeptType)
	}
	// Inpatient wards score on fixed headcounts, never on a field schema.
	if w.DeptType == DeptIPD && w.FieldsConfig != nil && len(w.FieldsConfig.Groups) > 0 {
		return fmt.Errorf("IPD wards do not take workload field groups")
	}
	w.FieldsConfig.Normalize()
	return w.FieldsConfig.Validate()
}
