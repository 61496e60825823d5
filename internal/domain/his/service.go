package his

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardwatch/wardwatch/internal/domain/ward"
)

type Service struct {
	repo    Repository
	wards   ward.Repository
	timeout time.Duration
}

func NewService(repo Repository, wards ward.Repository, timeout time.Duration) *Service {
	return &Service{repo: repo, wards: wards, timeout: timeout}
}

// Lookup fetches the census counts for one ward and date from the HIS
// warehouse. A ward with no configured HIS keys gets a zeroed, unmapped
// result rather than an error so callers can distinguish "no data" from
// "no mapping". Warehouse failures are returned, never zero-filled.
func (s *Service) Lookup(ctx context.Context, wardID uuid.UUID, date string) (*CensusResult, error) {
	if wardID == uuid.Nil {
		return nil, fmt.Errorf("ward_id is required")
	}
	key, err := dateKey(date)
	if err != nil {
		return nil, err
	}

	w, err := s.wards.GetByID(ctx, wardID)
	if err != nil {
		return nil, fmt.Errorf("ward %s: %w", wardID, err)
	}

	result := &CensusResult{WardID: wardID, Date: date}
	if len(w.HISWardKeys) == 0 {
		return result, nil
	}
	result.Mapped = true

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	patientDay, admissions, discharges, err := s.repo.Census(ctx, w.HISWardKeys, key)
	if err != nil {
		return nil, fmt.Errorf("his census query: %w", err)
	}
	beds, err := s.repo.BedCount(ctx, w.HISWardKeys)
	if err != nil {
		return nil, fmt.Errorf("his bed count query: %w", err)
	}

	result.PatientDay = patientDay
	result.Admissions = admissions
	result.Discharges = discharges
	result.BedCount = beds
	return result, nil
}

// ListWards returns the visible HIS ward dimension rows for mapping.
func (s *Service) ListWards(ctx context.Context) ([]*Ward, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.ListWards(ctx)
}

// dateKey converts an ISO date to the warehouse's YYYYMMDD integer form.
func dateKey(date string) (int, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, fmt.Errorf("record_date is required")
	}
	return t.Year()*10000 + int(t.Month())*100 + t.Day(), nil
}
