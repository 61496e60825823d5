package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardwatch/wardwatch/internal/domain/scoring"
	"github.com/wardwatch/wardwatch/internal/domain/ward"
)

type Service struct {
	ipd       IPDShiftRepository
	opd       OPDShiftRepository
	summaries SummaryRepository
	wards     ward.Repository
	tx        TxRunner
}

func NewService(ipd IPDShiftRepository, opd OPDShiftRepository, summaries SummaryRepository, wards ward.Repository, tx TxRunner) *Service {
	return &Service{ipd: ipd, opd: opd, summaries: summaries, wards: wards, tx: tx}
}

const dateLayout = "2006-01-02"

func validDate(d string) bool {
	_, err := time.Parse(dateLayout, d)
	return err == nil
}

// -- IPD shifts --

func (s *Service) SaveIPDShifts(ctx context.Context, shifts []*IPDShift) error {
	if len(shifts) == 0 {
		return fmt.Errorf("shifts are required")
	}
	for _, sh := range shifts {
		if err := validateIPDShift(sh); err != nil {
			return err
		}
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, sh := range shifts {
			if err := s.ipd.Upsert(ctx, sh); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) ListIPDShifts(ctx context.Context, date string, wardID uuid.UUID) ([]*IPDShift, error) {
	if !validDate(date) {
		return nil, fmt.Errorf("record_date is required")
	}
	return s.ipd.ListByDate(ctx, date, wardID)
}

func validateIPDShift(sh *IPDShift) error {
	if sh.WardID == uuid.Nil {
		return fmt.Errorf("ward_id is required")
	}
	if !validDate(sh.RecordDate) {
		return fmt.Errorf("record_date is required")
	}
	if !ValidShift(sh.Shift) {
		return fmt.Errorf("unknown shift %q", sh.Shift)
	}
	if sh.HNCount < 0 || sh.RNCount < 0 || sh.TNCount < 0 || sh.NACount < 0 {
		return fmt.Errorf("staff counts must not be negative")
	}
	return nil
}

// -- Daily summary --

// SaveSummary upserts a ward day summary. HPPD and productivity are always
// recomputed from the stored shift headcounts and the submitted patient day,
// so stale values in the payload cannot leak through.
func (s *Service) SaveSummary(ctx context.Context, sum *DailySummary) error {
	if err := validateSummary(sum); err != nil {
		return err
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.recomputeAndUpsertSummary(ctx, sum)
	})
}

func (s *Service) recomputeAndUpsertSummary(ctx context.Context, sum *DailySummary) error {
	shifts, err := s.ipd.ListByWardDate(ctx, sum.WardID, sum.RecordDate)
	if err != nil {
		return err
	}
	total := 0
	for _, sh := range shifts {
		total += sh.TotalStaff()
	}
	sum.TotalStaffDay = total
	sum.HPPD = scoring.Round2(scoring.IPDHPPD(total, sum.PatientDay))
	sum.Productivity = scoring.Round2(scoring.IPDProductivity(total, sum.PatientDay))
	return s.summaries.Upsert(ctx, sum)
}

func (s *Service) ListSummaries(ctx context.Context, date string, wardID uuid.UUID) ([]*DailySummary, error) {
	if !validDate(date) {
		return nil, fmt.Errorf("record_date is required")
	}
	return s.summaries.ListByDate(ctx, date, wardID)
}

func validateSummary(sum *DailySummary) error {
	if sum.WardID == uuid.Nil {
		return fmt.Errorf("ward_id is required")
	}
	if !validDate(sum.RecordDate) {
		return fmt.Errorf("record_date is required")
	}
	if sum.PatientDay < 0 || sum.DischargeCount < 0 || sum.NewAdmission < 0 {
		return fmt.Errorf("counts must not be negative")
	}
	return nil
}

// -- Atomic save --

// SaveAll writes a full ward day (all shifts plus the summary) in one
// transaction. Everything is validated before the first write; any failure
// rolls the whole batch back.
func (s *Service) SaveAll(ctx context.Context, shifts []*IPDShift, sum *DailySummary) error {
	if sum == nil {
		return fmt.Errorf("summary is required")
	}
	for _, sh := range shifts {
		if err := validateIPDShift(sh); err != nil {
			return err
		}
		if sh.WardID != sum.WardID || sh.RecordDate != sum.RecordDate {
			return fmt.Errorf("shift %s does not match summary ward and date", sh.Shift)
		}
	}
	if err := validateSummary(sum); err != nil {
		return err
	}
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, sh := range shifts {
			if err := s.ipd.Upsert(ctx, sh); err != nil {
				return err
			}
		}
		return s.recomputeAndUpsertSummary(ctx, sum)
	})
}

// -- OPD shifts --

// SaveOPDShifts upserts a batch of outpatient shift records, recomputing
// each workload score from the owning ward's current field schema. The ward
// config is fetched once per distinct ward in the batch.
func (s *Service) SaveOPDShifts(ctx context.Context, shifts []*OPDShift) error {
	if len(shifts) == 0 {
		return fmt.Errorf("shifts are required")
	}
	for _, sh := range shifts {
		if err := validateOPDShift(sh); err != nil {
			return err
		}
	}

	schemas := make(map[uuid.UUID][]scoring.FieldGroup)
	for _, sh := range shifts {
		if _, ok := schemas[sh.WardID]; ok {
			continue
		}
		w, err := s.wards.GetByID(ctx, sh.WardID)
		if err != nil {
			return fmt.Errorf("ward %s: %w", sh.WardID, err)
		}
		schemas[sh.WardID] = w.SchemaGroups()
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, sh := range shifts {
			sh.WorkloadScore = scoring.WorkloadScore(sh.CategoryData, schemas[sh.WardID])
			if err := s.opd.Upsert(ctx, sh); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) ListOPDShifts(ctx context.Context, date string, wardID uuid.UUID) ([]*OPDShift, error) {
	if !validDate(date) {
		return nil, fmt.Errorf("record_date is required")
	}
	return s.opd.ListByDate(ctx, date, wardID)
}

func validateOPDShift(sh *OPDShift) error {
	if sh.WardID == uuid.Nil {
		return fmt.Errorf("ward_id is required")
	}
	if !validDate(sh.RecordDate) {
		return fmt.Errorf("record_date is required")
	}
	if !ValidShift(sh.Shift) {
		return fmt.Errorf("unknown shift %q", sh.Shift)
	}
	if sh.RNCount < 0 || sh.NonRNCount < 0 || sh.PatientTotal < 0 {
		return fmt.Errorf("counts must not be negative")
	}
	for key, count := range sh.CategoryData {
		if count < 0 {
			return fmt.Errorf("counter %q must not be negative", key)
		}
	}
	return nil
}
