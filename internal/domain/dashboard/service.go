package dashboard

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/wardwatch/wardwatch/internal/domain/roster"
	"github.com/wardwatch/wardwatch/internal/domain/scoring"
	"github.com/wardwatch/wardwatch/internal/domain/ward"
)

// Night shifts are reported under this key, matching the label the wards use
// for the overnight roster.
const midnightKey = "midnight"

type Service struct {
	wards     ward.Repository
	ipd       roster.IPDShiftRepository
	opd       roster.OPDShiftRepository
	summaries roster.SummaryRepository
}

func NewService(wards ward.Repository, ipd roster.IPDShiftRepository, opd roster.OPDShiftRepository, summaries roster.SummaryRepository) *Service {
	return &Service{wards: wards, ipd: ipd, opd: opd, summaries: summaries}
}

func shiftResponseKey(shift string) string {
	if shift == roster.ShiftNight {
		return midnightKey
	}
	return shift
}

// IPD builds the inpatient snapshot for the given date. An empty date falls
// back to the most recent date that has summary data.
func (s *Service) IPD(ctx context.Context, date string, wardID uuid.UUID) (*IPDSnapshot, error) {
	if date == "" {
		latest, err := s.summaries.LatestDate(ctx)
		if err != nil {
			return nil, err
		}
		date = latest
	}

	snap := &IPDSnapshot{
		Date: date,
		Shifts: map[string]*IPDShiftTotals{
			roster.ShiftMorning:   {},
			roster.ShiftAfternoon: {},
			midnightKey:           {},
		},
		Wards: []IPDWardRank{},
	}
	if date == "" {
		return snap, nil
	}

	wards, err := s.wards.List(ctx, ward.DeptIPD, false)
	if err != nil {
		return nil, err
	}
	wardByID := make(map[uuid.UUID]*ward.Ward, len(wards))
	for _, w := range wards {
		if wardID != uuid.Nil && w.ID != wardID {
			continue
		}
		wardByID[w.ID] = w
	}

	shifts, err := s.ipd.ListByDate(ctx, date, wardID)
	if err != nil {
		return nil, err
	}
	for _, sh := range shifts {
		if _, ok := wardByID[sh.WardID]; !ok {
			continue
		}
		totals := snap.Shifts[shiftResponseKey(sh.Shift)]
		if totals == nil {
			continue
		}
		totals.HN += sh.HNCount
		totals.RNOnly += sh.RNCount
		totals.TN += sh.TNCount
		totals.NA += sh.NACount
		totals.RN += sh.HNCount + sh.RNCount
		totals.NonRN += sh.TNCount + sh.NACount
		totals.Total += sh.TotalStaff()
	}
	for _, totals := range snap.Shifts {
		snap.TotalRN += totals.RN
		snap.TotalNonRN += totals.NonRN
		snap.TotalWorkforce += totals.Total
	}
	snap.SkillMix = skillMix(snap.TotalRN, snap.TotalNonRN)

	sums, err := s.summaries.ListByDate(ctx, date, wardID)
	if err != nil {
		return nil, err
	}

	var prodSum, cmiSum float64
	var prodCount, cmiCount int
	for _, sum := range sums {
		w, ok := wardByID[sum.WardID]
		if !ok {
			continue
		}

		snap.PatientDays += sum.PatientDay
		snap.Admissions += sum.NewAdmission
		snap.Discharges += sum.DischargeCount

		capStatus := ""
		if sum.CAPStatus != nil {
			capStatus = *sum.CAPStatus
		}
		switch ClassifyCAP(capStatus) {
		case CAPSuitable:
			snap.CAP.Suitable++
		case CAPImprove:
			snap.CAP.Improve++
		case CAPShortage:
			snap.CAP.Shortage++
		default:
			snap.CAP.None++
		}

		// Wards with zero productivity carry no signal (no staff or no
		// patients that day) and are left out of the averages.
		if sum.Productivity > 0 {
			prodSum += sum.Productivity
			prodCount++
			if sum.CMI != nil {
				cmiSum += *sum.CMI
				cmiCount++
			}
		}

		snap.Wards = append(snap.Wards, IPDWardRank{
			WardID:       sum.WardID,
			Code:         w.Code,
			Name:         w.Name,
			TotalStaff:   sum.TotalStaffDay,
			PatientDay:   sum.PatientDay,
			HPPD:         sum.HPPD,
			Productivity: sum.Productivity,
			CMI:          sum.CMI,
			CAPStatus:    ClassifyCAP(capStatus),
		})
	}

	if prodCount > 0 {
		snap.AvgProductivity = scoring.Round2(prodSum / float64(prodCount))
	}
	if cmiCount > 0 {
		snap.AvgCMI = scoring.Round2(cmiSum / float64(cmiCount))
	}

	sort.SliceStable(snap.Wards, func(i, j int) bool {
		return snap.Wards[i].Productivity > snap.Wards[j].Productivity
	})

	return snap, nil
}

// OPD builds the outpatient snapshot for the given date and department
// subtype (OPD, ER or LR). Overall productivity is a ratio of sums, not an
// average of per-ward percentages.
func (s *Service) OPD(ctx context.Context, date, deptType string, wardID uuid.UUID) (*OPDSnapshot, error) {
	if deptType == "" {
		deptType = ward.DeptOPD
	}
	if deptType != ward.DeptOPD && deptType != ward.DeptER && deptType != ward.DeptLR {
		return nil, fmt.Errorf("unknown dept_type %q", deptType)
	}

	if date == "" {
		latest, err := s.opd.LatestDate(ctx)
		if err != nil {
			return nil, err
		}
		date = latest
	}

	snap := &OPDSnapshot{
		Date:     date,
		DeptType: deptType,
		Shifts: map[string]*OPDShiftAgg{
			roster.ShiftMorning:   {},
			roster.ShiftAfternoon: {},
			midnightKey:           {},
		},
		Wards: []OPDWardRank{},
	}
	if date == "" {
		return snap, nil
	}

	wards, err := s.wards.List(ctx, deptType, false)
	if err != nil {
		return nil, err
	}
	wardByID := make(map[uuid.UUID]*ward.Ward, len(wards))
	for _, w := range wards {
		if wardID != uuid.Nil && w.ID != wardID {
			continue
		}
		wardByID[w.ID] = w
	}

	shifts, err := s.opd.ListByDate(ctx, date, wardID)
	if err != nil {
		return nil, err
	}

	type wardAgg struct {
		staff    int
		patients int
		workload float64
	}
	perWard := make(map[uuid.UUID]*wardAgg)

	for _, sh := range shifts {
		if _, ok := wardByID[sh.WardID]; !ok {
			continue
		}

		agg := snap.Shifts[shiftResponseKey(sh.Shift)]
		if agg == nil {
			continue
		}
		agg.Staff += sh.TotalStaff()
		agg.Patients += sh.PatientTotal
		agg.Workload += sh.WorkloadScore

		wa := perWard[sh.WardID]
		if wa == nil {
			wa = &wardAgg{}
			perWard[sh.WardID] = wa
		}
		wa.staff += sh.TotalStaff()
		wa.patients += sh.PatientTotal
		wa.workload += sh.WorkloadScore

		snap.TotalStaff += sh.TotalStaff()
		snap.TotalPatients += sh.PatientTotal
		snap.TotalWorkload += sh.WorkloadScore
	}

	for _, agg := range snap.Shifts {
		agg.Expected = scoring.Round2(scoring.ExpectedStaff(agg.Workload))
		agg.Productivity = scoring.Round2(scoring.ShiftProductivity(agg.Workload, agg.Staff))
		agg.Workload = scoring.Round2(agg.Workload)
	}

	snap.ExpectedStaff = scoring.Round2(scoring.ExpectedStaff(snap.TotalWorkload))
	snap.Productivity = scoring.Round2(scoring.ShiftProductivity(snap.TotalWorkload, snap.TotalStaff))
	snap.TotalWorkload = scoring.Round2(snap.TotalWorkload)

	for id, wa := range perWard {
		w := wardByID[id]
		snap.Wards = append(snap.Wards, OPDWardRank{
			WardID:       id,
			Code:         w.Code,
			Name:         w.Name,
			Staff:        wa.staff,
			Patients:     wa.patients,
			Workload:     scoring.Round2(wa.workload),
			Expected:     scoring.Round2(scoring.ExpectedStaff(wa.workload)),
			Productivity: scoring.Round2(scoring.ShiftProductivity(wa.workload, wa.staff)),
		})
	}
	sort.SliceStable(snap.Wards, func(i, j int) bool {
		if snap.Wards[i].Productivity != snap.Wards[j].Productivity {
			return snap.Wards[i].Productivity > snap.Wards[j].Productivity
		}
		return snap.Wards[i].Code < snap.Wards[j].Code
	})

	return snap, nil
}

func skillMix(rn, nonRN int) string {
	if rn <= 0 {
		return "1:0"
	}
	return fmt.Sprintf("1:%.1f", float64(nonRN)/float64(rn))
}
