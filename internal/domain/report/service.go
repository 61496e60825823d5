// Package report builds the period exports: per-ward date ranges of shift
// records and summaries, rendered into xlsx workbooks.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardwatch/wardwatch/internal/domain/roster"
	"github.com/wardwatch/wardwatch/internal/domain/scoring"
	"github.com/wardwatch/wardwatch/internal/domain/ward"
)

const dateLayout = "2006-01-02"

// maxRangeDays bounds an export request so a typo in the date range cannot
// ask for decades of rows.
const maxRangeDays = 366

// shiftOrder fixes the row order inside each day block.
var shiftOrder = []string{roster.ShiftMorning, roster.ShiftAfternoon, roster.ShiftNight}

// IPDDayRows holds one ward day: the three shift rows and the day summary.
type IPDDayRows struct {
	Date    string
	Shifts  map[string]*roster.IPDShift
	Summary *roster.DailySummary
}

// IPDWardRange is the export read model for one inpatient ward.
type IPDWardRange struct {
	Ward *ward.Ward
	Days []IPDDayRows
}

// OPDDayRows holds one ward day of outpatient shift rows.
type OPDDayRows struct {
	Date   string
	Shifts map[string]*roster.OPDShift
}

// OPDWardRange is the export read model for one outpatient ward. Fields is
// the ward's flattened workload schema, one export column per field.
type OPDWardRange struct {
	Ward   *ward.Ward
	Fields []scoring.Field
	Days   []OPDDayRows
}

type Service struct {
	wards     ward.Repository
	ipd       roster.IPDShiftRepository
	opd       roster.OPDShiftRepository
	summaries roster.SummaryRepository
}

func NewService(wards ward.Repository, ipd roster.IPDShiftRepository, opd roster.OPDShiftRepository, summaries roster.SummaryRepository) *Service {
	return &Service{wards: wards, ipd: ipd, opd: opd, summaries: summaries}
}

// IPDRange loads the inpatient export model for [dateFrom, dateTo]. An empty
// wardIDs selects every active IPD ward. Every date in the range appears,
// with empty day blocks where nothing was recorded.
func (s *Service) IPDRange(ctx context.Context, dateFrom, dateTo string, wardIDs []uuid.UUID) ([]*IPDWardRange, error) {
	dates, err := expandRange(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	wards, err := s.resolveWards(ctx, wardIDs, func(w *ward.Ward) bool {
		return w.DeptType == ward.DeptIPD
	})
	if err != nil {
		return nil, err
	}

	ids := wardIDList(wards)
	shifts, err := s.ipd.ListRange(ctx, ids, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}
	summaries, err := s.summaries.ListRange(ctx, ids, dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	shiftIdx := make(map[uuid.UUID]map[string]map[string]*roster.IPDShift)
	for _, sh := range shifts {
		byDate := shiftIdx[sh.WardID]
		if byDate == nil {
			byDate = make(map[string]map[string]*roster.IPDShift)
			shiftIdx[sh.WardID] = byDate
		}
		if byDate[sh.RecordDate] == nil {
			byDate[sh.RecordDate] = make(map[string]*roster.IPDShift)
		}
		byDate[sh.RecordDate][sh.Shift] = sh
	}
	summaryIdx := make(map[uuid.UUID]map[string]*roster.DailySummary)
	for _, sum := range summaries {
		if summaryIdx[sum.WardID] == nil {
			summaryIdx[sum.WardID] = make(map[string]*roster.DailySummary)
		}
		summaryIdx[sum.WardID][sum.RecordDate] = sum
	}

	out := make([]*IPDWardRange, 0, len(wards))
	for _, w := range wards {
		r := &IPDWardRange{Ward: w, Days: make([]IPDDayRows, 0, len(dates))}
		for _, date := range dates {
			day := IPDDayRows{Date: date, Shifts: map[string]*roster.IPDShift{}}
			if byDate := shiftIdx[w.ID]; byDate != nil {
				for shift, sh := range byDate[date] {
					day.Shifts[shift] = sh
				}
			}
			if byDate := summaryIdx[w.ID]; byDate != nil {
				day.Summary = byDate[date]
			}
			r.Days = append(r.Days, day)
		}
		out = append(out, r)
	}
	return out, nil
}

// OPDRange loads the outpatient export model for [dateFrom, dateTo]. An
// empty wardIDs selects every active non-IPD ward (OPD, ER and LR).
func (s *Service) OPDRange(ctx context.Context, dateFrom, dateTo string, wardIDs []uuid.UUID) ([]*OPDWardRange, error) {
	dates, err := expandRange(dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	wards, err := s.resolveWards(ctx, wardIDs, func(w *ward.Ward) bool {
		return w.DeptType != ward.DeptIPD
	})
	if err != nil {
		return nil, err
	}

	shifts, err := s.opd.ListRange(ctx, wardIDList(wards), dateFrom, dateTo)
	if err != nil {
		return nil, err
	}

	shiftIdx := make(map[uuid.UUID]map[string]map[string]*roster.OPDShift)
	for _, sh := range shifts {
		byDate := shiftIdx[sh.WardID]
		if byDate == nil {
			byDate = make(map[string]map[string]*roster.OPDShift)
			shiftIdx[sh.WardID] = byDate
		}
		if byDate[sh.RecordDate] == nil {
			byDate[sh.RecordDate] = make(map[string]*roster.OPDShift)
		}
		byDate[sh.RecordDate][sh.Shift] = sh
	}

	out := make([]*OPDWardRange, 0, len(wards))
	for _, w := range wards {
		r := &OPDWardRange{Ward: w, Fields: flattenFields(w), Days: make([]OPDDayRows, 0, len(dates))}
		for _, date := range dates {
			day := OPDDayRows{Date: date, Shifts: map[string]*roster.OPDShift{}}
			if byDate := shiftIdx[w.ID]; byDate != nil {
				for shift, sh := range byDate[date] {
					day.Shifts[shift] = sh
				}
			}
			r.Days = append(r.Days, day)
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Service) resolveWards(ctx context.Context, wardIDs []uuid.UUID, keep func(*ward.Ward) bool) ([]*ward.Ward, error) {
	if len(wardIDs) == 0 {
		all, err := s.wards.List(ctx, "", false)
		if err != nil {
			return nil, err
		}
		selected := make([]*ward.Ward, 0, len(all))
		for _, w := range all {
			if keep(w) {
				selected = append(selected, w)
			}
		}
		return selected, nil
	}

	selected := make([]*ward.Ward, 0, len(wardIDs))
	for _, id := range wardIDs {
		w, err := s.wards.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("ward %s not found", id)
		}
		if keep(w) {
			selected = append(selected, w)
		}
	}
	return selected, nil
}

func wardIDList(wards []*ward.Ward) []uuid.UUID {
	ids := make([]uuid.UUID, len(wards))
	for i, w := range wards {
		ids[i] = w.ID
	}
	return ids
}

func flattenFields(w *ward.Ward) []scoring.Field {
	groups := w.SchemaGroups()
	if len(groups) == 0 {
		groups = scoring.LegacySchema()
	}
	var fields []scoring.Field
	for _, g := range groups {
		fields = append(fields, g.Fields...)
	}
	return fields
}

func expandRange(dateFrom, dateTo string) ([]string, error) {
	if dateFrom == "" || dateTo == "" {
		return nil, fmt.Errorf("dateFrom and dateTo are required")
	}
	from, err := time.Parse(dateLayout, dateFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid dateFrom %q", dateFrom)
	}
	to, err := time.Parse(dateLayout, dateTo)
	if err != nil {
		return nil, fmt.Errorf("invalid dateTo %q", dateTo)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("dateTo precedes dateFrom")
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("date range exceeds %d days", maxRangeDays)
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}
