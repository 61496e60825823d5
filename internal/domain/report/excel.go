package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wardwatch/wardwatch/internal/domain/scoring"
)

// productivityTarget is the percentage above which a productivity cell is
// shaded green instead of red.
const productivityTarget = 85.0

var sheetNameSanitizer = strings.NewReplacer(
	"[", "", "]", "", ":", "", "*", "", "?", "", "/", "-", "\\", "-",
)

type workbookStyles struct {
	header int
	center int
	green  int
	red    int
}

func newStyles(f *excelize.File) (*workbookStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	center, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	green, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "006100"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	red, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "9C0006"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	return &workbookStyles{header: header, center: center, green: green, red: red}, nil
}

// sheetName trims a ward name to the 31 characters xlsx allows and strips
// the characters it forbids. The cap counts runes, not bytes: ward names
// here are usually Thai, so a byte slice would cut mid-rune.
func sheetName(name string, used map[string]bool) string {
	clean := sheetNameSanitizer.Replace(strings.TrimSpace(name))
	if clean == "" {
		clean = "Ward"
	}
	base := []rune(clean)
	if len(base) > 31 {
		base = base[:31]
	}
	clean = string(base)
	for n := 2; used[clean]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		if len(base)+len(suffix) > 31 {
			clean = string(base[:31-len(suffix)]) + suffix
		} else {
			clean = string(base) + suffix
		}
	}
	used[clean] = true
	return clean
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// BuildIPDWorkbook renders one sheet per inpatient ward: three header rows,
// then a three-shift block per day with the date and summary columns merged
// across the block.
func BuildIPDWorkbook(ranges []*IPDWardRange) (*excelize.File, error) {
	f := excelize.NewFile()
	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	used := map[string]bool{}
	for i, r := range ranges {
		sheet := sheetName(r.Ward.Name, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeIPDSheet(f, sheet, r, styles); err != nil {
			return nil, err
		}
		if i == 0 {
			idx, err := f.GetSheetIndex(sheet)
			if err != nil {
				return nil, err
			}
			f.SetActiveSheet(idx)
		}
	}
	if len(ranges) > 0 {
		f.DeleteSheet("Sheet1")
	}
	return f, nil
}

func writeIPDSheet(f *excelize.File, sheet string, r *IPDWardRange, styles *workbookStyles) error {
	title := fmt.Sprintf("%s (%s) Daily Staffing", r.Ward.Name, r.Ward.Code)
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", "O1")

	f.SetCellValue(sheet, "A2", "Date")
	f.MergeCell(sheet, "A2", "A3")
	f.SetCellValue(sheet, "B2", "Shift")
	f.MergeCell(sheet, "B2", "B3")
	f.SetCellValue(sheet, "C2", "Staffing")
	f.MergeCell(sheet, "C2", "G2")
	f.SetCellValue(sheet, "H2", "Daily Summary")
	f.MergeCell(sheet, "H2", "O2")

	labels := []string{"HN", "RN", "TN", "NA", "Total", "Patient Day", "Total Staff", "HPPD", "Admit", "Discharge", "Productivity", "CMI", "CAP"}
	for i, label := range labels {
		f.SetCellValue(sheet, cell(3+i, 3), label)
	}
	f.SetCellStyle(sheet, "A1", "O3", styles.header)

	row := 4
	for _, day := range r.Days {
		top, bottom := row, row+len(shiftOrder)-1

		f.SetCellValue(sheet, cell(1, top), day.Date)
		f.MergeCell(sheet, cell(1, top), cell(1, bottom))
		f.SetCellStyle(sheet, cell(1, top), cell(1, bottom), styles.center)

		for _, shift := range shiftOrder {
			f.SetCellValue(sheet, cell(2, row), shift)
			if sh := day.Shifts[shift]; sh != nil {
				f.SetCellValue(sheet, cell(3, row), sh.HNCount)
				f.SetCellValue(sheet, cell(4, row), sh.RNCount)
				f.SetCellValue(sheet, cell(5, row), sh.TNCount)
				f.SetCellValue(sheet, cell(6, row), sh.NACount)
				f.SetCellValue(sheet, cell(7, row), sh.TotalStaff())
			}
			row++
		}

		for col := 8; col <= 15; col++ {
			f.MergeCell(sheet, cell(col, top), cell(col, bottom))
			f.SetCellStyle(sheet, cell(col, top), cell(col, bottom), styles.center)
		}
		if sum := day.Summary; sum != nil {
			f.SetCellValue(sheet, cell(8, top), sum.PatientDay)
			f.SetCellValue(sheet, cell(9, top), sum.TotalStaffDay)
			f.SetCellValue(sheet, cell(10, top), sum.HPPD)
			f.SetCellValue(sheet, cell(11, top), sum.NewAdmission)
			f.SetCellValue(sheet, cell(12, top), sum.DischargeCount)
			f.SetCellValue(sheet, cell(13, top), sum.Productivity)
			if sum.CMI != nil {
				f.SetCellValue(sheet, cell(14, top), *sum.CMI)
			}
			if sum.CAPStatus != nil {
				f.SetCellValue(sheet, cell(15, top), *sum.CAPStatus)
			}
			style := styles.red
			if sum.Productivity >= productivityTarget {
				style = styles.green
			}
			f.SetCellStyle(sheet, cell(13, top), cell(13, bottom), style)
		}
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "H", "O", 12)
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      3,
		TopLeftCell: "C4",
		ActivePane:  "bottomRight",
	})
}

// BuildOPDWorkbook renders one sheet per outpatient ward. The column set is
// driven by the ward's workload schema, followed by the computed staffing
// metrics per shift.
func BuildOPDWorkbook(ranges []*OPDWardRange) (*excelize.File, error) {
	f := excelize.NewFile()
	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	used := map[string]bool{}
	for i, r := range ranges {
		sheet := sheetName(r.Ward.Name, used)
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := writeOPDSheet(f, sheet, r, styles); err != nil {
			return nil, err
		}
		if i == 0 {
			idx, err := f.GetSheetIndex(sheet)
			if err != nil {
				return nil, err
			}
			f.SetActiveSheet(idx)
		}
	}
	if len(ranges) > 0 {
		f.DeleteSheet("Sheet1")
	}
	return f, nil
}

func writeOPDSheet(f *excelize.File, sheet string, r *OPDWardRange, styles *workbookStyles) error {
	groups := r.Ward.SchemaGroups()
	if len(groups) == 0 {
		groups = scoring.LegacySchema()
	}

	metricLabels := []string{"Patients", "RN", "Non-RN", "Total Staff", "Workload", "Nursing Need", "NHPPD", "Productivity"}
	lastCol := 2 + len(r.Fields) + len(metricLabels)

	title := fmt.Sprintf("%s (%s) Daily Staffing", r.Ward.Name, r.Ward.Code)
	f.SetCellValue(sheet, "A1", title)
	f.MergeCell(sheet, "A1", cell(lastCol, 1))

	f.SetCellValue(sheet, "A2", "Date")
	f.MergeCell(sheet, "A2", "A3")
	f.SetCellValue(sheet, "B2", "Shift")
	f.MergeCell(sheet, "B2", "B3")

	col := 3
	for _, g := range groups {
		if len(g.Fields) == 0 {
			continue
		}
		f.SetCellValue(sheet, cell(col, 2), g.Name)
		f.MergeCell(sheet, cell(col, 2), cell(col+len(g.Fields)-1, 2))
		for _, field := range g.Fields {
			label := field.Label
			if label == "" {
				label = field.Key
			}
			f.SetCellValue(sheet, cell(col, 3), label)
			col++
		}
	}

	f.SetCellValue(sheet, cell(col, 2), "Staffing")
	f.MergeCell(sheet, cell(col, 2), cell(lastCol, 2))
	for i, label := range metricLabels {
		f.SetCellValue(sheet, cell(col+i, 3), label)
	}
	f.SetCellStyle(sheet, "A1", cell(lastCol, 3), styles.header)

	prodCol := lastCol
	row := 4
	for _, day := range r.Days {
		top, bottom := row, row+len(shiftOrder)-1

		f.SetCellValue(sheet, cell(1, top), day.Date)
		f.MergeCell(sheet, cell(1, top), cell(1, bottom))
		f.SetCellStyle(sheet, cell(1, top), cell(1, bottom), styles.center)

		for _, shift := range shiftOrder {
			f.SetCellValue(sheet, cell(2, row), shift)
			if sh := day.Shifts[shift]; sh != nil {
				for i, field := range r.Fields {
					if count, ok := sh.CategoryData[field.Key]; ok {
						f.SetCellValue(sheet, cell(3+i, row), count)
					}
				}
				metricCol := 3 + len(r.Fields)
				staff := sh.TotalStaff()
				productivity := scoring.Round2(scoring.ShiftProductivity(sh.WorkloadScore, staff))

				f.SetCellValue(sheet, cell(metricCol, row), sh.PatientTotal)
				f.SetCellValue(sheet, cell(metricCol+1, row), sh.RNCount)
				f.SetCellValue(sheet, cell(metricCol+2, row), sh.NonRNCount)
				f.SetCellValue(sheet, cell(metricCol+3, row), staff)
				f.SetCellValue(sheet, cell(metricCol+4, row), scoring.Round2(sh.WorkloadScore))
				f.SetCellValue(sheet, cell(metricCol+5, row), scoring.Round2(scoring.ExpectedStaff(sh.WorkloadScore)))
				f.SetCellValue(sheet, cell(metricCol+6, row), scoring.Round2(scoring.NHPPD(staff, sh.PatientTotal)))
				f.SetCellValue(sheet, cell(metricCol+7, row), productivity)

				style := styles.red
				if productivity >= productivityTarget {
					style = styles.green
				}
				f.SetCellStyle(sheet, cell(prodCol, row), cell(prodCol, row), style)
			}
			row++
		}
	}

	f.SetColWidth(sheet, "A", "A", 12)
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      3,
		TopLeftCell: "C4",
		ActivePane:  "bottomRight",
	})
}
