package sheets

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
)

var (
	sheetIDPattern = regexp.MustCompile(`/spreadsheets/d/(?:e/)?([a-zA-Z0-9-_]+)`)
	gidPattern     = regexp.MustCompile(`[#?&]gid=(\d+)`)
)

// ConvertToCSVURL rewrites a Google Sheets link into its CSV export form.
// Published links (pubhtml) and editor links (edit) are both handled; any
// other URL is returned unchanged on the assumption it already serves CSV.
func ConvertToCSVURL(rawURL string) string {
	if !strings.Contains(rawURL, "docs.google.com/spreadsheets") {
		return rawURL
	}

	m := sheetIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return rawURL
	}
	id := m[1]

	gid := "0"
	if g := gidPattern.FindStringSubmatch(rawURL); g != nil {
		gid = g[1]
	}

	if strings.Contains(rawURL, "/d/e/") {
		return fmt.Sprintf("https://docs.google.com/spreadsheets/d/e/%s/pub?output=csv&gid=%s", id, gid)
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", id, gid)
}

// ParseCSV decodes sheet CSV data into one map per row, keyed by the
// normalized header of each column. Blank rows are skipped and short rows
// are padded so every record carries every header key.
func ParseCSV(data []byte) ([]map[string]string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = NormalizeHeader(h)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlankRow(record) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, key := range headers {
			if key == "" {
				continue
			}
			if i < len(record) {
				row[key] = strings.TrimSpace(record[i])
			} else {
				row[key] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
