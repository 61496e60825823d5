package dashboard

import "strings"

// Capacity-status buckets.
const (
	CAPSuitable = "suitable"
	CAPImprove  = "improve"
	CAPShortage = "shortage"
	CAPNone     = "none"
)

// capKeywords is checked in order; the first matching substring wins. Both
// the English and Thai spellings used on the wards are recognized.
var capKeywords = []struct {
	substr string
	bucket string
}{
	{"suitable", CAPSuitable},
	{"เหมาะสม", CAPSuitable},
	{"improve", CAPImprove},
	{"ปรับปรุง", CAPImprove},
	{"shortage", CAPShortage},
	{"ขาดแคลน", CAPShortage},
}

// ClassifyCAP maps a free-text capacity status to its bucket. Matching is
// case-insensitive and tolerant of surrounding text; anything unrecognized
// lands in the "none" bucket.
func ClassifyCAP(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return CAPNone
	}
	for _, kw := range capKeywords {
		if strings.Contains(s, kw.substr) {
			return kw.bucket
		}
	}
	return CAPNone
}
