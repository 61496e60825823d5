package dashboard

import "testing"

func TestClassifyCAP(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"suitable", CAPSuitable},
		{"SUITABLE ", CAPSuitable},
		{"Staffing suitable today", CAPSuitable},
		{"เหมาะสม", CAPSuitable},
		{"improve", CAPImprove},
		{"Needs Improvement", CAPImprove},
		{"ปรับปรุง", CAPImprove},
		{"shortage", CAPShortage},
		{"ขาดแคลน", CAPShortage},
		{"critical", CAPNone},
		{"", CAPNone},
		{"   ", CAPNone},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := ClassifyCAP(tt.status); got != tt.want {
				t.Errorf("ClassifyCAP(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestClassifyCAP_OrderedPrecedence(t *testing.T) {
	// A status mentioning both keywords resolves to the earlier table entry.
	if got := ClassifyCAP("suitable but could improve"); got != CAPSuitable {
		t.Errorf("expected suitable to win, got %q", got)
	}
}
