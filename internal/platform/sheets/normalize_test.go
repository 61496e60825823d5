package sheets

import "testing"

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"Date", "date"},
		{"วันที่", "date"},
		{"  Ward Name ", "ward_name"},
		{"หอผู้ป่วย", "ward_name"},
		{"RN", "rn_count"},
		{"พยาบาลวิชาชีพ", "rn_count"},
		{"PN_NA", "pn_count"},
		{"Total Nurses", "total_workforce"},
		{"เวรดึก", "night_shift_nurses"},
		{"Morning", "morning_shift_nurses"},
		{"Target", "target_score"},
		{"คะแนนจริง", "actual_score"},
		{"CMI", "cmi"},
		{"จำนวนผู้ป่วย", "patient_visit"},
		{"เหมาะสม", "cap_suitable"},
		{"ปรับปรุง", "cap_improve"},
		{"ขาดแคลน", "cap_shortage"},
		{"Remarks", "remarks"},
		{"Bed Occupancy", "bed_occupancy"},
	}

	for _, tt := range tests {
		if got := NormalizeHeader(tt.raw); got != tt.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"2024-03-01", "2024-03-01", false},
		{"2024/3/1", "2024-03-01", false},
		{"15/3/2024", "2024-03-15", false},
		{"3/15/2024", "2024-03-15", false},
		{"5/3/2024", "2024-05-03", false},
		{"5/3/24", "2024-05-03", false},
		{"", "", true},
		{"March 5", "", true},
		{"13/13/2024", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeDate(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NormalizeDate(%q) expected error, got %q", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeDate(%q) unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestConvertToCSVURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "editor link",
			raw:  "https://docs.google.com/spreadsheets/d/abc123XYZ/edit#gid=42",
			want: "https://docs.google.com/spreadsheets/d/abc123XYZ/export?format=csv&gid=42",
		},
		{
			name: "editor link without gid",
			raw:  "https://docs.google.com/spreadsheets/d/abc123XYZ/edit",
			want: "https://docs.google.com/spreadsheets/d/abc123XYZ/export?format=csv&gid=0",
		},
		{
			name: "published link",
			raw:  "https://docs.google.com/spreadsheets/d/e/2PACX-abc/pubhtml?gid=7",
			want: "https://docs.google.com/spreadsheets/d/e/2PACX-abc/pub?output=csv&gid=7",
		},
		{
			name: "non-google url passes through",
			raw:  "https://example.com/staffing.csv",
			want: "https://example.com/staffing.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertToCSVURL(tt.raw); got != tt.want {
				t.Errorf("ConvertToCSVURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
