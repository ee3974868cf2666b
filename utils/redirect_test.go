package utils

import "testing"

func TestDetectPaidMarker(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantPaid bool
		wantURL  string
	}{
		{
			"marker with session id",
			"https://app.example/?paid=1&session_id=cs_123",
			true,
			"https://app.example/",
		},
		{
			"marker only",
			"https://app.example/dashboard?paid=1",
			true,
			"https://app.example/dashboard",
		},
		{
			"marker among other params",
			"https://app.example/?tab=invoices&paid=1",
			true,
			"https://app.example/?tab=invoices",
		},
		{"no marker", "https://app.example/", false, "https://app.example/"},
		{"wrong value", "https://app.example/?paid=0", false, "https://app.example/?paid=0"},
		{"malformed url", "http://%zz", false, "http://%zz"},
		{"empty", "", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paid, cleaned := DetectPaidMarker(tt.url)
			if paid != tt.wantPaid {
				t.Errorf("paid = %v, want %v", paid, tt.wantPaid)
			}
			if cleaned != tt.wantURL {
				t.Errorf("cleaned = %q, want %q", cleaned, tt.wantURL)
			}
		})
	}
}
