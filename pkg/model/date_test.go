package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid", input: "2025-03-14", want: NewDate(2025, time.March, 14)},
		{name: "leap day", input: "2024-02-29", want: NewDate(2024, time.February, 29)},
		{name: "not a leap year", input: "2025-02-29", wantErr: true},
		{name: "time component", input: "2025-03-14T10:00:00Z", wantErr: true},
		{name: "wrong separator", input: "2025/03/14", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := NewDate(2025, time.December, 30)

	if got := d.AddDays(3).String(); got != "2026-01-02" {
		t.Errorf("AddDays across year = %s, want 2026-01-02", got)
	}
	if got := d.DaysUntil(d.AddDays(3)); got != 3 {
		t.Errorf("DaysUntil = %d, want 3", got)
	}
	if got := d.AddDays(3).DaysUntil(d); got != -3 {
		t.Errorf("DaysUntil backwards = %d, want -3", got)
	}
	if !d.Before(d.AddDays(1)) || d.After(d.AddDays(1)) {
		t.Error("expected d to be before the next day")
	}
}

func TestDate_DaysUntilIgnoresDST(t *testing.T) {
	start := NewDate(2025, time.March, 29)
	if got := start.DaysUntil(NewDate(2025, time.April, 1)); got != 3 {
		t.Errorf("DaysUntil across DST change = %d, want 3", got)
	}
}

func TestToday(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("time zone database unavailable: %v", err)
	}
	now := time.Date(2025, time.June, 1, 20, 0, 0, 0, time.UTC)

	if got := Today(now, time.UTC).String(); got != "2025-06-01" {
		t.Errorf("Today UTC = %s, want 2025-06-01", got)
	}
	if got := Today(now, tokyo).String(); got != "2025-06-02" {
		t.Errorf("Today Tokyo = %s, want 2025-06-02", got)
	}
	if got := Today(now, nil).String(); got != "2025-06-01" {
		t.Errorf("Today nil location = %s, want 2025-06-01", got)
	}
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Start *Date `json:"startDate"`
		End   *Date `json:"endDate"`
	}
	if err := json.Unmarshal([]byte(`{"startDate":"2025-07-01","endDate":null}`), &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Start == nil || payload.Start.String() != "2025-07-01" {
		t.Errorf("startDate = %v, want 2025-07-01", payload.Start)
	}
	if payload.End != nil {
		t.Errorf("endDate = %v, want nil", payload.End)
	}

	out, err := json.Marshal(payload.Start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `"2025-07-01"` {
		t.Errorf("Marshal = %s, want \"2025-07-01\"", out)
	}

	for _, bad := range []string{`{"startDate":20250701}`, `{"startDate":"01-07-2025"}`} {
		if err := json.Unmarshal([]byte(bad), &payload); err == nil {
			t.Errorf("Unmarshal(%s) expected error", bad)
		}
	}
}
