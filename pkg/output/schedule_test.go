package output

import (
	"strings"
	"testing"

	"github.com/advancehq/salary-advance/pkg/loans"
)

func TestScheduleCSV(t *testing.T) {
	rows := []loans.Row{
		{Month: 1, Payment: 88.85, Principal: 78.85, Interest: 10.00, Balance: 921.15},
		{Month: 2, Payment: 88.85, Principal: 79.64, Interest: 9.21, Balance: 841.51},
	}

	got := ScheduleCSV(rows)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Month,Payment,Principal,Interest,Balance" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "1,88.85,78.85,10.00,921.15" {
		t.Errorf("unexpected first row: %q", lines[1])
	}
	if lines[2] != "2,88.85,79.64,9.21,841.51" {
		t.Errorf("unexpected second row: %q", lines[2])
	}
}

func TestScheduleCSVEmpty(t *testing.T) {
	got := ScheduleCSV(nil)
	if strings.TrimRight(got, "\n") != "Month,Payment,Principal,Interest,Balance" {
		t.Errorf("expected header only, got %q", got)
	}
}

func TestWriteSchedule(t *testing.T) {
	rows := []loans.Row{
		{Month: 1, Payment: 1088.85, Principal: 1078.85, Interest: 10.00, Balance: 9921.15},
		{Month: 2, Payment: 1088.85, Principal: 1089.64, Interest: 9.21, Balance: 8831.51},
	}

	var buf strings.Builder
	WriteSchedule(&buf, rows)
	got := buf.String()

	if !strings.HasPrefix(got, "Month | Payment") {
		t.Errorf("missing header, got %q", got)
	}
	// Amounts carry thousands separators.
	for _, want := range []string{"$1,088.85", "$1,078.85", "$9,921.15", "$8,831.51", "$10.00"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("expected 2 header lines plus 2 rows, got %d lines", len(lines))
	}
}

func TestScheduleCSVRowCountMatchesTerm(t *testing.T) {
	schedule, err := loans.Schedule(10000, 12, 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := ScheduleCSV(schedule)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 25 {
		t.Errorf("expected 25 lines (header + 24 months), got %d", len(lines))
	}
}
