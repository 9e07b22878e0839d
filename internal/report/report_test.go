package report

import (
	"strings"
	"testing"
	"time"

	"github.com/aalopez23/county-hr-dashboard/internal/timeoff"
)

func sampleRequests() []timeoff.Request {
	return []timeoff.Request{
		{
			ID: "1", EmployeeName: "John Martinez", Type: timeoff.TypeVacation,
			StartDate: "2025-11-15", EndDate: "2025-11-19", Days: 5,
			Status: timeoff.StatusPending, SubmittedDate: "2025-10-01",
		},
		{
			ID: "2", EmployeeName: "John Martinez", Type: timeoff.TypeSick,
			StartDate: "2025-09-12", EndDate: "2025-09-12", Days: 1,
			Status: timeoff.StatusApproved, SubmittedDate: "2025-09-10",
		},
		{
			ID: "3", EmployeeName: "Sarah Chen", Type: timeoff.TypeVacation,
			StartDate: "2025-12-22", EndDate: "2025-12-24", Days: 3,
			Status: timeoff.StatusApproved, SubmittedDate: "2025-10-05",
		},
		{
			ID: "4", EmployeeName: "David Lee", Type: timeoff.TypePersonal,
			StartDate: "2025-10-30", EndDate: "2025-10-30", Days: 1,
			Status: timeoff.StatusDenied, SubmittedDate: "2025-10-07",
		},
	}
}

func TestBuild(t *testing.T) {
	s := Build(sampleRequests())

	if s.TotalRequests != 4 {
		t.Fatalf("TotalRequests = %d, want 4", s.TotalRequests)
	}
	if s.StatusCounts[timeoff.StatusPending] != 1 ||
		s.StatusCounts[timeoff.StatusApproved] != 2 ||
		s.StatusCounts[timeoff.StatusDenied] != 1 {
		t.Fatalf("unexpected status counts: %v", s.StatusCounts)
	}
	if s.TypeCounts[timeoff.TypeVacation] != 2 ||
		s.TypeCounts[timeoff.TypeSick] != 1 ||
		s.TypeCounts[timeoff.TypePersonal] != 1 {
		t.Fatalf("unexpected type counts: %v", s.TypeCounts)
	}
	if s.TotalDays != 10 {
		t.Fatalf("TotalDays = %d, want 10", s.TotalDays)
	}
	if s.ApprovedDays != 4 {
		t.Fatalf("ApprovedDays = %d, want 4", s.ApprovedDays)
	}
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil)

	if s.TotalRequests != 0 || s.TotalDays != 0 || s.ApprovedDays != 0 {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
	// Count maps carry every known key even with no data.
	if len(s.StatusCounts) != 3 || len(s.TypeCounts) != 3 {
		t.Fatalf("expected zero-initialized count maps, got %+v", s)
	}
	if len(s.Recent) != 0 {
		t.Fatalf("expected no recent activity, got %+v", s.Recent)
	}
}

func TestBuildRecentNewestFirst(t *testing.T) {
	s := Build(sampleRequests())

	if len(s.Recent) != 4 {
		t.Fatalf("expected 4 recent entries, got %d", len(s.Recent))
	}
	if s.Recent[0].ID != "4" || s.Recent[3].ID != "1" {
		t.Fatalf("expected stored order reversed, got %v", s.Recent)
	}
}

func TestBuildRecentCapped(t *testing.T) {
	requests := make([]timeoff.Request, 15)
	for i := range requests {
		requests[i] = timeoff.Request{ID: string(rune('a' + i)), Status: timeoff.StatusPending, Type: timeoff.TypeSick}
	}
	s := Build(requests)

	if len(s.Recent) != 10 {
		t.Fatalf("expected recent activity capped at 10, got %d", len(s.Recent))
	}
	if s.Recent[0].ID != requests[14].ID {
		t.Fatalf("expected newest request first, got %+v", s.Recent[0])
	}
}

func TestCSV(t *testing.T) {
	got := string(CSV(sampleRequests()[:2]))

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "Employee,Type,Start Date,End Date,Days,Status,Submitted" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "John Martinez,vacation,2025-11-15,2025-11-19,5,pending,2025-10-01" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if strings.HasSuffix(got, "\n") {
		t.Fatal("expected no trailing newline")
	}
}

func TestCSVDoesNotEscapeCommas(t *testing.T) {
	got := string(CSV([]timeoff.Request{{
		EmployeeName:  "Doe, Jane",
		Type:          timeoff.TypePersonal,
		StartDate:     "2025-10-01",
		EndDate:       "2025-10-01",
		Days:          1,
		Status:        timeoff.StatusPending,
		SubmittedDate: "2025-09-30",
	}}))

	// Raw join, no quoting: a comma in a name widens the row.
	if !strings.Contains(got, "Doe, Jane,personal") {
		t.Fatalf("expected unescaped comma in row, got %q", got)
	}
}

func TestCSVEmptyIsHeaderOnly(t *testing.T) {
	if got := string(CSV(nil)); got != CSVHeader {
		t.Fatalf("expected header only, got %q", got)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 10, 15, 23, 30, 0, 0, time.UTC)
	if got := Filename(now); got != "time-off-report-2025-10-15.csv" {
		t.Fatalf("Filename = %q", got)
	}
}
