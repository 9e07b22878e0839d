// Package report computes the admin aggregates over the entire requests
// collection and renders the CSV export artifact.
package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/aalopez23/county-hr-dashboard/internal/timeoff"
)

// Summary aggregates status counts, type counts and day sums over all
// requests, plus the most recent activity (newest first).
type Summary struct {
	TotalRequests int                    `json:"totalRequests"`
	StatusCounts  map[timeoff.Status]int `json:"statusCounts"`
	TypeCounts    map[timeoff.Type]int   `json:"typeCounts"`
	TotalDays     int                    `json:"totalDays"`
	ApprovedDays  int                    `json:"approvedDays"`
	Recent        []timeoff.Request      `json:"recentActivity"`
}

const recentLimit = 10

// Build computes the summary over the full collection, unscoped.
func Build(requests []timeoff.Request) Summary {
	s := Summary{
		TotalRequests: len(requests),
		StatusCounts: map[timeoff.Status]int{
			timeoff.StatusPending:  0,
			timeoff.StatusApproved: 0,
			timeoff.StatusDenied:   0,
		},
		TypeCounts: map[timeoff.Type]int{
			timeoff.TypeVacation: 0,
			timeoff.TypeSick:     0,
			timeoff.TypePersonal: 0,
		},
	}
	for _, r := range requests {
		s.StatusCounts[r.Status]++
		s.TypeCounts[r.Type]++
		s.TotalDays += r.Days
		if r.Status == timeoff.StatusApproved {
			s.ApprovedDays += r.Days
		}
	}

	recent := make([]timeoff.Request, 0, recentLimit)
	for i := len(requests) - 1; i >= 0 && len(recent) < recentLimit; i-- {
		recent = append(recent, requests[i])
	}
	s.Recent = recent
	return s
}

// CSVHeader is the fixed first row of the export.
const CSVHeader = "Employee,Type,Start Date,End Date,Days,Status,Submitted"

// CSV renders all requests as the flat delimited export. Rows are joined
// with raw commas; free-text fields are not escaped. The format is pinned to
// what the portal has always produced, delimiter gap included.
func CSV(requests []timeoff.Request) []byte {
	rows := make([]string, 0, len(requests)+1)
	rows = append(rows, CSVHeader)
	for _, r := range requests {
		rows = append(rows, strings.Join([]string{
			r.EmployeeName,
			string(r.Type),
			r.StartDate,
			r.EndDate,
			strconv.Itoa(r.Days),
			string(r.Status),
			r.SubmittedDate,
		}, ","))
	}
	return []byte(strings.Join(rows, "\n"))
}

// Filename returns the date-stamped download name for the export.
func Filename(now time.Time) string {
	return "time-off-report-" + now.UTC().Format("2006-01-02") + ".csv"
}
