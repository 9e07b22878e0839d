package httpapi

import (
	"math"
	"net/http"

	"github.com/aalopez23/county-hr-dashboard/internal/bulletin"
	"github.com/aalopez23/county-hr-dashboard/internal/session"
	"github.com/aalopez23/county-hr-dashboard/internal/timeoff"
)

type holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

var upcomingHolidays = []holiday{
	{Date: "Nov 27-28", Name: "Thanksgiving"},
	{Date: "Dec 25-26", Name: "Christmas"},
	{Date: "Jan 1", Name: "New Year"},
}

type dashboardResponse struct {
	User             session.User            `json:"user"`
	PTOBalanceHours  float64                 `json:"ptoBalanceHours"`
	PTOBalanceDays   int                     `json:"ptoBalanceDays"`
	PendingRequests  []timeoff.Request       `json:"pendingRequests"`
	RecentBulletins  []bulletin.Announcement `json:"recentAnnouncements"`
	TotalEmployees   int                     `json:"totalEmployees"`
	UpcomingHolidays []holiday               `json:"upcomingHolidays"`
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	actor, ok := a.actor(r)
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "session expired")
		return
	}

	pending, err := a.requests.List(r.Context(), actor, string(timeoff.StatusPending))
	if err != nil {
		a.handleStorageError(w, r, err)
		return
	}
	announcements, err := a.bulletins.List(r.Context())
	if err != nil {
		a.handleStorageError(w, r, err)
		return
	}
	employees, err := a.directory.All(r.Context())
	if err != nil {
		a.handleStorageError(w, r, err)
		return
	}

	// First three in storage order, not date-sorted.
	if len(announcements) > 3 {
		announcements = announcements[:3]
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		User:             actor,
		PTOBalanceHours:  actor.PTOBalance,
		PTOBalanceDays:   int(math.Floor(actor.PTOBalance / 8)),
		PendingRequests:  pending,
		RecentBulletins:  announcements,
		TotalEmployees:   len(employees),
		UpcomingHolidays: upcomingHolidays,
	})
}
