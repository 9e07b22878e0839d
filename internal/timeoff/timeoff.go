// Package timeoff implements the leave-request domain: submission, edits,
// the one-way review transitions, and role-scoped visibility.
package timeoff

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/aalopez23/county-hr-dashboard/internal/session"
	"github.com/aalopez23/county-hr-dashboard/internal/store"
)

// Type is the leave category.
type Type string

const (
	TypeVacation Type = "vacation"
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
)

// Status is the review state. Transitions are pending -> approved or
// pending -> denied, both admin-only and one-way.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusDenied   Status = "denied"
)

// Request is one leave request. EmployeeName is a point-in-time snapshot
// taken at submit/edit time and is never re-synced from the directory.
type Request struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
	Type          Type   `json:"type"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Days          int    `json:"days"`
	Reason        string `json:"reason"`
	Status        Status `json:"status"`
	SubmittedDate string `json:"submittedDate"`
	ReviewedBy    string `json:"reviewedBy,omitempty"`
	ReviewedDate  string `json:"reviewedDate,omitempty"`
}

func (r Request) RecordID() string { return r.ID }

const (
	storageKey = "hr_requests"
	dateLayout = "2006-01-02"
)

var (
	ErrNotFound   = errors.New("timeoff: request not found")
	ErrNotOwner   = errors.New("timeoff: not the requesting employee")
	ErrNotPending = errors.New("timeoff: request is no longer pending")
	ErrAdminOnly  = errors.New("timeoff: admin-only action")
)

// Days returns the inclusive calendar day count between two dates
// (start == end is one day). End before start yields zero or a negative
// count; unparseable dates yield zero. Neither is rejected — requests are
// stored as submitted.
func Days(startDate, endDate string) int {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return 0
	}
	return int(math.Ceil(end.Sub(start).Hours()/24)) + 1
}

// Input is the employee-supplied portion of a request.
type Input struct {
	Type      Type   `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

// Service owns the requests collection.
type Service struct {
	col   *store.Collection[Request]
	now   func() time.Time
	newID func() string
}

// Option configures Service behavior.
type Option func(*Service)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithIDFunc overrides record id generation (useful for tests).
func WithIDFunc(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewService binds the service to the given store.
func NewService(kv store.KV, opts ...Option) *Service {
	s := &Service{
		col: store.NewCollection(kv, storageKey, Fixtures()),
		now: time.Now,
		// Millisecond timestamps as decimal strings, matching the ids the
		// store has always held. Not collision-proof under rapid submission;
		// accepted weakness.
		newID: func() string {
			return strconv.FormatInt(time.Now().UnixMilli(), 10)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the requests visible to the actor, in stored order. Employees
// only ever see their own requests regardless of filter; admins see all
// matching. Filter values are "all" (or empty) and the three status names.
func (s *Service) List(ctx context.Context, actor session.User, filter string) ([]Request, error) {
	all, err := s.col.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Request, 0, len(all))
	for _, r := range all {
		if actor.Role != session.RoleAdmin && r.EmployeeID != actor.ID {
			continue
		}
		if filter != "" && filter != "all" && string(r.Status) != filter {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Submit creates a pending request owned by the actor.
func (s *Service) Submit(ctx context.Context, actor session.User, in Input) (Request, error) {
	req := Request{
		ID:            s.newID(),
		EmployeeID:    actor.ID,
		EmployeeName:  actor.Name,
		Type:          in.Type,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Days:          Days(in.StartDate, in.EndDate),
		Reason:        in.Reason,
		Status:        StatusPending,
		SubmittedDate: s.today(),
	}
	if err := s.col.Save(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Edit rewrites the employee-supplied fields of the actor's own pending
// request, recomputing the day count and re-snapshotting the employee name.
// Status, submitted date and review fields are preserved.
func (s *Service) Edit(ctx context.Context, actor session.User, id string, in Input) (Request, error) {
	req, err := s.find(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if req.EmployeeID != actor.ID {
		return Request{}, ErrNotOwner
	}
	if req.Status != StatusPending {
		return Request{}, ErrNotPending
	}
	req.EmployeeName = actor.Name
	req.Type = in.Type
	req.StartDate = in.StartDate
	req.EndDate = in.EndDate
	req.Days = Days(in.StartDate, in.EndDate)
	req.Reason = in.Reason
	if err := s.col.Save(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Approve transitions a pending request to approved, stamping the reviewer.
func (s *Service) Approve(ctx context.Context, actor session.User, id string) (Request, error) {
	return s.review(ctx, actor, id, StatusApproved)
}

// Deny transitions a pending request to denied, stamping the reviewer.
func (s *Service) Deny(ctx context.Context, actor session.User, id string) (Request, error) {
	return s.review(ctx, actor, id, StatusDenied)
}

func (s *Service) review(ctx context.Context, actor session.User, id string, to Status) (Request, error) {
	if actor.Role != session.RoleAdmin {
		return Request{}, ErrAdminOnly
	}
	req, err := s.find(ctx, id)
	if err != nil {
		return Request{}, err
	}
	if req.Status != StatusPending {
		return Request{}, ErrNotPending
	}
	req.Status = to
	req.ReviewedBy = actor.Name
	req.ReviewedDate = s.today()
	if err := s.col.Save(ctx, req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Delete removes the actor's own pending request.
func (s *Service) Delete(ctx context.Context, actor session.User, id string) error {
	req, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if req.EmployeeID != actor.ID {
		return ErrNotOwner
	}
	if req.Status != StatusPending {
		return ErrNotPending
	}
	return s.col.Delete(ctx, id)
}

func (s *Service) find(ctx context.Context, id string) (Request, error) {
	all, err := s.col.All(ctx)
	if err != nil {
		return Request{}, err
	}
	for _, r := range all {
		if r.ID == id {
			return r, nil
		}
	}
	return Request{}, ErrNotFound
}

func (s *Service) today() string {
	return s.now().UTC().Format(dateLayout)
}
