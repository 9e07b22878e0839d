// Package bulletin implements the announcements board. All roles read;
// posting, editing and deleting are admin actions.
package bulletin

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aalopez23/county-hr-dashboard/internal/session"
	"github.com/aalopez23/county-hr-dashboard/internal/store"
)

// Priority is presentational grouping only; it does not affect ordering.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Announcement is a posted notice. Author is the name of whoever posted or
// last edited it; Date is set at creation and preserved across edits.
type Announcement struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	Priority Priority `json:"priority"`
}

func (a Announcement) RecordID() string { return a.ID }

const (
	storageKey = "hr_announcements"
	dateLayout = "2006-01-02"
)

var (
	ErrNotFound  = errors.New("bulletin: announcement not found")
	ErrAdminOnly = errors.New("bulletin: admin-only action")
)

// Input is the authored portion of an announcement.
type Input struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Priority Priority `json:"priority"`
}

// Service owns the announcements collection.
type Service struct {
	col   *store.Collection[Announcement]
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
		newID: func() string {
			return strconv.FormatInt(time.Now().UnixMilli(), 10)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all announcements in stored (insertion) order, not date order.
func (s *Service) List(ctx context.Context) ([]Announcement, error) {
	return s.col.All(ctx)
}

// Post creates a new announcement authored by the actor.
func (s *Service) Post(ctx context.Context, actor session.User, in Input) (Announcement, error) {
	if actor.Role != session.RoleAdmin {
		return Announcement{}, ErrAdminOnly
	}
	ann := Announcement{
		ID:       s.newID(),
		Title:    in.Title,
		Content:  in.Content,
		Author:   actor.Name,
		Date:     s.now().UTC().Format(dateLayout),
		Priority: in.Priority,
	}
	if err := s.col.Save(ctx, ann); err != nil {
		return Announcement{}, err
	}
	return ann, nil
}

// Edit rewrites the authored fields. The author becomes the current editor;
// the original date is preserved.
func (s *Service) Edit(ctx context.Context, actor session.User, id string, in Input) (Announcement, error) {
	if actor.Role != session.RoleAdmin {
		return Announcement{}, ErrAdminOnly
	}
	all, err := s.col.All(ctx)
	if err != nil {
		return Announcement{}, err
	}
	for _, ann := range all {
		if ann.ID != id {
			continue
		}
		ann.Title = in.Title
		ann.Content = in.Content
		ann.Priority = in.Priority
		ann.Author = actor.Name
		if err := s.col.Save(ctx, ann); err != nil {
			return Announcement{}, err
		}
		return ann, nil
	}
	return Announcement{}, ErrNotFound
}

// Delete removes an announcement; absent ids are a no-op, like the store.
func (s *Service) Delete(ctx context.Context, actor session.User, id string) error {
	if actor.Role != session.RoleAdmin {
		return ErrAdminOnly
	}
	return s.col.Delete(ctx, id)
}
