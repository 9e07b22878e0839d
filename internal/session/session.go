// Package session owns the single persisted identity of the portal. Login is
// a role picker, not authentication: each role maps to one canned identity.
// The provider is constructed explicitly and handed to the HTTP layer, and
// every mutation writes the full identity snapshot through immediately.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aalopez23/county-hr-dashboard/internal/store"
)

// Role gates which routes and mutations the actor may use.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

var (
	ErrUnknownRole = errors.New("session: unknown role")
	ErrNoSession   = errors.New("session: not logged in")
)

// User is the logged-in actor. PTOBalance is hours.
type User struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	Department string  `json:"department"`
	Title      string  `json:"title"`
	Manager    string  `json:"manager"`
	PTOBalance float64 `json:"ptoBalance"`
}

// Update is a shallow merge: nil fields are left untouched. Values are not
// validated; a negative PTO balance is stored as-is.
type Update struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	Title      *string  `json:"title"`
	Department *string  `json:"department"`
	Manager    *string  `json:"manager"`
	PTOBalance *float64 `json:"ptoBalance"`
}

const storageKey = "hr_portal_user"

func cannedIdentity(role Role) (User, bool) {
	switch role {
	case RoleAdmin:
		return User{
			ID:         "admin-1",
			Name:       "HR Admin",
			Email:      "admin@lacounty.gov",
			Role:       RoleAdmin,
			Department: "Human Resources",
			Title:      "HR Director",
			Manager:    "Chief Executive Officer",
			PTOBalance: 0,
		}, true
	case RoleEmployee:
		return User{
			ID:         "emp-1",
			Name:       "John Martinez",
			Email:      "john.martinez@lacounty.gov",
			Role:       RoleEmployee,
			Department: "Public Works",
			Title:      "Senior Engineer",
			Manager:    "Sarah Chen",
			PTOBalance: 120,
		}, true
	default:
		return User{}, false
	}
}

// Provider holds the current session, persisted under its own storage key so
// it survives restarts until logout.
type Provider struct {
	kv store.KV
	mu sync.Mutex
}

// NewProvider binds the provider to the given store.
func NewProvider(kv store.KV) *Provider {
	return &Provider{kv: kv}
}

// Login replaces the current session with the canned identity for the role.
// It always succeeds for a known role; there is no credential check.
func (p *Provider) Login(ctx context.Context, role Role) (User, error) {
	user, ok := cannedIdentity(role)
	if !ok {
		return User{}, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.persist(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Current returns the persisted session, or ok=false when logged out.
func (p *Provider) Current(ctx context.Context) (User, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.load(ctx)
}

// Update shallow-merges the given fields into the current session and
// persists the result. Returns ErrNoSession when logged out.
func (p *Provider) Update(ctx context.Context, upd Update) (User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	user, ok, err := p.load(ctx)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrNoSession
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Title != nil {
		user.Title = *upd.Title
	}
	if upd.Department != nil {
		user.Department = *upd.Department
	}
	if upd.Manager != nil {
		user.Manager = *upd.Manager
	}
	if upd.PTOBalance != nil {
		user.PTOBalance = *upd.PTOBalance
	}
	if err := p.persist(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Logout clears the persisted identity.
func (p *Provider) Logout(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kv.Delete(ctx, storageKey)
}

func (p *Provider) load(ctx context.Context) (User, bool, error) {
	raw, ok, err := p.kv.Get(ctx, storageKey)
	if err != nil {
		return User{}, false, err
	}
	if !ok {
		return User{}, false, nil
	}
	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return User{}, false, fmt.Errorf("%w: %s: %v", store.ErrCorrupt, storageKey, err)
	}
	return user, true, nil
}

func (p *Provider) persist(ctx context.Context, user User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return p.kv.Put(ctx, storageKey, data)
}
