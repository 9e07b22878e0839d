// Package directory serves the read-only employee roster: fixture-seeded,
// searchable, sortable. No portal surface mutates it.
package directory

import (
	"context"
	"sort"
	"strings"

	"github.com/aalopez23/county-hr-dashboard/internal/store"
)

// Employee is one roster record.
type Employee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Title      string `json:"title"`
	Manager    string `json:"manager"`
	Phone      string `json:"phone"`
	HireDate   string `json:"hireDate"`
}

func (e Employee) RecordID() string { return e.ID }

const storageKey = "hr_employees"

// Sortable columns; anything else falls back to name.
const (
	SortName       = "name"
	SortTitle      = "title"
	SortDepartment = "department"
	SortManager    = "manager"
)

// Service owns the employees collection. The collection exposes reads only.
type Service struct {
	col *store.Collection[Employee]
}

// NewService binds the service to the given store.
func NewService(kv store.KV) *Service {
	return &Service{col: store.NewCollection(kv, storageKey, Fixtures())}
}

// All returns the roster in stored order.
func (s *Service) All(ctx context.Context) ([]Employee, error) {
	return s.col.All(ctx)
}

// Search filters by case-insensitive substring match across every field of
// each record, then sorts by the given column. Descending order is the exact
// reversal of the ascending order, so toggling a column twice round-trips.
func (s *Service) Search(ctx context.Context, query, sortField, dir string) ([]Employee, error) {
	all, err := s.col.All(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	matched := make([]Employee, 0, len(all))
	for _, emp := range all {
		if query == "" || matchesQuery(emp, query) {
			matched = append(matched, emp)
		}
	}

	key := sortKey(sortField)
	sort.SliceStable(matched, func(i, j int) bool {
		return key(matched[i]) < key(matched[j])
	})
	if dir == "desc" {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	return matched, nil
}

func matchesQuery(emp Employee, query string) bool {
	for _, value := range []string{
		emp.ID, emp.Name, emp.Email, emp.Department,
		emp.Title, emp.Manager, emp.Phone, emp.HireDate,
	} {
		if strings.Contains(strings.ToLower(value), query) {
			return true
		}
	}
	return false
}

func sortKey(field string) func(Employee) string {
	switch field {
	case SortTitle:
		return func(e Employee) string { return e.Title }
	case SortDepartment:
		return func(e Employee) string { return e.Department }
	case SortManager:
		return func(e Employee) string { return e.Manager }
	default:
		return func(e Employee) string { return e.Name }
	}
}
