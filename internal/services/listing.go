package services

import (
	"strings"

	"github.com/regdesk/regdesk-backend/internal/data/query"
	"github.com/regdesk/regdesk-backend/internal/pkg/normalize"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListOptions are the caller-facing listing criteria. Search is matched
// case-insensitively across the entity's text fields; Status is an exact
// match ANDed with the search clause.
type ListOptions struct {
	Search string
	Status string
	Page   int
	Limit  int
	Sort   string
	Order  string
}

// normalize clamps paging and resolves the sort column against a whitelist.
// Returns page, limit, skip and the effective sort.
func (o ListOptions) normalize(sortable map[string]bool, defaultSort string) (int, int, int, query.Sort) {
	page := o.Page
	if page < 1 {
		page = 1
	}
	limit := o.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	skip := (page - 1) * limit

	field := normalize.Lower(o.Sort)
	if field == "" || !sortable[field] {
		field = defaultSort
	}
	desc := !strings.EqualFold(o.Order, "asc")

	return page, limit, skip, query.Sort{Field: field, Desc: desc}
}

// spec builds the typed filter once so listings can issue Find and Count
// against the identical criteria.
func (o ListOptions) spec(searchFields []string) query.Spec {
	s := query.Spec{
		Search:       strings.TrimSpace(o.Search),
		SearchFields: searchFields,
	}
	if status := strings.TrimSpace(o.Status); status != "" {
		s.Equals = map[string]any{"status": status}
	}
	return s
}
