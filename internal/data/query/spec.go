package query

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Spec is a typed filter a repository compiles into the store's query
// language. Free-text search is an OR of case-insensitive substring matches
// across SearchFields; Equals are exact matches ANDed with the search clause.
type Spec struct {
	Search       string
	SearchFields []string
	Equals       map[string]any
	Since        *time.Time
	Until        *time.Time
	SinceField   string
}

// Sort orders a listing by one whitelisted column.
type Sort struct {
	Field string
	Desc  bool
}

func (s Sort) OrderClause() string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", s.Field, dir)
}

// Apply compiles the spec onto tx. The same spec must be applied for a
// listing's Find and Count so total and items always agree.
func (s Spec) Apply(tx *gorm.DB) *gorm.DB {
	if term := strings.TrimSpace(s.Search); term != "" && len(s.SearchFields) > 0 {
		pattern := "%" + term + "%"
		clauses := make([]string, 0, len(s.SearchFields))
		args := make([]any, 0, len(s.SearchFields))
		for _, field := range s.SearchFields {
			clauses = append(clauses, field+" ILIKE ?")
			args = append(args, pattern)
		}
		tx = tx.Where(strings.Join(clauses, " OR "), args...)
	}
	for field, value := range s.Equals {
		tx = tx.Where(field+" = ?", value)
	}
	if s.Since != nil && s.SinceField != "" {
		tx = tx.Where(s.SinceField+" >= ?", *s.Since)
	}
	if s.Until != nil && s.SinceField != "" {
		tx = tx.Where(s.SinceField+" < ?", *s.Until)
	}
	return tx
}

// IsZero reports whether the spec filters nothing.
func (s Spec) IsZero() bool {
	return strings.TrimSpace(s.Search) == "" && len(s.Equals) == 0 && s.Since == nil && s.Until == nil
}
