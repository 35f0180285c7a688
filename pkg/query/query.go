// Package query builds free-text search, sort and pagination clauses
// shared by the catalog and transaction listing endpoints.
package query

import (
	"regexp"
	"strings"

	"gorm.io/gorm"
)

// DefaultSort orders listings newest-first.
const DefaultSort = "created_at DESC"

var columnPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Params carries the common list-endpoint knobs. Page and Limit are
// both 1-based; the validation layer caps Limit before it gets here.
type Params struct {
	Search string
	Sort   string
	Page   int
	Limit  int
}

// Normalized clamps page/limit to their minimums and applies the
// fallback limit when none was given.
func (p Params) Normalized(defaultLimit int) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	return p
}

// Terms splits a raw search string on whitespace. Every term must
// match at least one searchable field.
func Terms(search string) []string {
	return strings.Fields(strings.TrimSpace(search))
}

// ParseSort turns a "field:direction" directive into an ORDER BY
// clause. Unknown directions default to ASC; directives that do not
// name a plain column fall back to the given default.
func ParseSort(sort, fallback string) string {
	if sort == "" {
		return fallback
	}
	column := sort
	direction := "ASC"
	if idx := strings.IndexByte(sort, ':'); idx >= 0 {
		column = sort[:idx]
		if strings.EqualFold(sort[idx+1:], "desc") {
			direction = "DESC"
		}
	}
	if !columnPattern.MatchString(column) {
		return fallback
	}
	return column + " " + direction
}

// Offset converts 1-based page/limit into a row offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages is the page count needed to show total rows. An empty
// result set has zero pages.
func TotalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}

// SearchScope requires every search term to match at least one of the
// given fields (case-insensitive substring). Terms combine with AND,
// fields within a term with OR.
func SearchScope(search string, fields []string) func(*gorm.DB) *gorm.DB {
	terms := Terms(search)
	return func(db *gorm.DB) *gorm.DB {
		for _, term := range terms {
			clauses := make([]string, 0, len(fields))
			args := make([]interface{}, 0, len(fields))
			for _, field := range fields {
				clauses = append(clauses, field+" ILIKE ?")
				args = append(args, "%"+term+"%")
			}
			db = db.Where(strings.Join(clauses, " OR "), args...)
		}
		return db
	}
}

// SortScope applies a parsed sort directive.
func SortScope(sort string) func(*gorm.DB) *gorm.DB {
	order := ParseSort(sort, DefaultSort)
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

// PaginateScope slices out one page.
func PaginateScope(page, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(Offset(page, limit)).Limit(limit)
	}
}
