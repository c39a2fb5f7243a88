package repository

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 100
)

// reserved query parameters never treated as filter predicates.
var reservedParams = map[string]struct{}{
	"page":   {},
	"sort":   {},
	"limit":  {},
	"fields": {},
}

// comparison operator suffixes, e.g. price[gte]=100.
var comparisonOps = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

type condition struct {
	column string
	op     string
	value  string
}

// QueryFeatures translates generic list-query parameters into a filtered,
// sorted, projected, and paginated SQL query. Stages are chainable and may be
// invoked in any order; nothing touches the database until Build. Columns not
// in the whitelist are ignored.
type QueryFeatures struct {
	table    string
	columns  []string
	allowed  map[string]struct{}
	conds    []condition
	orderBy  []string
	selected []string
	page     int
	limit    int
}

// NewQueryFeatures creates a builder for the given table and column whitelist.
func NewQueryFeatures(table string, columns ...string) *QueryFeatures {
	allowed := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		allowed[col] = struct{}{}
	}
	return &QueryFeatures{
		table:   table,
		columns: columns,
		allowed: allowed,
		page:    defaultPage,
		limit:   defaultLimit,
	}
}

// Filter records equality and comparison predicates from non-reserved
// parameters. Keys are processed in sorted order so the generated SQL is
// deterministic regardless of map iteration.
func (f *QueryFeatures) Filter(params url.Values) *QueryFeatures {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, reserved := reservedParams[key]; reserved {
			continue
		}
		column, op := parseFilterKey(key)
		if _, ok := f.allowed[column]; !ok {
			continue
		}
		for _, value := range params[key] {
			f.conds = append(f.conds, condition{column: column, op: op, value: value})
		}
	}
	return f
}

// Sort records the ordering from a comma-separated field list; a leading "-"
// means descending.
func (f *QueryFeatures) Sort(params url.Values) *QueryFeatures {
	spec := params.Get("sort")
	if spec == "" {
		return f
	}
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			direction = "DESC"
		}
		if _, ok := f.allowed[field]; !ok {
			continue
		}
		f.orderBy = append(f.orderBy, field+" "+direction)
	}
	return f
}

// LimitFields records the response projection from the fields parameter. The
// id column is always retained.
func (f *QueryFeatures) LimitFields(params url.Values) *QueryFeatures {
	spec := params.Get("fields")
	if spec == "" {
		return f
	}
	selected := []string{"id"}
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		if field == "id" {
			continue
		}
		if _, ok := f.allowed[field]; !ok {
			continue
		}
		selected = append(selected, field)
	}
	f.selected = selected
	return f
}

// Paginate records page and limit, defaulting to page 1 and limit 100.
func (f *QueryFeatures) Paginate(params url.Values) *QueryFeatures {
	if page, err := strconv.Atoi(params.Get("page")); err == nil && page > 0 {
		f.page = page
	}
	if limit, err := strconv.Atoi(params.Get("limit")); err == nil && limit > 0 {
		f.limit = limit
	}
	return f
}

// Apply runs every stage against the same parameter set.
func (f *QueryFeatures) Apply(params url.Values) *QueryFeatures {
	return f.Filter(params).Sort(params).LimitFields(params).Paginate(params)
}

// SelectedFields returns the projection recorded by LimitFields, or nil when
// all fields are requested. The query itself always fetches the whitelisted
// columns; callers prune the response.
func (f *QueryFeatures) SelectedFields() []string {
	return f.selected
}

// Build materializes the SQL statement and its positional arguments. The
// stages are assembled in fixed order, so invocation order never changes the
// resulting query.
func (f *QueryFeatures) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(f.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(f.table)

	args := make([]any, 0, len(f.conds))
	if len(f.conds) > 0 {
		clauses := make([]string, 0, len(f.conds))
		for _, cond := range f.conds {
			args = append(args, cond.value)
			clauses = append(clauses, fmt.Sprintf("%s %s $%d", cond.column, cond.op, len(args)))
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(clauses, " AND "))
	}

	sb.WriteString(" ORDER BY ")
	if len(f.orderBy) > 0 {
		sb.WriteString(strings.Join(f.orderBy, ", "))
	} else {
		sb.WriteString("created_at DESC")
	}

	offset := (f.page - 1) * f.limit
	sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", f.limit, offset))

	return sb.String(), args
}

func parseFilterKey(key string) (column, op string) {
	open := strings.Index(key, "[")
	if open > 0 && strings.HasSuffix(key, "]") {
		if sqlOp, ok := comparisonOps[key[open+1:len(key)-1]]; ok {
			return key[:open], sqlOp
		}
	}
	return key, "="
}
