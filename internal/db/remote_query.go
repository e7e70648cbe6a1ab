package db

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Filters maps a column to the value it must equal.
type Filters map[string]string

// Order is one term of a result ordering.
type Order struct {
	Column string
	Desc   bool
}

// Query describes a read against a remote table, encoded as PostgREST
// query parameters.
type Query struct {
	Select        string
	Eq            Filters
	In            map[string][]string
	Search        string
	SearchColumns []string
	Order         []Order
	Limit         int
	Offset        int
}

// Values encodes the query. Keys are emitted in sorted order so the
// resulting URL is deterministic.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Select != "" {
		v.Set("select", q.Select)
	}
	q.Eq.apply(v)

	inCols := make([]string, 0, len(q.In))
	for col := range q.In {
		inCols = append(inCols, col)
	}
	sort.Strings(inCols)
	for _, col := range inCols {
		quoted := make([]string, len(q.In[col]))
		for i, val := range q.In[col] {
			quoted[i] = quoteValue(val)
		}
		v.Add(col, "in.("+strings.Join(quoted, ",")+")")
	}

	if term := strings.TrimSpace(q.Search); term != "" && len(q.SearchColumns) > 0 {
		parts := make([]string, len(q.SearchColumns))
		for i, col := range q.SearchColumns {
			parts[i] = col + ".ilike." + quoteValue("*"+EscapeLike(term)+"*")
		}
		v.Set("or", "("+strings.Join(parts, ",")+")")
	}

	if len(q.Order) > 0 {
		terms := make([]string, len(q.Order))
		for i, o := range q.Order {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			terms[i] = o.Column + "." + dir
		}
		v.Set("order", strings.Join(terms, ","))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// apply emits eq filters. PostgREST reads a top-level operand as the raw
// rest of the parameter, so unlike in and or lists it is not quoted.
func (f Filters) apply(v url.Values) {
	cols := make([]string, 0, len(f))
	for col := range f {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		v.Add(col, "eq."+f[col])
	}
}

// quoteValue wraps a value in double quotes so PostgREST reserved
// characters (comma, parentheses) inside it are taken literally.
func quoteValue(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes LIKE wildcards in s match literally under the default
// backslash escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}
