package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
)

// Patch is a sparse set of column assignments. Only the columns it names are
// written; a nil value writes NULL.
type Patch struct {
	columns []string
	values  map[string]any
}

func NewPatch() Patch {
	return Patch{values: make(map[string]any)}
}

// Set assigns value to column, replacing an earlier assignment.
func (p *Patch) Set(column string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[column]; !ok {
		p.columns = append(p.columns, column)
	}
	p.values[column] = value
}

func (p Patch) Len() int { return len(p.columns) }

func (p Patch) IsEmpty() bool { return len(p.columns) == 0 }

func (p Patch) Get(column string) (any, bool) {
	v, ok := p.values[column]
	return v, ok
}

// Columns returns the assigned columns in assignment order.
func (p Patch) Columns() []string {
	return append([]string(nil), p.columns...)
}

// Fields is the allow-list of writable columns of one table.
type Fields []string

func (f Fields) canonical(column string) (string, bool) {
	for _, c := range f {
		if c == column {
			return c, true
		}
	}
	return "", false
}

// restrict checks every patched column against the allow-list and returns
// the assignments in allow-list order. Unknown columns are rejected.
func (f Fields) restrict(p Patch) ([]string, []any, error) {
	var unknown []string
	for _, c := range p.columns {
		if _, ok := f.canonical(c); !ok {
			unknown = append(unknown, c)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, nil, db.Invalid(strings.Join(unknown, ", "), "field is not updatable")
	}

	var cols []string
	var vals []any
	for _, c := range f {
		if v, ok := p.values[c]; ok {
			cols = append(cols, c)
			vals = append(vals, v)
		}
	}
	return cols, vals, nil
}

// buildUpdate renders an UPDATE for the patched columns. Column names come
// from the allow-list, never from the patch, and every value is bound
// positionally. The id is the last parameter.
func buildUpdate(table string, fields Fields, touch bool, p Patch, idColumn string, id any) (string, []any, error) {
	cols, vals, err := fields.restrict(p)
	if err != nil {
		return "", nil, err
	}
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("empty patch for %s", table)
	}

	sets := make([]string, 0, len(cols)+1)
	for i, c := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", c, i+1))
	}
	if touch {
		sets = append(sets, "updated_at = NOW()")
	}

	args := append(vals, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d", table, strings.Join(sets, ", "), idColumn, len(args))
	return sql, args, nil
}

// remotePatch renders the body of a remote PATCH request.
func remotePatch(fields Fields, touch bool, p Patch, now string) (map[string]any, error) {
	cols, vals, err := fields.restrict(p)
	if err != nil {
		return nil, err
	}
	body := make(map[string]any, len(cols)+1)
	for i, c := range cols {
		body[c] = vals[i]
	}
	if touch {
		body["updated_at"] = now
	}
	return body, nil
}
