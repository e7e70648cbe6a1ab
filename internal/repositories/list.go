package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
)

// listSpec describes how one entity can be searched, filtered and ordered.
// Column names are unqualified; alias qualifies them in SQL.
type listSpec struct {
	alias         string
	searchColumns []string
	filterColumns Fields
	orders        map[Sort][]db.Order
}

func (s listSpec) col(name string) string {
	if s.alias == "" {
		return name
	}
	return s.alias + "." + name
}

func (s listSpec) filterKeys(p ListParams) ([]string, error) {
	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		if _, ok := s.filterColumns.canonical(k); !ok {
			return nil, db.Invalid(k, "unknown filter")
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s listSpec) ordering(sortBy Sort) ([]db.Order, error) {
	o, ok := s.orders[sortBy]
	if !ok {
		return nil, db.Invalid("sort", "unsupported ordering %q", string(sortBy))
	}
	return o, nil
}

// sqlWhere renders the WHERE clause for filters and search, continuing the
// positional numbering after args.
func (s listSpec) sqlWhere(p ListParams, args []any) (string, []any, error) {
	keys, err := s.filterKeys(p)
	if err != nil {
		return "", nil, err
	}

	var conds []string
	for _, k := range keys {
		args = append(args, p.Filters[k])
		conds = append(conds, fmt.Sprintf("%s = $%d", s.col(k), len(args)))
	}

	if term := strings.TrimSpace(p.Search); term != "" && len(s.searchColumns) > 0 {
		args = append(args, "%"+db.EscapeLike(term)+"%")
		ors := make([]string, len(s.searchColumns))
		for i, c := range s.searchColumns {
			ors[i] = fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, s.col(c), len(args))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func (s listSpec) sqlOrder(sortBy Sort) (string, error) {
	orders, err := s.ordering(sortBy)
	if err != nil {
		return "", err
	}
	terms := make([]string, len(orders))
	for i, o := range orders {
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		terms[i] = s.col(o.Column) + " " + dir
	}
	return " ORDER BY " + strings.Join(terms, ", "), nil
}

func sqlPage(p ListParams, args []any) (string, []any) {
	var b strings.Builder
	if p.Limit > 0 {
		args = append(args, p.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if p.Skip > 0 {
		args = append(args, p.Skip)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args
}

// remoteQuery renders the same constraints as PostgREST parameters.
func (s listSpec) remoteQuery(p ListParams) (db.Query, error) {
	keys, err := s.filterKeys(p)
	if err != nil {
		return db.Query{}, err
	}
	orders, err := s.ordering(p.Sort)
	if err != nil {
		return db.Query{}, err
	}

	q := db.Query{
		Search:        p.Search,
		SearchColumns: s.searchColumns,
		Order:         orders,
		Limit:         p.Limit,
		Offset:        p.Skip,
	}
	if len(keys) > 0 {
		q.Eq = make(db.Filters, len(keys))
		for _, k := range keys {
			q.Eq[k] = p.Filters[k]
		}
	}
	return q, nil
}
