// Package fakerest is an in-memory stand-in for a PostgREST table store,
// good enough for exercising the remote repositories end to end.
package fakerest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	APIKey     = "test-apikey"
	pathPrefix = "/rest/v1/"
)

type Row = map[string]any

// Server serves /rest/v1/{table} over in-memory rows.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	tables map[string][]Row
	nextID map[string]int64

	// IntIDTables get sequential integer ids, every other table UUIDs.
	IntIDTables map[string]bool
	// Timestamped tables get created_at and updated_at on insert.
	Timestamped map[string]bool
	// Unique lists per table the columns whose values must not repeat.
	Unique map[string][]string
	// EmptyDelete makes DELETE answer 204 with no body.
	EmptyDelete bool

	hits atomic.Int64
}

// New starts a server preconfigured with the inventory tables.
func New() *Server {
	s := &Server{
		tables:      make(map[string][]Row),
		nextID:      make(map[string]int64),
		IntIDTables: map[string]bool{"users": true, "historial_conversaciones_diarias": true},
		Timestamped: map[string]bool{"zones": true, "projects": true, "units": true},
		Unique:      map[string][]string{"zones": {"name"}},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Hits reports how many requests reached the server.
func (s *Server) Hits() int64 { return s.hits.Load() }

// Seed inserts rows as-is.
func (s *Server) Seed(table string, rows ...Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		s.tables[table] = append(s.tables[table], clone(r))
	}
}

// Rows returns a copy of the table contents.
func (s *Server) Rows(table string) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Row, len(s.tables[table]))
	for i, r := range s.tables[table] {
		out[i] = clone(r)
	}
	return out
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)

	if r.Header.Get("apikey") != APIKey || r.Header.Get("Authorization") == "" {
		writeError(w, http.StatusUnauthorized, "PGRST301", "invalid api key")
		return
	}
	if !strings.HasPrefix(r.URL.Path, pathPrefix) {
		http.NotFound(w, r)
		return
	}
	table := strings.TrimPrefix(r.URL.Path, pathPrefix)
	if table == "" {
		writeJSON(w, http.StatusOK, map[string]any{"swagger": "2.0"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		s.doSelect(w, r, table)
	case http.MethodPost:
		s.doInsert(w, r, table)
	case http.MethodPatch:
		s.doUpdate(w, r, table)
	case http.MethodDelete:
		s.doDelete(w, r, table)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) doSelect(w http.ResponseWriter, r *http.Request, table string) {
	q := r.URL.Query()
	matched, err := s.filter(table, q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "PGRST100", err.Error())
		return
	}
	if order := q.Get("order"); order != "" {
		sortRows(matched, order)
	}

	total := len(matched)
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset > len(matched) {
		offset = len(matched)
	}
	matched = matched[offset:]
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit < len(matched) {
		matched = matched[:limit]
	}

	if strings.Contains(r.Header.Get("Prefer"), "count=exact") {
		if len(matched) == 0 {
			w.Header().Set("Content-Range", fmt.Sprintf("*/%d", total))
		} else {
			w.Header().Set("Content-Range", fmt.Sprintf("%d-%d/%d", offset, offset+len(matched)-1, total))
		}
	}

	out := make([]Row, len(matched))
	for i, row := range matched {
		out[i] = project(row, q.Get("select"))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) doInsert(w http.ResponseWriter, r *http.Request, table string) {
	var rec Row
	if err := decodeBody(r.Body, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "PGRST102", err.Error())
		return
	}
	if err := s.checkUnique(table, rec, nil); err != nil {
		writeError(w, http.StatusConflict, "23505", err.Error())
		return
	}

	if s.IntIDTables[table] {
		s.nextID[table]++
		rec["id"] = float64(s.nextID[table])
	} else if _, ok := rec["id"]; !ok {
		rec["id"] = uuid.NewString()
	}
	if s.Timestamped[table] {
		now := time.Now().UTC().Format(time.RFC3339Nano)
		if _, ok := rec["created_at"]; !ok {
			rec["created_at"] = now
		}
		if _, ok := rec["updated_at"]; !ok {
			rec["updated_at"] = now
		}
	}
	s.tables[table] = append(s.tables[table], rec)
	writeJSON(w, http.StatusCreated, []Row{clone(rec)})
}

func (s *Server) doUpdate(w http.ResponseWriter, r *http.Request, table string) {
	var patch Row
	if err := decodeBody(r.Body, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "PGRST102", err.Error())
		return
	}
	matched, err := s.filter(table, r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "PGRST100", err.Error())
		return
	}
	for _, row := range matched {
		if err := s.checkUnique(table, patch, row); err != nil {
			writeError(w, http.StatusConflict, "23505", err.Error())
			return
		}
	}
	out := make([]Row, 0, len(matched))
	for _, row := range matched {
		for k, v := range patch {
			row[k] = v
		}
		out = append(out, clone(row))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) doDelete(w http.ResponseWriter, r *http.Request, table string) {
	matched, err := s.filter(table, r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "PGRST100", err.Error())
		return
	}
	out := make([]Row, 0, len(matched))
	for i := range matched {
		out = append(out, clone(matched[i]))
	}
	kept := s.tables[table][:0]
	for i := range s.tables[table] {
		row := s.tables[table][i]
		if containsRow(matched, row) {
			continue
		}
		kept = append(kept, row)
	}
	s.tables[table] = kept

	if s.EmptyDelete {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// filter returns the live rows of table matching every eq/in/or parameter.
func (s *Server) filter(table string, q map[string][]string) ([]Row, error) {
	var out []Row
	for _, row := range s.tables[table] {
		ok, err := matches(row, q)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *Server) checkUnique(table string, rec Row, self Row) error {
	for _, col := range s.Unique[table] {
		v, ok := rec[col]
		if !ok {
			continue
		}
		for _, row := range s.tables[table] {
			if self != nil && sameRow(row, self) {
				continue
			}
			if fmt.Sprint(row[col]) == fmt.Sprint(v) {
				return fmt.Errorf("duplicate key value violates unique constraint on %s", col)
			}
		}
	}
	return nil
}

var reserved = map[string]bool{"select": true, "order": true, "limit": true, "offset": true, "or": true}

func matches(row Row, q map[string][]string) (bool, error) {
	for key, vals := range q {
		if reserved[key] {
			continue
		}
		for _, v := range vals {
			ok, err := matchOp(row[key], v)
			if err != nil || !ok {
				return false, err
			}
		}
	}
	if or, ok := q["or"]; ok && len(or) > 0 {
		return matchOr(row, or[0])
	}
	return true, nil
}

func matchOp(val any, expr string) (bool, error) {
	switch {
	case strings.HasPrefix(expr, "eq."):
		return val != nil && fmt.Sprint(val) == strings.TrimPrefix(expr, "eq."), nil
	case strings.HasPrefix(expr, "in.("):
		list := strings.TrimSuffix(strings.TrimPrefix(expr, "in.("), ")")
		for _, item := range splitTop(list) {
			if val != nil && fmt.Sprint(val) == unquote(item) {
				return true, nil
			}
		}
		return false, nil
	case strings.HasPrefix(expr, "ilike."):
		return ilike(val, unquote(strings.TrimPrefix(expr, "ilike."))), nil
	}
	return false, fmt.Errorf("unsupported filter %q", expr)
}

func matchOr(row Row, expr string) (bool, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(expr, "("), ")")
	for _, term := range splitTop(inner) {
		col, op, found := strings.Cut(term, ".")
		if !found {
			return false, fmt.Errorf("malformed or term %q", term)
		}
		ok, err := matchOp(row[col], op)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func ilike(val any, pattern string) bool {
	if val == nil {
		return false
	}
	s := strings.ToLower(fmt.Sprint(val))
	p := strings.ToLower(pattern)
	prefix := strings.HasPrefix(p, "*")
	suffix := strings.HasSuffix(p, "*")
	p = strings.Trim(p, "*")
	p = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`).Replace(p)
	switch {
	case prefix && suffix:
		return strings.Contains(s, p)
	case prefix:
		return strings.HasSuffix(s, p)
	case suffix:
		return strings.HasPrefix(s, p)
	}
	return s == p
}

// splitTop splits on commas outside double quotes.
func splitTop(s string) []string {
	var out []string
	var cur strings.Builder
	inQuotes, escaped := false, false
	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
			continue
		case r == '\\':
			cur.WriteRune(r)
			escaped = true
			continue
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			out = append(out, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
		s = strings.NewReplacer(`\"`, `"`, `\\`, `\`).Replace(s)
	}
	return s
}

func sortRows(rows []Row, order string) {
	terms := strings.Split(order, ",")
	sort.SliceStable(rows, func(i, j int) bool {
		for _, term := range terms {
			col, dir, _ := strings.Cut(term, ".")
			c := compare(rows[i][col], rows[j][col])
			if c == 0 {
				continue
			}
			if dir == "desc" {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// compare orders nil after every value, numbers numerically and everything
// else by its string form.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func project(row Row, sel string) Row {
	if sel == "" || sel == "*" {
		return clone(row)
	}
	out := make(Row)
	for _, col := range strings.Split(sel, ",") {
		out[col] = row[col]
	}
	return out
}

func clone(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func sameRow(a, b Row) bool {
	return fmt.Sprint(a["id"]) == fmt.Sprint(b["id"])
}

func containsRow(rows []Row, row Row) bool {
	for _, r := range rows {
		if sameRow(r, row) {
			return true
		}
	}
	return false
}

func decodeBody(body io.Reader, out *Row) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"code": code, "message": msg})
}
