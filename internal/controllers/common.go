package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

// decodeAndValidate reads the JSON body into req and runs the struct tags.
// It answers the request itself and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validate, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return false
	}
	if err := v.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", dtos.ValidationDetails(err), err)
		return false
	}
	return true
}

// queryInt reads a non-negative integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Query parameter " + name + " must be a non-negative integer",
			Details:    map[string]string{"field": name},
			Err:        err,
		}
	}
	return n, nil
}

// listParams parses skip, limit, search and sort plus the given equality
// filter names from the query string.
func listParams(r *http.Request, filterNames ...string) (repositories.ListParams, error) {
	var p repositories.ListParams
	var err error

	if p.Skip, err = queryInt(r, "skip", 0); err != nil {
		return p, err
	}
	if p.Limit, err = queryInt(r, "limit", utils.DefaultPageLimit); err != nil {
		return p, err
	}
	if p.Limit == 0 || p.Limit > utils.MaxPageLimit {
		return p, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Query parameter limit must be between 1 and " + strconv.Itoa(utils.MaxPageLimit),
			Details:    map[string]string{"field": "limit"},
		}
	}

	q := r.URL.Query()
	p.Search = strings.TrimSpace(q.Get("search"))
	p.Sort = repositories.Sort(q.Get("sort"))
	for _, name := range filterNames {
		if v := q.Get(name); v != "" {
			if p.Filters == nil {
				p.Filters = map[string]string{}
			}
			p.Filters[name] = v
		}
	}
	return p, nil
}
