package services

import (
	"errors"
	"net/http"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

// storeError maps a repository failure onto the AppError a controller
// answers with. notFoundMsg is used for missing ids, failMsg for anything
// the caller cannot fix.
func storeError(err error, notFoundMsg, failMsg string) error {
	if err == nil {
		return nil
	}

	var (
		cfgErr  *db.ConfigurationError
		connErr *db.ConnectivityError
		valErr  *db.ValidationError
		remErr  *db.RemoteStoreError
	)
	switch {
	case db.IsNotFound(err):
		return &utils.AppError{StatusCode: http.StatusNotFound, Code: utils.ErrCodeNotFound, Message: notFoundMsg, Err: err}
	case errors.As(err, &cfgErr):
		return &utils.AppError{
			StatusCode: http.StatusServiceUnavailable,
			Code:       utils.ErrCodeServiceUnavailable,
			Message:    "Data store is not configured",
			Details:    map[string]any{"backend": cfgErr.Backend, "missing": cfgErr.Missing},
			Err:        err,
		}
	case errors.As(err, &connErr):
		return &utils.AppError{
			StatusCode: http.StatusServiceUnavailable,
			Code:       utils.ErrCodeServiceUnavailable,
			Message:    "Data store is unreachable",
			Details:    map[string]any{"backend": connErr.Backend},
			Err:        err,
		}
	case errors.As(err, &valErr):
		code := utils.ErrCodeValidation
		if valErr.Status == http.StatusConflict {
			code = utils.ErrCodeConflict
		}
		var details any
		if valErr.Field != "" {
			details = map[string]string{"field": valErr.Field}
		}
		return &utils.AppError{StatusCode: valErr.Status, Code: code, Message: valErr.Error(), Details: details, Err: err}
	case errors.As(err, &remErr):
		return &utils.AppError{
			StatusCode: http.StatusBadGateway,
			Code:       utils.ErrCodeRemoteStore,
			Message:    failMsg,
			Details:    map[string]any{"status": remErr.Status},
			Err:        err,
		}
	}
	return &utils.AppError{StatusCode: http.StatusInternalServerError, Code: utils.ErrCodeInternal, Message: failMsg, Err: err}
}
