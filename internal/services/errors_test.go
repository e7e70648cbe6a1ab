package services

import (
	"errors"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/db"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

func TestStoreError_Mapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", pkgerrors.Wrap(db.NotFound("zone", "x"), "get"), http.StatusNotFound, utils.ErrCodeNotFound},
		{"unconfigured", &db.ConfigurationError{Backend: "remote", Missing: []string{"SUPABASE_URL"}}, http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable},
		{"unreachable", &db.ConnectivityError{Backend: "postgres", Err: errors.New("dial")}, http.StatusServiceUnavailable, utils.ErrCodeServiceUnavailable},
		{"invalid", db.Invalid("id", "Invalid UUID"), http.StatusBadRequest, utils.ErrCodeValidation},
		{"duplicate", &db.ValidationError{Status: http.StatusConflict, Message: "duplicate"}, http.StatusConflict, utils.ErrCodeConflict},
		{"remote", &db.RemoteStoreError{Status: 401, Body: "jwt"}, http.StatusBadGateway, utils.ErrCodeRemoteStore},
		{"other", errors.New("boom"), http.StatusInternalServerError, utils.ErrCodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := storeError(tc.err, "missing", "failed")

			var appErr *utils.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tc.status, appErr.StatusCode)
			assert.Equal(t, tc.code, appErr.Code)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestStoreError_Nil(t *testing.T) {
	assert.NoError(t, storeError(nil, "missing", "failed"))
}
