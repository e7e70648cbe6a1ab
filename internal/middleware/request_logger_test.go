package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

func TestRequestLogger_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	out, level := utils.Logger.Out, utils.Logger.GetLevel()
	utils.Logger.SetOutput(&buf)
	utils.Logger.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		utils.Logger.SetOutput(out)
		utils.Logger.SetLevel(level)
	})

	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/zones/x", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "request rejected")
	assert.Contains(t, buf.String(), "status=404")
	assert.Contains(t, buf.String(), "path=/api/zones/x")
}
