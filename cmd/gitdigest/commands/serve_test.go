package commands

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digestkit/gitdigest/internal/commit"
	"github.com/digestkit/gitdigest/internal/report"
)

func TestReportHandler(t *testing.T) {
	var gotReq report.Request
	handler := reportHandler(func(ctx context.Context, req report.Request) report.Result {
		gotReq = req
		return report.Result{Success: true, Message: "ok"}
	})

	body := `{"date": "2024-01-01", "repos": ["/src/a"], "repoPath": "/src/b, /src/c", "author": "devone"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res report.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.True(t, res.Success)
	assert.Equal(t, "ok", res.Message)

	assert.Equal(t, commit.Day("2024-01-01"), gotReq.Window)
	assert.Equal(t, []string{"/src/a", "/src/b", "/src/c"}, gotReq.Sources)
	assert.Equal(t, "devone", gotReq.Author)
}

func TestReportHandlerRange(t *testing.T) {
	handler := reportHandler(func(ctx context.Context, req report.Request) report.Result {
		assert.Equal(t, commit.Window{Start: "2024-01-01", End: "2024-01-05"}, req.Window)
		return report.Result{Success: true}
	})

	body := `{"startDate": "2024-01-01", "endDate": "2024-01-05"}`
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
}

// Pipeline failures travel inside the result object, not as HTTP
// error codes.
func TestReportHandlerPipelineFailure(t *testing.T) {
	handler := reportHandler(func(ctx context.Context, req report.Request) report.Result {
		return report.Result{Success: false, Message: "Failed to generate report: boom"}
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(`{}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	var res report.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.False(t, res.Success)
}

func TestReportHandlerRejectsWrongMethod(t *testing.T) {
	handler := reportHandler(func(ctx context.Context, req report.Request) report.Result {
		t.Fatal("generator must not run")
		return report.Result{}
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestReportHandlerRejectsBadJSON(t *testing.T) {
	handler := reportHandler(func(ctx context.Context, req report.Request) report.Result {
		t.Fatal("generator must not run")
		return report.Result{}
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader("{nope")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
