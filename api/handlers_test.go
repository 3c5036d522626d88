package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goassoc/adapters/heuristic"
	"goassoc/adapters/preprocess"
	"goassoc/domain/core"
	"goassoc/domain/dataset"
	"goassoc/internal/pipeline"
	"goassoc/internal/registry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer() (*Server, *registry.TaskRegistry) {
	reg := registry.New()
	orch := pipeline.New(reg, preprocess.NewImputer(),
		heuristic.NewMajorityClass("logistic regression"),
		heuristic.NewOneRule("decision tree"),
		heuristic.NewJointMajority("random forest"),
		pipeline.Options{})
	run := func(ctx context.Context, id string, ds *dataset.Dataset, selection []string) {
		orch.Run(ctx, core.TaskID(id), ds, selection)
	}
	return NewServer(reg, run), reg
}

func postProcess(t *testing.T, server *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/process", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func submissionBody(rows int) map[string]any {
	data := make([]map[string]any, rows)
	for i := range data {
		data[i] = map[string]any{
			"a_one": []string{"x", "y"}[i%2],
			"b_one": []string{"p", "q", "r"}[i%3],
		}
	}
	return map[string]any{
		"data":             data,
		"selected_columns": []string{"a_one", "b_one"},
	}
}

func TestProcessAndPollToCompletion(t *testing.T) {
	server, _ := newTestServer()

	w := postProcess(t, server, submissionBody(60))
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Status string `json:"status"`
		TaskID string `json:"task_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "processing", created.Status)
	require.NotEmpty(t, created.TaskID)

	var final map[string]any
	require.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, "/progress/"+created.TaskID, nil)
		poll := httptest.NewRecorder()
		server.Router().ServeHTTP(poll, req)
		if poll.Code != http.StatusOK {
			return false
		}
		require.NoError(t, json.Unmarshal(poll.Body.Bytes(), &final))
		return final["status"] == "success"
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, float64(100), final["progress"])
	steps, ok := final["steps_completed"].([]any)
	require.True(t, ok)
	assert.Len(t, steps, len(pipeline.StageSequence))
	assert.Equal(t, float64(0), final["eta"])
	assert.Contains(t, final, "chi_square_results")
	assert.Contains(t, final, "error_logs")

	results, ok := final["chi_square_results"].([]any)
	require.True(t, ok)
	assert.Len(t, results, 1, "two selected columns yield one pair")
}

func TestProcessValidation(t *testing.T) {
	server, _ := newTestServer()

	cases := []struct {
		name string
		body map[string]any
	}{
		{"empty data", map[string]any{"data": []any{}, "selected_columns": []string{"a"}}},
		{"missing columns", map[string]any{"data": []map[string]any{{"a": "x"}}}},
		{"unknown column", map[string]any{
			"data":             []map[string]any{{"a": "x"}},
			"selected_columns": []string{"a", "nope"},
		}},
		{"single column", map[string]any{
			"data":             []map[string]any{{"a": "x"}},
			"selected_columns": []string{"a"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postProcess(t, server, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp["status"])
			assert.NotEmpty(t, resp["message"])
			assert.Equal(t, []any{}, resp["steps_completed"])
		})
	}
}

func TestProgressUnknownTask(t *testing.T) {
	server, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/progress/not-a-task", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "Invalid task ID.", resp["message"])
	// Distinct shape: a not-found response never looks like a live record.
	assert.NotContains(t, resp, "progress")
	assert.NotContains(t, resp, "eta")
}

func TestReportEndpoint(t *testing.T) {
	server, _ := newTestServer()

	w := postProcess(t, server, submissionBody(60))
	require.Equal(t, http.StatusOK, w.Code)
	var created struct {
		TaskID string `json:"task_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	require.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, "/report/"+created.TaskID, nil)
		rep := httptest.NewRecorder()
		server.Router().ServeHTTP(rep, req)
		return rep.Code == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/report/"+created.TaskID, nil)
	rep := httptest.NewRecorder()
	server.Router().ServeHTTP(rep, req)
	assert.Contains(t, rep.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rep.Body.String(), "Association Analysis Report")
}

func TestCORSPreflight(t *testing.T) {
	server, _ := newTestServer()
	req := httptest.NewRequest(http.MethodOptions, "/process", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
