package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fogsim/fog-offload-sim/sim"
	"github.com/fogsim/fog-offload-sim/sim/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *store.Repository) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := store.NewRepository(db)

	rr := &sim.Report{RunID: "rr-1", Policy: sim.PlacementRoundRobin, Nodes: []sim.NodeReport{
		{Node: 1, Name: "fog-1", NodeStats: sim.NodeStats{Utilization: 0.8, TuplesProcessed: 10}},
		{Node: 2, Name: "fog-2", NodeStats: sim.NodeStats{Utilization: 0.8, TuplesProcessed: 10}},
	}}
	greedy := &sim.Report{RunID: "gq-1", Policy: sim.PlacementGreedyQ, Nodes: []sim.NodeReport{
		{Node: 1, Name: "fog-1", NodeStats: sim.NodeStats{Utilization: 1, TuplesProcessed: 12}},
		{Node: 2, Name: "fog-2"},
	}}
	require.NoError(t, repo.SaveReport(rr, 42, nil))
	require.NoError(t, repo.SaveReport(greedy, 42, map[sim.NodeID]float64{1: -0.3, 2: -0.5}))
	return New(repo, []string{"http://localhost:3000"}), repo
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServer_Health(t *testing.T) {
	s, _ := newTestServer(t)
	w := get(t, s, "/api/v1/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestServer_ListRuns_FilterByPolicy(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/api/v1/runs?policy=greedy-q")
	require.Equal(t, http.StatusOK, w.Code)

	var runs []store.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "gq-1", runs[0].ID)
}

func TestServer_GetRun_IncludesNodesAndQValues(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/api/v1/runs/gq-1")
	require.Equal(t, http.StatusOK, w.Code)

	var run store.Run
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &run))
	assert.Len(t, run.Nodes, 2)
	assert.Len(t, run.QValues, 2)
	assert.Equal(t, 12, run.Nodes[0].TuplesProcessed)
}

func TestServer_Summary(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/api/v1/runs/rr-1/summary")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 0.8, body["mean_utilization"], 1e-12)
	assert.InDelta(t, 0, body["stddev_utilization"], 1e-12)
	assert.Equal(t, float64(20), body["total_tuples_processed"])
}

func TestServer_UnknownRun_NotFound(t *testing.T) {
	s, _ := newTestServer(t)
	for _, path := range []string{"/api/v1/runs/nope", "/api/v1/runs/nope/summary"} {
		assert.Equal(t, http.StatusNotFound, get(t, s, path).Code, path)
	}
}

func TestServer_DeleteRun(t *testing.T) {
	s, repo := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/runs/rr-1", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err := repo.GetRun("rr-1")
	assert.ErrorIs(t, err, store.ErrRunNotFound)
}

func TestServer_CORS(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
