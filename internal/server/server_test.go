package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/joycelim/callheat/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serverFixture = `{"id":"c1","startedAt":"2024-03-04T01:15:00Z","endedAt":"2024-03-04T01:45:00Z"}
{"id":"c2","startedAt":"2024-04-10T02:00:00Z","endedAt":"2024-04-10T02:20:00Z"}
`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dataDir := t.TempDir()
	err := os.WriteFile(filepath.Join(dataDir, "calls.jsonl"), []byte(serverFixture), 0644)
	require.NoError(t, err)

	loader, err := analyzer.New(&analyzer.Config{
		DataDir:  dataDir,
		CacheDir: t.TempDir(),
	})
	require.NoError(t, err)

	dataset := NewDataset(loader)
	require.NoError(t, dataset.Reload())

	config := &Config{
		Port:           "0",
		AllowedOrigins: []string{"http://localhost:5173"},
	}
	return New(config, dataset)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOverviewEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/overview")
	require.Equal(t, http.StatusOK, rec.Code)

	var overview analyzer.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	assert.Equal(t, 2, overview.TotalCalls)
	assert.InDelta(t, 50, overview.TotalMinutes, 1e-9)
}

func TestHeatmapEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/heatmap")
	require.Equal(t, http.StatusOK, rec.Code)

	var report analyzer.HeatmapReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "Asia/Singapore", report.LocalZone)
	assert.Equal(t, "Pacific/Auckland", report.RemoteZone)
	require.Len(t, report.Grid.Cells, 168)

	// 2024-03-04 01:15 UTC is Monday 09:15 in Singapore.
	cell := report.Grid.Cell(1, 9)
	require.NotNil(t, cell)
	require.NotNil(t, cell.Local)
	assert.InDelta(t, 30, *cell.Local, 1e-9)
}

func TestMonthFilterParams(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/overview?from=2024-04&to=2024-04")
	require.Equal(t, http.StatusOK, rec.Code)

	var overview analyzer.Overview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &overview))
	assert.Equal(t, 1, overview.TotalCalls)
}

func TestCalendarEndpointEmptyRange(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/calendar?from=2030-01&to=2030-02")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTrendEndpoint(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/trend?interval=month&metric=total")
	require.Equal(t, http.StatusOK, rec.Code)

	var points []analyzer.TrendPoint
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 2)
	assert.Equal(t, "2024-03", points[0].Interval)
	assert.InDelta(t, 30, points[0].Minutes, 1e-9)
}

func TestDistributionEndpointBins(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/distribution?bins=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var bins []analyzer.DistributionBin
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bins))
	assert.Len(t, bins, 2)
}

func TestBadParamsRejected(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "bad view", path: "/api/overview?view=paris"},
		{name: "bad month", path: "/api/overview?from=March"},
		{name: "bad interval", path: "/api/trend?interval=year"},
		{name: "bad bins", path: "/api/distribution?bins=zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.path)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestRemoteViewFilter(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/heatmap?view=remote")
	require.Equal(t, http.StatusOK, rec.Code)

	var report analyzer.HeatmapReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	// The same call lands at Monday 14:15 in Auckland.
	cell := report.Grid.Cell(1, 14)
	require.NotNil(t, cell)
	require.NotNil(t, cell.Remote)
	assert.InDelta(t, 30, *cell.Remote, 1e-9)
}
