package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	manager, metrics := testManager(t)
	srv := httptest.NewServer(NewRouter(manager, metrics, ServerOptions{Address: ":0"}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON[T any](t *testing.T, url string, status int) T {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, status, resp.StatusCode)
	var value T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&value))
	return value
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	health := getJSON[HealthResponse](t, srv.URL+"/health", http.StatusOK)
	assert.Equal(t, HealthResponse{Status: "ok", Stops: 3, Connections: 4, CachedStops: 3}, health)
}

func TestRouteRequest(t *testing.T) {
	srv := testServer(t)

	resp := getJSON[RouteResponse](t, srv.URL+"/v0/route?lat=47.6&lon=-122.33&steps=true", http.StatusOK)
	assert.True(t, resp.Found)
	require.NotNil(t, resp.Total)
	assert.InDelta(t, 1170, *resp.Total, 1e-6)
	assert.Equal(t, uint32(1), resp.Cost.Transfers)
	assert.Len(t, resp.Steps, 4)

	resp = getJSON[RouteResponse](t, srv.URL+"/v0/route?x=100&y=100", http.StatusOK)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Total)

	for _, query := range []string{"", "?lat=47.6", "?lat=abc&lon=1", "?lat=47.6&lon=-122.33&x=1&y=1", "?lat=NaN&lon=0", "?x=Inf&y=0", "?x=1&y=-Inf"} {
		err := getJSON[ErrorResponse](t, srv.URL+"/v0/route"+query, http.StatusBadRequest)
		assert.Equal(t, "/v0/route", err.Request, query)
	}
}

func TestBatchRouteRequest(t *testing.T) {
	srv := testServer(t)

	body := strings.NewReader(`{"locations": [[47.6, -122.33], [40.0, -120.0]]}`)
	resp, err := http.Post(srv.URL+"/v0/route", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var batch BatchRouteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&batch))
	require.Len(t, batch.Results, 2)
	assert.True(t, batch.Results[0].Found)
	assert.False(t, batch.Results[1].Found)

	resp, err = http.Post(srv.URL+"/v0/route", "application/json", strings.NewReader(`{"locations": []}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCacheRequest(t *testing.T) {
	srv := testServer(t)

	cache := getJSON[CacheResponse](t, srv.URL+"/v0/cache/3", http.StatusOK)
	assert.Equal(t, "15th Ave E & E Republican St", cache.Name)
	assert.InDelta(t, 0, cache.Cost.Total(), 1e-6)

	getJSON[ErrorResponse](t, srv.URL+"/v0/cache/99", http.StatusNotFound)
	getJSON[ErrorResponse](t, srv.URL+"/v0/cache/abc", http.StatusBadRequest)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)
	getJSON[RouteResponse](t, srv.URL+"/v0/route?x=0&y=0", http.StatusOK)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `heat_transit_searches_total{outcome="found"} 1`)
	assert.Contains(t, string(data), "heat_transit_stops 3")
}
