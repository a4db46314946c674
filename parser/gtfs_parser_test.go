package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/heat-transit/geo"
	"github.com/ttpr0/heat-transit/structs"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		value    string
		expected int64
	}{
		{"00:00:00", 0},
		{"08:05:30", 8*3600 + 5*60 + 30},
		{"24:03:00", 24*3600 + 3*60},
		{" 7:00:00", 7 * 3600},
	}
	for _, test := range tests {
		value, err := ParseTime(test.value)
		require.NoError(t, err, test.value)
		assert.Equal(t, test.expected, value, test.value)
	}

	for _, value := range []string{"", "08:00", "08:00:00:00", "8h05", "08:60:00", "08:00:61", "-1:00:00", "aa:bb:cc"} {
		_, err := ParseTime(value)
		assert.Error(t, err, value)
	}
}

func TestParseStops(t *testing.T) {
	proj := geo.NewProjection(47.6, -122.33)
	stops, err := ParseStops("./testdata/gtfs/stops.txt", proj)
	require.NoError(t, err)
	require.Len(t, stops, 3)

	first := stops[1]
	assert.Equal(t, "3rd Ave & Pike St", first.Name)
	assert.InDelta(t, 0, first.X, 1e-9)
	assert.InDelta(t, 0, first.Y, 1e-9)

	second := stops[2]
	assert.Greater(t, second.X, 0.0)
	assert.Greater(t, second.Y, 0.0)
	assert.InDelta(t, 0.015*40075.0/360.0, second.Y, 1e-9)
}

func TestBuildConnections(t *testing.T) {
	stop_times, err := ParseStopTimes("./testdata/gtfs/stop_times.txt")
	require.NoError(t, err)
	require.Len(t, stop_times, 7)

	conns, err := BuildConnections(stop_times)
	require.NoError(t, err)
	assert.Equal(t, 4, conns.Count())

	assert.Equal(t, structs.Connection{Time: 240, TripID: 101}, conns[1][2])
	assert.Equal(t, structs.Connection{Time: 720, TripID: 100}, conns[1][3])
	assert.Equal(t, structs.Connection{Time: 420, TripID: 100}, conns[2][3])
	// past midnight
	assert.Equal(t, structs.Connection{Time: 300, TripID: 102}, conns[3][1])

	assert.NotContains(t, conns[2], structs.StopID(1))
}

func TestBuildConnectionsWithoutShape(t *testing.T) {
	stop_times := []GTFSStopTime{
		{TripID: 1, StopID: 10, ArrivalTime: "10:00:00", StopSequence: 1},
		{TripID: 1, StopID: 11, ArrivalTime: "10:02:00", StopSequence: 2},
		{TripID: 1, StopID: 12, ArrivalTime: "10:06:00", StopSequence: 3},
	}
	conns, err := BuildConnections(stop_times)
	require.NoError(t, err)
	assert.Equal(t, 3, conns.Count())
	assert.Equal(t, 360.0, conns[10][12].Time)
}

func TestBuildConnectionsBadTime(t *testing.T) {
	stop_times, err := ParseStopTimes("./testdata/bad_stop_times.txt")
	require.NoError(t, err)
	_, err = BuildConnections(stop_times)
	assert.ErrorContains(t, err, "8h05")
}

func TestGetTransitData(t *testing.T) {
	cache_dir := filepath.Join(t.TempDir(), "cache")
	proj := geo.NewProjection(47.6, -122.33)

	stops, conns, err := GetTransitData(cache_dir, "./testdata/gtfs", proj)
	require.NoError(t, err)
	assert.Len(t, stops, 3)
	assert.Equal(t, 4, conns.Count())
	assert.FileExists(t, filepath.Join(cache_dir, "stops.json"))
	assert.FileExists(t, filepath.Join(cache_dir, "connections.json"))

	// the cache is used even if the feed is gone
	cached_stops, cached_conns, err := GetTransitData(cache_dir, "./testdata/missing", proj)
	require.NoError(t, err)
	assert.Equal(t, stops, cached_stops)
	assert.Equal(t, conns, cached_conns)

	// unreadable cache falls back to the feed
	require.NoError(t, os.WriteFile(filepath.Join(cache_dir, "stops.json"), []byte("[1,2"), 0o644))
	rebuilt, _, err := GetTransitData(cache_dir, "./testdata/gtfs", proj)
	require.NoError(t, err)
	assert.Equal(t, stops, rebuilt)
}

func TestGetTransitDataMissingFeed(t *testing.T) {
	_, _, err := GetTransitData(t.TempDir(), "./testdata/missing", geo.Projection{})
	assert.Error(t, err)
}
