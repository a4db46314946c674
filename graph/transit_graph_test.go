package graph

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ttpr0/heat-transit/geo"
	"github.com/ttpr0/heat-transit/structs"
)

func testGraph() *TransitGraph {
	stops := structs.Stops{
		30: {ID: 30, X: 2, Y: 0, Name: "C"},
		10: {ID: 10, X: 0, Y: 0, Name: "A"},
		20: {ID: 20, X: 1, Y: -1, Name: "B"},
	}
	conns := structs.ConnectionTable{}
	conns.AddIfFaster(10, 20, structs.Connection{Time: 300, TripID: 1})
	conns.AddIfFaster(10, 20, structs.Connection{Time: 200, TripID: 2})
	conns.AddIfFaster(10, 20, structs.Connection{Time: 250, TripID: 3})
	conns.AddIfFaster(20, 30, structs.Connection{Time: 300, TripID: 1})
	return BuildTransitGraph(stops, conns, geo.NewProjection(47.6, -122.33))
}

func TestStopOrder(t *testing.T) {
	g := testGraph()
	assert.Equal(t, 3, g.StopCount())

	names := []string{}
	g.ForStops(func(s structs.Stop) {
		names = append(names, s.Name)
	})
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestConnections(t *testing.T) {
	g := testGraph()
	assert.Equal(t, 2, g.ConnectionCount())

	conn, ok := g.GetConnection(10, 20)
	require.True(t, ok)
	assert.Equal(t, 200.0, conn.Time)
	assert.Equal(t, uint32(2), conn.TripID)

	_, ok = g.GetConnection(20, 10)
	assert.False(t, ok)

	count := 0
	g.ForConnections(30, func(structs.StopID, structs.Connection) { count++ })
	assert.Equal(t, 0, count)
}

func TestBound(t *testing.T) {
	g := testGraph()
	assert.Equal(t, orb.Bound{Min: orb.Point{0, -1}, Max: orb.Point{2, 0}}, g.Bound())
	assert.Equal(t, orb.Bound{}, BuildTransitGraph(structs.Stops{}, nil, geo.Projection{}).Bound())
}

func TestConnectionOrder(t *testing.T) {
	conns := structs.ConnectionTable{}
	conns.AddIfFaster(1, 9, structs.Connection{Time: 10})
	conns.AddIfFaster(1, 3, structs.Connection{Time: 20})
	conns.AddIfFaster(1, 5, structs.Connection{Time: 30})
	g := BuildTransitGraph(structs.Stops{1: {ID: 1}}, conns, geo.Projection{})

	targets := []structs.StopID{}
	times := []float64{}
	g.ForConnections(1, func(to structs.StopID, conn structs.Connection) {
		targets = append(targets, to)
		times = append(times, conn.Time)
	})
	assert.Equal(t, []structs.StopID{3, 5, 9}, targets)
	assert.Equal(t, []float64{20, 30, 10}, times)
}
