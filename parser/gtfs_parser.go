package parser

import (
	"fmt"
	"path/filepath"

	"github.com/ttpr0/heat-transit/geo"
	"github.com/ttpr0/heat-transit/structs"
	. "github.com/ttpr0/heat-transit/util"
	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

//*******************************************
// gtfs parser
//*******************************************

// Reads stops.txt and projects every stop into the planar frame of proj.
func ParseStops(path string, proj geo.Projection) (structs.Stops, error) {
	stops := structs.Stops{}
	for row, err := range ReadCSVFromFile[GTFSStop](path, ',') {
		if err != nil {
			return nil, fmt.Errorf("failed to parse stops: %w", err)
		}
		loc := proj.Proj(geo.NewCoord(row.StopLat, row.StopLon))
		id := structs.StopID(row.StopID)
		stops[id] = structs.Stop{
			ID:   id,
			X:    loc[0],
			Y:    loc[1],
			Name: row.StopName,
		}
	}
	slog.Info(fmt.Sprintf("parsed %d stops", len(stops)))
	return stops, nil
}

func ParseStopTimes(path string) (List[GTFSStopTime], error) {
	stop_times := NewList[GTFSStopTime](1000)
	for row, err := range ReadCSVFromFile[GTFSStopTime](path, ',') {
		if err != nil {
			return nil, fmt.Errorf("failed to parse stop times: %w", err)
		}
		stop_times.Add(row)
	}
	slog.Info(fmt.Sprintf("parsed %d stop times", stop_times.Length()))
	return stop_times, nil
}

type _TripStop struct {
	stop     structs.StopID
	arrival  int64
	sequence uint32
	dist     float64
}

// Builds a connection for every ordered pair of stops served by the same trip,
// keeping the fastest time per pair over all trips.
//
// Stops are ordered along a trip by shape distance, or by stop sequence when
// the trip has no shape distances. Pairs whose arrival time does not increase
// (trips wrapping past midnight) are skipped.
func BuildConnections(stop_times List[GTFSStopTime]) (structs.ConnectionTable, error) {
	trips := NewDict[uint32, List[_TripStop]](100)
	for _, row := range stop_times {
		arrival, err := ParseTime(row.ArrivalTime)
		if err != nil {
			return nil, fmt.Errorf("trip %d stop %d: %w", row.TripID, row.StopID, err)
		}
		trip := trips[row.TripID]
		trip.Add(_TripStop{
			stop:     structs.StopID(row.StopID),
			arrival:  arrival,
			sequence: row.StopSequence,
			dist:     row.ShapeDistTraveled,
		})
		trips[row.TripID] = trip
	}

	// first trip wins between equally fast connections, keep that stable
	trip_ids := trips.Keys()
	slices.Sort(trip_ids)

	connections := structs.ConnectionTable{}
	for _, trip_id := range trip_ids {
		trip := trips[trip_id]
		has_shape := slices.ContainsFunc(trip, func(s _TripStop) bool { return s.dist != 0 })
		for _, a := range trip {
			for _, b := range trip {
				if a.stop == b.stop {
					continue
				}
				if has_shape && a.dist >= b.dist {
					continue
				}
				if !has_shape && a.sequence >= b.sequence {
					continue
				}
				if a.arrival >= b.arrival {
					continue
				}
				connections.AddIfFaster(a.stop, b.stop, structs.Connection{
					Time:   float64(b.arrival - a.arrival),
					TripID: trip_id,
				})
			}
		}
	}
	slog.Info(fmt.Sprintf("built %d connections from %d trips", connections.Count(), len(trip_ids)))
	return connections, nil
}

//*******************************************
// cached transit data
//*******************************************

// Loads stops and connections from cache_dir, parsing them from the GTFS feed
// in gtfs_dir when a cache file is missing or unreadable.
func GetTransitData(cache_dir string, gtfs_dir string, proj geo.Projection) (structs.Stops, structs.ConnectionTable, error) {
	stops, err := LoadOrBuild(filepath.Join(cache_dir, "stops.json"), func() (structs.Stops, error) {
		return ParseStops(filepath.Join(gtfs_dir, "stops.txt"), proj)
	})
	if err != nil {
		return nil, nil, err
	}
	connections, err := LoadOrBuild(filepath.Join(cache_dir, "connections.json"), func() (structs.ConnectionTable, error) {
		stop_times, err := ParseStopTimes(filepath.Join(gtfs_dir, "stop_times.txt"))
		if err != nil {
			return nil, err
		}
		return BuildConnections(stop_times)
	})
	if err != nil {
		return nil, nil, err
	}
	return stops, connections, nil
}
