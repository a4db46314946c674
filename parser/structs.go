package parser

//*******************************************
// gtfs rows
//*******************************************

// Row of a GTFS stops.txt file.
type GTFSStop struct {
	StopID   uint32  `csv:"stop_id"`
	StopName string  `csv:"stop_name"`
	StopLat  float64 `csv:"stop_lat"`
	StopLon  float64 `csv:"stop_lon"`
}

// Row of a GTFS stop_times.txt file.
type GTFSStopTime struct {
	TripID            uint32  `csv:"trip_id"`
	StopID            uint32  `csv:"stop_id"`
	ArrivalTime       string  `csv:"arrival_time"`
	DepartureTime     string  `csv:"departure_time"`
	StopSequence      uint32  `csv:"stop_sequence"`
	ShapeDistTraveled float64 `csv:"shape_dist_traveled"`
}
