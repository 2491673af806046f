package main

import (
	"errors"
	"fmt"

	"github.com/ttpr0/netex-routing/graph"
	"github.com/ttpr0/netex-routing/routing"
	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
	"golang.org/x/exp/slog"
)

var (
	ErrUnknownStation = errors.New("unknown station")
	ErrNoDeparture    = errors.New("no departure")
	ErrUnreachable    = errors.New("station not reachable")
)

//**********************************************************
// arrivals
//**********************************************************

type ArrivalsRequest struct {
	Station     string `json:"station"`
	Date        string `json:"date"`
	DepartAfter string `json:"depart_after"`
}

type ArrivalRow struct {
	Station string `json:"station" csv:"station"`
	Arrival string `json:"arrival" csv:"arrival"`
	Seconds int32  `json:"seconds" csv:"seconds"`
}

type ArrivalsResponse struct {
	Station     string       `json:"station"`
	Date        string       `json:"date"`
	DepartAfter string       `json:"depart_after"`
	Arrivals    []ArrivalRow `json:"arrivals"`
}

// Computes the earliest arrival at every station reachable from station.
func QueryArrivals(g *graph.ConnectionGraph, station string, depart_after timetable.TimeOfDay) (List[ArrivalRow], error) {
	handle := g.ResolveStation(station)
	if !handle.HasValue() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStation, station)
	}
	dists := routing.EarliestArrivals(g, handle.Value, depart_after)
	arrivals := routing.StationArrivals(g, dists, Some(handle.Value.Station))

	rows := NewList[ArrivalRow](arrivals.Length())
	for _, item := range arrivals {
		rows.Add(ArrivalRow{
			Station: item.Name,
			Arrival: timetable.TimeOfDay(item.Value).Format(),
			Seconds: item.Value,
		})
	}
	return rows, nil
}

func HandleArrivalsRequest(req ArrivalsRequest) Result {
	slog.Info("Run Arrivals Request", "station", req.Station)

	g := MANAGER.GetRequestGraph(req.Date)
	if !g.HasValue() {
		return BadRequest("invalid date")
	}
	depart_after, res := GetRequestDepartAfter(req.DepartAfter)
	if res.status != 0 {
		return res
	}
	rows, err := QueryArrivals(g.Value, req.Station, depart_after)
	if err != nil {
		return BadRequest(err.Error())
	}
	return OK(ArrivalsResponse{
		Station:     req.Station,
		Date:        g.Value.Date().Format(timetable.DATE_LAYOUT),
		DepartAfter: depart_after.Format(),
		Arrivals:    rows,
	})
}

//**********************************************************
// routing requests and responses
//**********************************************************

type RoutingRequest struct {
	From        string `json:"from"`
	To          string `json:"to"`
	Date        string `json:"date"`
	DepartAfter string `json:"depart_after"`
	Alg         string `json:"algorithm"`
}

type RouteLeg struct {
	From      string `json:"from"`
	Departure string `json:"departure"`
	To        string `json:"to"`
	Arrival   string `json:"arrival"`
}

type RoutingResponse struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	Departure string     `json:"departure"`
	Arrival   string     `json:"arrival"`
	Duration  int32      `json:"duration"`
	Legs      []RouteLeg `json:"legs"`
}

func GetShortestPathAlgorithm(g graph.IGraph, start, end int32, alg string, max_range int32) (routing.IShortestPath, error) {
	switch alg {
	case "", "dijkstra":
		return routing.NewDijkstra(g, start, end), nil
	case "astar":
		return routing.NewAStar(g, start, end, routing.ZeroHeuristic), nil
	case "bidirect":
		return routing.NewBidirectDijkstra(g, start, end, max_range), nil
	default:
		return nil, fmt.Errorf("unknown algorithm %q", alg)
	}
}

// Finds the earliest arrival route between two stations, starting with the first
// departure at or after depart_after.
func QueryRoute(g *graph.ConnectionGraph, from, to string, depart_after timetable.TimeOfDay, alg string, max_range int32) (RoutingResponse, error) {
	source := g.ResolveStation(from)
	if !source.HasValue() {
		return RoutingResponse{}, fmt.Errorf("%w: %q", ErrUnknownStation, from)
	}
	target := g.ResolveStation(to)
	if !target.HasValue() {
		return RoutingResponse{}, fmt.Errorf("%w: %q", ErrUnknownStation, to)
	}
	starts := g.DepartureStarts(source.Value, depart_after)
	if starts.Length() == 0 {
		return RoutingResponse{}, fmt.Errorf("%w from %q after %v", ErrNoDeparture, from, depart_after)
	}
	start := starts[0]

	solver, err := GetShortestPathAlgorithm(g, start.A, target.Value.Final, alg, max_range)
	if err != nil {
		return RoutingResponse{}, err
	}
	if !solver.CalcShortestPath() {
		return RoutingResponse{}, fmt.Errorf("%w: %q from %q", ErrUnreachable, to, from)
	}
	path := solver.GetShortestPath()

	// the start vertex may be an arrival, waiting before the first ride is not part of the route
	arrival := timetable.TimeOfDay(start.B) + timetable.TimeOfDay(path.Length())
	departure := _FirstDeparture(g, path).ValueOr(arrival)
	return RoutingResponse{
		From:      from,
		To:        to,
		Departure: departure.Format(),
		Arrival:   arrival.Format(),
		Duration:  int32(arrival - departure),
		Legs:      BuildRouteLegs(g, path),
	}, nil
}

// Returns the departure time of the first travel edge of path.
func _FirstDeparture(g *graph.ConnectionGraph, path routing.Path) Optional[timetable.TimeOfDay] {
	for _, edge_id := range path.GetEdges() {
		edge := g.GetEdge(edge_id)
		a := g.StopByID(edge.NodeA)
		b := g.StopByID(edge.NodeB)
		if !a.HasValue() || !b.HasValue() {
			panic("path vertex without station")
		}
		if a.Value.Station != b.Value.Station {
			return Some(a.Value.Time)
		}
	}
	return None[timetable.TimeOfDay]()
}

// Collects the travel edges of path, consecutive rides of one station pair are kept separate.
func BuildRouteLegs(g *graph.ConnectionGraph, path routing.Path) []RouteLeg {
	legs := make([]RouteLeg, 0, 4)
	for _, edge_id := range path.GetEdges() {
		edge := g.GetEdge(edge_id)
		a := g.StopByID(edge.NodeA)
		b := g.StopByID(edge.NodeB)
		if !a.HasValue() || !b.HasValue() {
			panic("path vertex without station")
		}
		if a.Value.Station == b.Value.Station {
			continue
		}
		legs = append(legs, RouteLeg{
			From:      a.Value.Name,
			Departure: a.Value.Time.Format(),
			To:        b.Value.Name,
			Arrival:   b.Value.Time.Format(),
		})
	}
	return legs
}

func HandleRoutingRequest(req RoutingRequest) Result {
	slog.Info("Run Routing Request", "from", req.From, "to", req.To)

	g := MANAGER.GetRequestGraph(req.Date)
	if !g.HasValue() {
		return BadRequest("invalid date")
	}
	depart_after, res := GetRequestDepartAfter(req.DepartAfter)
	if res.status != 0 {
		return res
	}
	config := MANAGER._GetServiceConfig()
	resp, err := QueryRoute(g.Value, req.From, req.To, depart_after, req.Alg, config.Routing.MaxRange)
	if err != nil {
		return BadRequest(err.Error())
	}
	return OK(resp)
}

//**********************************************************
// stations
//**********************************************************

type StationsRequest struct {
	Date string `json:"date"`
}

type StationItem struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Vertices int32  `json:"vertices"`
}

type StationsResponse struct {
	Date     string        `json:"date"`
	Stations []StationItem `json:"stations"`
}

func HandleStationsRequest(req StationsRequest) Result {
	g := MANAGER.GetRequestGraph(req.Date)
	if !g.HasValue() {
		return BadRequest("invalid date")
	}
	index := g.Value.GetIndex()
	names := g.Value.Stations().Names()
	stations := make([]StationItem, 0, names.Length())
	for i, name := range names {
		start, end := index.GetStationBlock(int32(i))
		stations = append(stations, StationItem{
			ID:       int32(i),
			Name:     name,
			Vertices: end - start,
		})
	}
	return OK(StationsResponse{
		Date:     g.Value.Date().Format(timetable.DATE_LAYOUT),
		Stations: stations,
	})
}

//**********************************************************
// utility methods
//**********************************************************

// Parses the requested departure time, the configured one if empty.
func GetRequestDepartAfter(value string) (timetable.TimeOfDay, Result) {
	if value == "" {
		config := MANAGER._GetServiceConfig()
		return config.DepartAfter(), Result{}
	}
	t, err := timetable.ParseTimeOfDay(value)
	if err != nil {
		return 0, BadRequest("invalid depart_after")
	}
	return t, Result{}
}
