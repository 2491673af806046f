package main

import (
	"github.com/sourcegraph/conc/pool"
	"github.com/ttpr0/netex-routing/batched/onetomany"
	"github.com/ttpr0/netex-routing/graph"
	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
	"golang.org/x/exp/slog"
)

//**********************************************************
// matrix request and response
//**********************************************************

type MatrixRequest struct {
	Sources      []string `json:"sources"`
	Destinations []string `json:"destinations"`
	Date         string   `json:"date"`
	DepartAfter  string   `json:"depart_after"`
	MaxRange     int32    `json:"max_range"`
}

type MatrixResponse struct {
	// earliest arrival in seconds since midnight, -1 if unreachable
	Arrivals [][]int32 `json:"arrivals"`
}

//**********************************************************
// matrix handler
//**********************************************************

func HandleMatrixRequest(req MatrixRequest) Result {
	slog.Info("Run Matrix Request", "sources", len(req.Sources), "destinations", len(req.Destinations))

	g := MANAGER.GetRequestGraph(req.Date)
	if !g.HasValue() {
		return BadRequest("invalid date")
	}
	depart_after, res := GetRequestDepartAfter(req.DepartAfter)
	if res.status != 0 {
		return res
	}
	config := MANAGER._GetServiceConfig()
	max_range := config.Routing.MaxRange
	if req.MaxRange > 0 {
		max_range = req.MaxRange
	}

	matrix := CalcArrivalMatrix(g.Value, req.Sources, req.Destinations, depart_after, max_range, config.Routing.Workers)
	slog.Info("Matrix reponse build")
	return OK(MatrixResponse{Arrivals: matrix})
}

// Computes earliest arrivals from every source to every destination station.
// Unknown stations and unreachable pairs are set to -1.
func CalcArrivalMatrix(g *graph.ConnectionGraph, sources, destinations []string, depart_after timetable.TimeOfDay, max_range int32, workers int) [][]int32 {
	source_handles := _ResolveStations(g, sources)
	target_handles := _ResolveStations(g, destinations)

	matrix := make([][]int32, len(sources))
	for i := range matrix {
		matrix[i] = make([]int32, len(destinations))
	}

	source_chan := make(chan int, len(sources))
	for i := range sources {
		source_chan <- i
	}
	close(source_chan)

	otm := onetomany.NewEarliestArrival(g, depart_after, max_range)
	p := pool.New().WithMaxGoroutines(workers)
	for i := 0; i < workers; i++ {
		p.Go(func() {
			solver := otm.CreateStationSolver()
			for s := range source_chan {
				row := matrix[s]
				s_handle := source_handles[s]
				if !s_handle.HasValue() {
					_FillRow(row, -1)
					continue
				}
				if err := solver.CalcFromStation(s_handle.Value); err != nil {
					_FillRow(row, -1)
					continue
				}
				for t, t_handle := range target_handles {
					if !t_handle.HasValue() {
						row[t] = -1
						continue
					}
					arrival, ok := solver.GetArrival(t_handle.Value)
					if !ok || int32(arrival) > max_range {
						row[t] = -1
						continue
					}
					row[t] = int32(arrival)
				}
			}
		})
	}
	p.Wait()

	return matrix
}

func _ResolveStations(g *graph.ConnectionGraph, names []string) Array[Optional[graph.StationHandle]] {
	handles := NewArray[Optional[graph.StationHandle]](len(names))
	for i, name := range names {
		handles[i] = g.ResolveStation(name)
	}
	return handles
}

func _FillRow(row []int32, value int32) {
	for i := range row {
		row[i] = value
	}
}
