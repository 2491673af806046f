package timetable

import (
	"time"

	"golang.org/x/exp/slog"

	. "github.com/ttpr0/netex-routing/util"
)

//*******************************************
// feed
//*******************************************

// Feed is the merged view of all timetables. Passings reference the registry.
type Feed struct {
	Stations   *StationRegistry
	Timetables List[*Timetable]
}

// Merges timetables into one feed. Station names are collected in file order
// then station order, equal names collapse into one station.
func MergeTimetables(timetables List[*Timetable]) *Feed {
	capacity := 0
	for _, tt := range timetables {
		capacity += tt.Stations.Length()
	}
	registry := NewStationRegistry(capacity)

	duplicates := 0
	for _, tt := range timetables {
		mapping := NewArray[int32](tt.Stations.Length())
		for i, name := range tt.Stations {
			idx, added := registry.Add(name)
			if !added {
				duplicates += 1
				slog.Debug("duplicate station name", "name", name, "source", tt.Source, "index", idx)
			}
			mapping[i] = idx
		}
		for j := range tt.Journeys {
			passings := tt.Journeys[j].Passings
			for k := range passings {
				passings[k].Stop = mapping[passings[k].Stop]
			}
		}
		tt.Stations = nil
	}
	slog.Info("merged timetables", "timetables", timetables.Length(), "stations", registry.Count(), "duplicates", duplicates)

	return &Feed{
		Stations:   registry,
		Timetables: timetables,
	}
}

// Returns a lazy sequence of all journeys running on date.
func (self *Feed) ValidJourneys(date time.Time) func(yield func(*Journey) bool) {
	date = TruncateDate(date)
	return func(yield func(*Journey) bool) {
		for _, tt := range self.Timetables {
			for i := range tt.Journeys {
				journey := &tt.Journeys[i]
				if !tt.IsJourneyValid(journey, date) {
					continue
				}
				if !yield(journey) {
					return
				}
			}
		}
	}
}

func (self *Feed) JourneyCount() int {
	count := 0
	for _, tt := range self.Timetables {
		count += tt.Journeys.Length()
	}
	return count
}

// Returns the journey at the given position counted over all timetables.
func (self *Feed) GetJourney(index int) Optional[*Journey] {
	if index < 0 {
		return None[*Journey]()
	}
	for _, tt := range self.Timetables {
		if index < tt.Journeys.Length() {
			return Some(&tt.Journeys[index])
		}
		index -= tt.Journeys.Length()
	}
	return None[*Journey]()
}
