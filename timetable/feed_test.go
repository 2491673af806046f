package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ttpr0/netex-routing/util"
)

func TestStationRegistry(t *testing.T) {
	registry := NewStationRegistry(4)

	idx, added := registry.Add("A")
	assert.Equal(t, int32(0), idx)
	assert.True(t, added)
	idx, added = registry.Add("B")
	assert.Equal(t, int32(1), idx)
	assert.True(t, added)
	idx, added = registry.Add("A")
	assert.Equal(t, int32(0), idx)
	assert.False(t, added)

	assert.Equal(t, 2, registry.Count())
	assert.Equal(t, "B", registry.GetName(1))
	assert.Equal(t, int32(1), registry.Get("B").Value)
	assert.False(t, registry.Get("C").HasValue())
	assert.Equal(t, List[string]{"A", "B"}, registry.Names())
}

func _Passing(stop int32, arrival, departure int32) Passing {
	return Passing{
		Stop:      stop,
		Arrival:   Some(TimeOfDay(arrival)),
		Departure: Some(TimeOfDay(departure)),
	}
}

func TestMergeTimetables(t *testing.T) {
	first := &Timetable{
		Source:   "a.xml",
		Stations: List[string]{"A", "B"},
		Journeys: List[Journey]{
			{Passings: List[Passing]{_Passing(0, 0, 100), _Passing(1, 200, 200)}},
		},
	}
	second := &Timetable{
		Source:   "b.xml",
		Stations: List[string]{"C", "B", "A"},
		Journeys: List[Journey]{
			{Passings: List[Passing]{_Passing(1, 0, 300), _Passing(0, 400, 400), _Passing(2, 500, 500)}},
		},
	}

	feed := MergeTimetables(List[*Timetable]{first, second})

	assert.Equal(t, List[string]{"A", "B", "C"}, feed.Stations.Names())
	assert.Equal(t, int32(0), first.Journeys[0].Passings[0].Stop)
	assert.Equal(t, int32(1), first.Journeys[0].Passings[1].Stop)

	stops := NewList[int32](3)
	for _, p := range second.Journeys[0].Passings {
		stops.Add(p.Stop)
	}
	assert.Equal(t, List[int32]{1, 2, 0}, stops)
	assert.Nil(t, second.Stations)
}

func TestValidJourneys(t *testing.T) {
	tt := _TestTimetable(t)
	tt.Journeys = List[Journey]{
		{ID: "j0", ValidFrom: date(t, "2024-01-01"), ValidTo: date(t, "2024-01-31"), Days: List[int32]{0}},
		{ID: "j1", ValidFrom: date(t, "2024-01-01"), ValidTo: date(t, "2024-01-31"), Days: List[int32]{2}},
		{ID: "j2", ValidFrom: date(t, "2024-01-01"), ValidTo: date(t, "2024-01-31"), Days: List[int32]{0, 2}},
	}
	feed := &Feed{Stations: NewStationRegistry(0), Timetables: List[*Timetable]{tt}}

	ids := NewList[string](3)
	feed.ValidJourneys(date(t, "2024-01-03"))(func(journey *Journey) bool {
		ids.Add(journey.ID)
		return true
	})
	assert.Equal(t, List[string]{"j1", "j2"}, ids)

	// stopping early ends the sequence
	count := 0
	feed.ValidJourneys(date(t, "2024-01-01"))(func(*Journey) bool {
		count += 1
		return false
	})
	assert.Equal(t, 1, count)

	assert.Equal(t, 3, feed.JourneyCount())
	journey := feed.GetJourney(2)
	require.True(t, journey.HasValue())
	assert.Equal(t, "j2", journey.Value.ID)
	assert.False(t, feed.GetJourney(3).HasValue())
}
