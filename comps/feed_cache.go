package comps

import (
	"fmt"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

const (
	_CACHE_MAGIC   int32 = 0x4e585243
	_CACHE_VERSION int32 = 1
)

type _StoredPassing struct {
	Stop         int32
	Arrival      int32
	Departure    int32
	HasArrival   bool
	HasDeparture bool
}

type _StoredDayType struct {
	Period    int32
	HasPeriod bool
}

//*******************************************
// encode
//*******************************************

func _EncodeFeed(feed *timetable.Feed) []byte {
	writer := NewBufferWriter()
	Write(writer, _CACHE_MAGIC)
	Write(writer, _CACHE_VERSION)

	Write(writer, int32(feed.Stations.Count()))
	for _, name := range feed.Stations.Names() {
		WriteString(writer, name)
	}

	Write(writer, int32(feed.Timetables.Length()))
	for _, tt := range feed.Timetables {
		_EncodeTimetable(writer, tt)
	}
	return writer.Bytes()
}

func _EncodeTimetable(writer BufferWriter, tt *timetable.Timetable) {
	WriteString(writer, tt.Source)

	Write(writer, int32(tt.OperatingPeriods.Length()))
	for _, period := range tt.OperatingPeriods {
		_WriteDate(writer, period.From)
		_WriteDate(writer, period.To)
		WriteArray(writer, Array[uint64](period.Days.Bytes()))
	}

	day_types := NewArray[_StoredDayType](tt.DayTypes.Length())
	for i, day_type := range tt.DayTypes {
		day_types[i] = _StoredDayType{Period: day_type.Value, HasPeriod: day_type.HasValue()}
	}
	WriteArray(writer, day_types)

	Write(writer, int32(tt.Journeys.Length()))
	for _, journey := range tt.Journeys {
		WriteString(writer, journey.ID)
		_WriteDate(writer, journey.ValidFrom)
		_WriteDate(writer, journey.ValidTo)
		WriteArray(writer, Array[int32](journey.Days))

		passings := NewArray[_StoredPassing](journey.Passings.Length())
		for i, p := range journey.Passings {
			passings[i] = _StoredPassing{
				Stop:         p.Stop,
				Arrival:      int32(p.Arrival.Value),
				Departure:    int32(p.Departure.Value),
				HasArrival:   p.Arrival.HasValue(),
				HasDeparture: p.Departure.HasValue(),
			}
		}
		WriteArray(writer, passings)
	}
}

func _WriteDate(writer BufferWriter, date time.Time) {
	Write(writer, date.Unix())
}

//*******************************************
// decode
//*******************************************

func _DecodeFeed(data []byte) (*timetable.Feed, error) {
	reader := NewBufferReader(data)
	magic := Read[int32](reader)
	version := Read[int32](reader)
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCache, err)
	}
	if magic != _CACHE_MAGIC || version != _CACHE_VERSION {
		return nil, fmt.Errorf("%w: unknown format %x version %v", ErrInvalidCache, magic, version)
	}

	station_count := Read[int32](reader)
	registry := timetable.NewStationRegistry(int(max(station_count, 0)))
	for i := int32(0); i < station_count && reader.Err() == nil; i++ {
		registry.Add(ReadString(reader))
	}

	tt_count := Read[int32](reader)
	timetables := NewList[*timetable.Timetable](int(max(tt_count, 0)))
	for i := int32(0); i < tt_count && reader.Err() == nil; i++ {
		timetables.Add(_DecodeTimetable(reader))
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCache, err)
	}
	if registry.Count() != int(station_count) {
		return nil, fmt.Errorf("%w: duplicate station names", ErrInvalidCache)
	}

	return &timetable.Feed{
		Stations:   registry,
		Timetables: timetables,
	}, nil
}

func _DecodeTimetable(reader BufferReader) *timetable.Timetable {
	tt := &timetable.Timetable{
		Source: ReadString(reader),
	}

	period_count := Read[int32](reader)
	tt.OperatingPeriods = NewList[timetable.OperatingPeriod](int(max(period_count, 0)))
	for i := int32(0); i < period_count && reader.Err() == nil; i++ {
		from := _ReadDate(reader)
		to := _ReadDate(reader)
		words := ReadArray[uint64](reader)
		tt.OperatingPeriods.Add(timetable.OperatingPeriod{
			From: from,
			To:   to,
			Days: bitset.From(words),
		})
	}

	day_types := ReadArray[_StoredDayType](reader)
	tt.DayTypes = NewList[Optional[int32]](day_types.Length())
	for _, day_type := range day_types {
		if day_type.HasPeriod {
			tt.DayTypes.Add(Some(day_type.Period))
		} else {
			tt.DayTypes.Add(None[int32]())
		}
	}

	journey_count := Read[int32](reader)
	tt.Journeys = NewList[timetable.Journey](int(max(journey_count, 0)))
	for i := int32(0); i < journey_count && reader.Err() == nil; i++ {
		journey := timetable.Journey{
			ID:        ReadString(reader),
			ValidFrom: _ReadDate(reader),
			ValidTo:   _ReadDate(reader),
			Days:      List[int32](ReadArray[int32](reader)),
		}
		stored := ReadArray[_StoredPassing](reader)
		journey.Passings = NewList[timetable.Passing](stored.Length())
		for _, p := range stored {
			passing := timetable.Passing{Stop: p.Stop}
			if p.HasArrival {
				passing.Arrival = Some(timetable.TimeOfDay(p.Arrival))
			}
			if p.HasDeparture {
				passing.Departure = Some(timetable.TimeOfDay(p.Departure))
			}
			journey.Passings.Add(passing)
		}
		tt.Journeys.Add(journey)
	}
	return tt
}

func _ReadDate(reader BufferReader) time.Time {
	return time.Unix(Read[int64](reader), 0).UTC()
}
