package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/exp/slices"
	"golang.org/x/net/html/charset"

	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

var (
	ErrMissingReference = errors.New("parser: missing reference")
	ErrMalformedValue   = errors.New("parser: malformed value")
)

const (
	_SERVICE  = "ServiceFrame"
	_CALENDAR = "ServiceCalendarFrame"
	_TIMES    = "TimetableFrame"
)

//*******************************************
// netex parser
//*******************************************

// Parses a single NeTEx document. Station indices of the result are local to the document.
func ParseNetex(reader io.Reader) (*timetable.Timetable, error) {
	doc, err := _ReadNetex(reader)
	if err != nil {
		return nil, err
	}
	return _ResolveNetex(doc)
}

func _ReadNetex(reader io.Reader) (*_NetexDocument, error) {
	doc := _NewNetexDocument()
	path := NewList[string](64)
	text := strings.Builder{}

	var stop_id string
	var period_ref, day_type_ref string

	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := d.Token()
		if tok == nil || err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decoding token: %w", err)
		}

		switch ty := tok.(type) {
		case xml.StartElement:
			path.Add(ty.Name.Local)
			text.Reset()

			if _PathIs(path, _SERVICE, "scheduledStopPoints", "ScheduledStopPoint") {
				stop_id, err = _GetAttr(ty, "id")
			} else if _PathIs(path, _SERVICE, "journeyPatterns", "ServiceJourneyPattern") {
				var id string
				id, err = _GetAttr(ty, "id")
				doc.patterns.Add(_ParsedPattern{ID: id, Points: NewList[_ParsedPatternPoint](10)})
			} else if _PathIs(path, _SERVICE, "journeyPatterns", "ServiceJourneyPattern", "pointsInSequence", "StopPointInJourneyPattern") {
				err = _AddPatternPoint(doc, ty)
			} else if _PathIs(path, _SERVICE, "journeyPatterns", "ServiceJourneyPattern", "pointsInSequence", "StopPointInJourneyPattern", "ScheduledStopPointRef") {
				pattern := &doc.patterns[doc.patterns.Length()-1]
				pattern.Points[pattern.Points.Length()-1].Stop, err = _GetAttr(ty, "ref")
			} else if _PathIs(path, _CALENDAR, "ServiceCalendar", "operatingPeriods", "UicOperatingPeriod") {
				var id string
				id, err = _GetAttr(ty, "id")
				doc.periods.Add(_ParsedOperatingPeriod{ID: id})
			} else if _PathIs(path, _CALENDAR, "ServiceCalendar", "dayTypes", "DayType") {
				var id string
				id, err = _GetAttr(ty, "id")
				doc.day_types.Add(id)
			} else if _PathIs(path, _CALENDAR, "ServiceCalendar", "dayTypeAssignments", "DayTypeAssignment", "OperatingPeriodRef") {
				period_ref, err = _GetAttr(ty, "ref")
			} else if _PathIs(path, _CALENDAR, "ServiceCalendar", "dayTypeAssignments", "DayTypeAssignment", "DayTypeRef") {
				day_type_ref, err = _GetAttr(ty, "ref")
			} else if _PathIs(path, _TIMES, "vehicleJourneys", "ServiceJourney") {
				id, _ := _GetAttr(ty, "id")
				doc.journeys.Add(_ParsedJourney{ID: id, DayTypes: NewList[string](2), Passings: NewList[_ParsedPassing](10)})
			} else if _PathIs(path, _TIMES, "vehicleJourneys", "ServiceJourney", "dayTypes", "DayTypeRef") {
				var ref string
				ref, err = _GetAttr(ty, "ref")
				journey := &doc.journeys[doc.journeys.Length()-1]
				journey.DayTypes.Add(ref)
			} else if _PathIs(path, _TIMES, "vehicleJourneys", "ServiceJourney", "ServiceJourneyPatternRef") {
				journey := &doc.journeys[doc.journeys.Length()-1]
				journey.Pattern, err = _GetAttr(ty, "ref")
			} else if _PathIs(path, _TIMES, "vehicleJourneys", "ServiceJourney", "passingTimes", "TimetabledPassingTime") {
				journey := &doc.journeys[doc.journeys.Length()-1]
				journey.Passings.Add(_ParsedPassing{})
			} else if _PathIs(path, _TIMES, "vehicleJourneys", "ServiceJourney", "passingTimes", "TimetabledPassingTime", "StopPointInJourneyPatternRef") {
				journey := &doc.journeys[doc.journeys.Length()-1]
				journey.Passings[journey.Passings.Length()-1].Point, err = _GetAttr(ty, "ref")
			}
		case xml.CharData:
			text.Write(ty)
		case xml.EndElement:
			value := strings.TrimSpace(text.String())
			text.Reset()

			if _PathIs(path, _SERVICE, "scheduledStopPoints", "ScheduledStopPoint", "Name") {
				if !doc.stop_names.ContainsKey(stop_id) {
					doc.stop_ids.Add(stop_id)
				}
				doc.stop_names[stop_id] = value
			} else if _PathIs(path, _CALENDAR, "ServiceCalendar", "operatingPeriods", "UicOperatingPeriod", "FromDate") {
				period := &doc.periods[doc.periods.Length()-1]
				period.From, err = _ParseOptionalDate(value)
			} else if _PathIs(path, _CALENDAR, "ServiceCalendar", "operatingPeriods", "UicOperatingPeriod", "ToDate") {
				period := &doc.periods[doc.periods.Length()-1]
				period.To, err = _ParseOptionalDate(value)
			} else if _PathIs(path, _CALENDAR, "ServiceCalendar", "operatingPeriods", "UicOperatingPeriod", "ValidDayBits") {
				period := &doc.periods[doc.periods.Length()-1]
				period.Days = _ParseDayBits(value)
			} else if _PathIs(path, _CALENDAR, "ServiceCalendar", "dayTypeAssignments", "DayTypeAssignment") {
				if period_ref == "" || day_type_ref == "" {
					err = fmt.Errorf("%w: incomplete DayTypeAssignment", ErrMissingReference)
				}
				doc.day_type_refs[day_type_ref] = period_ref
				period_ref, day_type_ref = "", ""
			} else if _PathIs(path, _TIMES, "vehicleJourneys", "ServiceJourney", "ValidBetween", "FromDate") {
				journey := &doc.journeys[doc.journeys.Length()-1]
				journey.ValidFrom, err = _ParseOptionalDate(value)
			} else if _PathIs(path, _TIMES, "vehicleJourneys", "ServiceJourney", "ValidBetween", "ToDate") {
				journey := &doc.journeys[doc.journeys.Length()-1]
				journey.ValidTo, err = _ParseOptionalDate(value)
			} else if _PathIs(path, _TIMES, "vehicleJourneys", "ServiceJourney", "passingTimes", "TimetabledPassingTime", "DepartureTime") {
				journey := &doc.journeys[doc.journeys.Length()-1]
				journey.Passings[journey.Passings.Length()-1].Departure, err = _ParseOptionalTime(value)
			} else if _PathIs(path, _TIMES, "vehicleJourneys", "ServiceJourney", "passingTimes", "TimetabledPassingTime", "ArrivalTime") {
				journey := &doc.journeys[doc.journeys.Length()-1]
				journey.Passings[journey.Passings.Length()-1].Arrival, err = _ParseOptionalTime(value)
			}
			if path.Length() > 0 {
				path = path[:path.Length()-1]
			}
		default:
		}
		if err != nil {
			line, _ := d.InputPos()
			return nil, fmt.Errorf("line %v: %w", line, err)
		}
	}
	return doc, nil
}

func _AddPatternPoint(doc *_NetexDocument, elem xml.StartElement) error {
	id, err := _GetAttr(elem, "id")
	if err != nil {
		return err
	}
	order_attr, err := _GetAttr(elem, "order")
	if err != nil {
		return err
	}
	order, err := _ParseOrder(order_attr)
	if err != nil {
		return err
	}
	pattern := &doc.patterns[doc.patterns.Length()-1]
	pattern.Points.Add(_ParsedPatternPoint{ID: id, Order: order})
	return nil
}

func _ParseOptionalDate(value string) (Optional[time.Time], error) {
	date, err := _ParseDate(value)
	if err != nil {
		return None[time.Time](), err
	}
	return Some(date), nil
}

func _ParseOptionalTime(value string) (Optional[timetable.TimeOfDay], error) {
	t, err := _ParseTime(value)
	if err != nil {
		return None[timetable.TimeOfDay](), err
	}
	return Some(t), nil
}

//*******************************************
// resolve references
//*******************************************

func _ResolveNetex(doc *_NetexDocument) (*timetable.Timetable, error) {
	tt := &timetable.Timetable{
		OperatingPeriods: NewList[timetable.OperatingPeriod](doc.periods.Length()),
		DayTypes:         NewList[Optional[int32]](doc.day_types.Length()),
		Journeys:         NewList[timetable.Journey](doc.journeys.Length()),
		Stations:         NewList[string](doc.stop_ids.Length()),
	}

	stop_index := NewDict[string, int32](doc.stop_ids.Length())
	for _, id := range doc.stop_ids {
		stop_index[id] = int32(tt.Stations.Length())
		tt.Stations.Add(doc.stop_names[id])
	}

	period_index := NewDict[string, int32](doc.periods.Length())
	for _, period := range doc.periods {
		if !period.From.HasValue() || !period.To.HasValue() {
			return nil, fmt.Errorf("%w: operating period %v without FromDate/ToDate", ErrMalformedValue, period.ID)
		}
		days := period.Days
		if days == nil {
			days = bitset.New(0)
		}
		period_index[period.ID] = int32(tt.OperatingPeriods.Length())
		tt.OperatingPeriods.Add(timetable.OperatingPeriod{
			From: period.From.Value,
			To:   period.To.Value,
			Days: days,
		})
	}

	day_type_index := NewDict[string, int32](doc.day_types.Length())
	for _, day_type := range doc.day_types {
		day_type_index[day_type] = int32(tt.DayTypes.Length())
		period_ref, ok := doc.day_type_refs[day_type]
		if !ok {
			tt.DayTypes.Add(None[int32]())
			continue
		}
		period, ok := period_index[period_ref]
		if !ok {
			return nil, fmt.Errorf("%w: day type %v references operating period %v", ErrMissingReference, day_type, period_ref)
		}
		tt.DayTypes.Add(Some(period))
	}

	patterns := NewDict[string, List[Tuple[string, int32]]](doc.patterns.Length())
	for _, pattern := range doc.patterns {
		points := slices.Clone(pattern.Points)
		slices.SortStableFunc(points, func(a, b _ParsedPatternPoint) int {
			return int(a.Order) - int(b.Order)
		})
		sequence := NewList[Tuple[string, int32]](points.Length())
		for _, point := range points {
			stop, ok := stop_index[point.Stop]
			if !ok {
				return nil, fmt.Errorf("%w: pattern %v references stop point %q", ErrMissingReference, pattern.ID, point.Stop)
			}
			sequence.Add(MakeTuple(point.ID, stop))
		}
		patterns[pattern.ID] = sequence
	}

	for _, parsed := range doc.journeys {
		journey, err := _ResolveJourney(&parsed, patterns, day_type_index)
		if err != nil {
			return nil, err
		}
		tt.Journeys.Add(journey)
	}
	return tt, nil
}

func _ResolveJourney(parsed *_ParsedJourney, patterns Dict[string, List[Tuple[string, int32]]], day_types Dict[string, int32]) (timetable.Journey, error) {
	if !parsed.ValidFrom.HasValue() || !parsed.ValidTo.HasValue() {
		return timetable.Journey{}, fmt.Errorf("%w: journey %v without ValidBetween", ErrMalformedValue, parsed.ID)
	}
	pattern, ok := patterns[parsed.Pattern]
	if !ok {
		return timetable.Journey{}, fmt.Errorf("%w: journey %v references pattern %q", ErrMissingReference, parsed.ID, parsed.Pattern)
	}

	days := NewList[int32](parsed.DayTypes.Length())
	for _, ref := range parsed.DayTypes {
		idx, ok := day_types[ref]
		if !ok {
			return timetable.Journey{}, fmt.Errorf("%w: journey %v references day type %q", ErrMissingReference, parsed.ID, ref)
		}
		days.Add(idx)
	}

	passing_index := NewDict[string, int](parsed.Passings.Length())
	for i, passing := range parsed.Passings {
		passing_index[passing.Point] = i
	}
	passings := NewList[timetable.Passing](pattern.Length())
	for _, point := range pattern {
		i, ok := passing_index[point.A]
		if !ok {
			return timetable.Journey{}, fmt.Errorf("%w: journey %v has no passing at %q", ErrMissingReference, parsed.ID, point.A)
		}
		passing := parsed.Passings[i]
		passings.Add(timetable.Passing{
			Stop:      point.B,
			Arrival:   passing.Arrival,
			Departure: passing.Departure,
		})
	}

	return timetable.Journey{
		ID:        parsed.ID,
		Passings:  passings,
		ValidFrom: parsed.ValidFrom.Value,
		ValidTo:   parsed.ValidTo.Value,
		Days:      days,
	}, nil
}
