package parser

import (
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

//*******************************************
// parser structs
//*******************************************

type _ParsedOperatingPeriod struct {
	ID   string
	From Optional[time.Time]
	To   Optional[time.Time]
	Days *bitset.BitSet
}

type _ParsedPatternPoint struct {
	ID    string
	Order int32
	// id of the referenced ScheduledStopPoint
	Stop string
}

type _ParsedPattern struct {
	ID     string
	Points List[_ParsedPatternPoint]
}

type _ParsedPassing struct {
	Point     string
	Arrival   Optional[timetable.TimeOfDay]
	Departure Optional[timetable.TimeOfDay]
}

type _ParsedJourney struct {
	ID        string
	ValidFrom Optional[time.Time]
	ValidTo   Optional[time.Time]
	DayTypes  List[string]
	Pattern   string
	Passings  List[_ParsedPassing]
}

// Collects the raw document content before references are resolved.
type _NetexDocument struct {
	stop_ids   List[string]
	stop_names Dict[string, string]

	patterns      List[_ParsedPattern]
	periods       List[_ParsedOperatingPeriod]
	day_types     List[string]
	day_type_refs Dict[string, string]
	journeys      List[_ParsedJourney]
}

func _NewNetexDocument() *_NetexDocument {
	return &_NetexDocument{
		stop_ids:      NewList[string](100),
		stop_names:    NewDict[string, string](100),
		patterns:      NewList[_ParsedPattern](10),
		periods:       NewList[_ParsedOperatingPeriod](10),
		day_types:     NewList[string](10),
		day_type_refs: NewDict[string, string](10),
		journeys:      NewList[_ParsedJourney](100),
	}
}
