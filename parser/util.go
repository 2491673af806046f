package parser

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/bits-and-blooms/bitset"

	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

//*******************************************
// utility methods
//*******************************************

var _FRAMES = []string{"PublicationDelivery", "dataObjects", "CompositeFrame", "frames"}

// Checks whether the element path equals frames/<elems...>.
func _PathIs(path List[string], elems ...string) bool {
	if path.Length() != len(_FRAMES)+len(elems) {
		return false
	}
	for i, name := range _FRAMES {
		if path[i] != name {
			return false
		}
	}
	offset := len(_FRAMES)
	for i, name := range elems {
		if path[offset+i] != name {
			return false
		}
	}
	return true
}

func _GetAttr(elem xml.StartElement, name string) (string, error) {
	for _, attr := range elem.Attr {
		if attr.Name.Local == name {
			return attr.Value, nil
		}
	}
	return "", fmt.Errorf("%w: <%v> has no attribute %q", ErrMalformedValue, elem.Name.Local, name)
}

func _ParseDate(value string) (time.Time, error) {
	date, err := timetable.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedValue, err)
	}
	return date, nil
}

func _ParseTime(value string) (timetable.TimeOfDay, error) {
	t, err := timetable.ParseTimeOfDay(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedValue, err)
	}
	return t, nil
}

func _ParseOrder(value string) (int32, error) {
	order, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid order %q", ErrMalformedValue, value)
	}
	return int32(order), nil
}

// Bit i is set if the i-th character is '1'.
func _ParseDayBits(value string) *bitset.BitSet {
	bits := bitset.New(uint(len(value)))
	for i := 0; i < len(value); i++ {
		if value[i] == '1' {
			bits.Set(uint(i))
		}
	}
	return bits
}
