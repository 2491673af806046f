package comps

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

var ErrInvalidCache = errors.New("comps: invalid cache file")

//*******************************************
// feed io
//*******************************************

// Summary written next to the cache file.
type CacheInfo struct {
	Created    time.Time `json:"created"`
	Stations   int       `json:"stations"`
	Timetables int       `json:"timetables"`
	Journeys   int       `json:"journeys"`
	Sources    []string  `json:"sources"`
}

// Writes the feed compressed to path and its summary to path + ".meta".
func Store(feed *timetable.Feed, path string) error {
	data := _EncodeFeed(feed)
	if err := WriteCompressedFile(data, path); err != nil {
		return fmt.Errorf("writing cache %v: %w", path, err)
	}

	sources := make([]string, 0, feed.Timetables.Length())
	for _, tt := range feed.Timetables {
		sources = append(sources, tt.Source)
	}
	info := CacheInfo{
		Created:    time.Now(),
		Stations:   feed.Stations.Count(),
		Timetables: feed.Timetables.Length(),
		Journeys:   feed.JourneyCount(),
		Sources:    sources,
	}
	return WriteJSONToFile(info, path+".meta")
}

func Load(path string) (*timetable.Feed, error) {
	data, err := ReadCompressedFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cache %v: %w", path, err)
	}
	feed, err := _DecodeFeed(data)
	if err != nil {
		return nil, fmt.Errorf("reading cache %v: %w", path, err)
	}
	return feed, nil
}

func LoadInfo(path string) (CacheInfo, error) {
	return ReadJSONFromFile[CacheInfo](path + ".meta")
}

func Remove(path string) {
	os.Remove(path)
	os.Remove(path + ".meta")
}
