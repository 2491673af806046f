package comps

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

func _TestFeed() *timetable.Feed {
	jan_1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tt := &timetable.Timetable{
		Source:   "line_a.xml",
		Stations: List[string]{"Alpha", "Beta"},
		OperatingPeriods: List[timetable.OperatingPeriod]{
			timetable.NewOperatingPeriod(jan_1, jan_1.AddDate(0, 0, 2), 0, 2),
		},
		DayTypes: List[Optional[int32]]{Some[int32](0), None[int32]()},
		Journeys: List[timetable.Journey]{
			{
				ID:        "sj:1",
				ValidFrom: jan_1,
				ValidTo:   jan_1.AddDate(0, 1, 0),
				Days:      List[int32]{1, 0},
				Passings: List[timetable.Passing]{
					{Stop: 0, Departure: Some(timetable.TimeOfDay(28800))},
					{Stop: 1, Arrival: Some(timetable.TimeOfDay(29400))},
				},
			},
		},
	}
	return timetable.MergeTimetables(List[*timetable.Timetable]{tt})
}

func TestFeedCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.bin")
	feed := _TestFeed()

	require.NoError(t, Store(feed, path))
	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, feed.Stations.Names(), loaded.Stations.Names())
	require.Len(t, loaded.Timetables, 1)
	want := feed.Timetables[0]
	got := loaded.Timetables[0]
	assert.Equal(t, want.Source, got.Source)
	assert.Equal(t, want.DayTypes, got.DayTypes)
	assert.Equal(t, want.Journeys, got.Journeys)

	require.Len(t, got.OperatingPeriods, 1)
	period := got.OperatingPeriods[0]
	assert.True(t, period.From.Equal(want.OperatingPeriods[0].From))
	assert.True(t, period.To.Equal(want.OperatingPeriods[0].To))
	for day := 0; day < 3; day++ {
		date := period.From.AddDate(0, 0, day)
		assert.Equal(t, want.OperatingPeriods[0].IsValid(date), period.IsValid(date), "day %v", day)
	}

	info, err := LoadInfo(path)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Stations)
	assert.Equal(t, 1, info.Journeys)
	assert.Equal(t, []string{"line_a.xml"}, info.Sources)
}

func TestLoadInvalidCache(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.bin"))
	assert.Error(t, err)

	// valid zlib stream, wrong content
	path := filepath.Join(dir, "cache.bin")
	require.NoError(t, WriteCompressedFile([]byte("garbage!"), path))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidCache)

	// not compressed at all
	require.NoError(t, os.WriteFile(path, []byte("plain"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadTruncatedCache(t *testing.T) {
	data := _EncodeFeed(_TestFeed())
	_, err := _DecodeFeed(data[:len(data)-3])
	assert.ErrorIs(t, err, ErrInvalidCache)
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.bin")
	require.NoError(t, Store(_TestFeed(), path))

	Remove(path)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path + ".meta")
	assert.True(t, os.IsNotExist(err))
}
