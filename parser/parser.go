package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/sourcegraph/conc/iter"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
)

// Parses a NeTEx file. Errors name the file.
func ParseNetexFile(netex_file string) (*timetable.Timetable, error) {
	file, err := os.Open(netex_file)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	tt, err := ParseNetex(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %v: %w", netex_file, err)
	}
	tt.Source = filepath.Base(netex_file)
	return tt, nil
}

// Returns the *.xml files of dir in lexical order.
func ListNetexFiles(dir string) (List[string], error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := NewList[string](len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			continue
		}
		files.Add(filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// Parses all NeTEx files in dir with up to workers files in parallel and merges
// them into a feed. File order is kept, so station indices do not depend on scheduling.
func ParseNetexDir(dir string, workers int) (*timetable.Feed, error) {
	files, err := ListNetexFiles(dir)
	if err != nil {
		return nil, err
	}
	if files.Length() == 0 {
		return nil, fmt.Errorf("no NeTEx files found in %v", dir)
	}
	slog.Info("parsing NeTEx files", "dir", dir, "files", files.Length(), "workers", workers)

	var counter atomic.Int32
	mapper := iter.Mapper[string, *timetable.Timetable]{
		MaxGoroutines: workers,
	}
	timetables, err := mapper.MapErr(files, func(file *string) (*timetable.Timetable, error) {
		count := counter.Add(1)
		if count%100 == 0 {
			slog.Info(fmt.Sprintf("parsing %v %v", count, *file))
		}
		return ParseNetexFile(*file)
	})
	if err != nil {
		return nil, err
	}
	return timetable.MergeTimetables(timetables), nil
}
