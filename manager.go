package main

import (
	"sync"
	"time"

	"github.com/ttpr0/netex-routing/comps"
	"github.com/ttpr0/netex-routing/graph"
	"github.com/ttpr0/netex-routing/parser"
	"github.com/ttpr0/netex-routing/timetable"
	. "github.com/ttpr0/netex-routing/util"
	"golang.org/x/exp/slog"
)

// Loads the feed of the configured NeTEx directory. A valid cache is used
// unless invalidation is requested, otherwise the directory is parsed and the
// cache rewritten.
func LoadFeed(config Config) (*timetable.Feed, error) {
	cache := config.CachePath()
	if cache != "" && config.Source.InvalidateCache {
		slog.Info("invalidating cache", "path", cache)
		comps.Remove(cache)
	}
	if cache != "" && !config.Source.InvalidateCache {
		feed, err := comps.Load(cache)
		if err == nil {
			slog.Info("loaded feed from cache", "path", cache, "stations", feed.Stations.Count())
			return feed, nil
		}
		slog.Info("cache not usable, parsing feed", "reason", err.Error())
	}

	feed, err := parser.ParseNetexDir(config.Source.Netex, config.Routing.Workers)
	if err != nil {
		return nil, err
	}
	if cache != "" {
		if err := comps.Store(feed, cache); err != nil {
			slog.Error("failed to write cache: " + err.Error())
		} else {
			slog.Info("wrote cache", "path", cache)
		}
	}
	return feed, nil
}

func NewRoutingManager(feed *timetable.Feed, config Config) *RoutingManager {
	return &RoutingManager{
		config: config,
		feed:   feed,
		graphs: NewDict[string, *graph.ConnectionGraph](4),
		mu:     &sync.Mutex{},
	}
}

type RoutingManager struct {
	config Config
	feed   *timetable.Feed
	graphs Dict[string, *graph.ConnectionGraph]
	mu     *sync.Mutex
}

// Returns the graph of date, building it on first use.
func (self *RoutingManager) GetGraph(date time.Time) *graph.ConnectionGraph {
	key := timetable.TruncateDate(date).Format(timetable.DATE_LAYOUT)

	self.mu.Lock()
	defer self.mu.Unlock()

	if self.graphs.ContainsKey(key) {
		return self.graphs.Get(key)
	}
	g := graph.BuildConnectionGraph(self.feed, date)
	self.graphs.Set(key, g)
	return g
}

// Returns the graph of the requested date, the configured date if empty.
func (self *RoutingManager) GetRequestGraph(date string) Optional[*graph.ConnectionGraph] {
	if date == "" {
		return Some(self.GetGraph(self.config.RoutingDate()))
	}
	d, err := timetable.ParseDate(date)
	if err != nil {
		return None[*graph.ConnectionGraph]()
	}
	return Some(self.GetGraph(d))
}

func (self *RoutingManager) _GetServiceConfig() Config {
	return self.config
}
