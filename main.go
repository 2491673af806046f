package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/kr/pretty"
	"github.com/ttpr0/netex-routing/comps"
	"github.com/ttpr0/netex-routing/timetable"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"
)

var MANAGER *RoutingManager

func main() {
	app := NewApp(os.Stdout)
	if err := app.Run(os.Args); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func NewApp(out io.Writer) *cli.App {
	var config Config

	return &cli.App{
		Name:      "netex-routing",
		Usage:     "Earliest arrival routing on NeTEx timetables",
		Writer:    out,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "yaml config file",
				Value:   "./config.yaml",
			},
			&cli.StringFlag{
				Name:  "netex",
				Usage: "directory of NeTEx xml files",
			},
			&cli.StringFlag{
				Name:  "date",
				Usage: "routing date (2006-01-02)",
			},
			&cli.StringFlag{
				Name:  "depart-after",
				Usage: "earliest departure (15:04:05)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "number of parallel workers",
			},
			&cli.BoolFlag{
				Name:  "invalidate-cache",
				Usage: "ignore and rewrite the feed cache",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			config, err = LoadConfig(c)
			if err != nil {
				return err
			}
			return SetupLogging(os.Stderr, config.Log.Level)
		},
		Commands: []*cli.Command{
			{
				Name:  "arrivals",
				Usage: "Print the earliest arrival at every station reachable from a station",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "name of the departure station",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "print as csv",
					},
				},
				Action: func(c *cli.Context) error {
					manager, err := _NewManager(config)
					if err != nil {
						return err
					}
					g := manager.GetGraph(config.RoutingDate())
					rows, err := QueryArrivals(g, c.String("from"), config.DepartAfter())
					if err != nil {
						return err
					}
					if c.Bool("csv") {
						data, err := gocsv.MarshalString([]ArrivalRow(rows))
						if err != nil {
							return err
						}
						fmt.Fprint(c.App.Writer, data)
						return nil
					}
					for _, row := range rows {
						fmt.Fprintf(c.App.Writer, "%v\t%v\n", row.Arrival, row.Station)
					}
					return nil
				},
			},
			{
				Name:  "route",
				Usage: "Print the earliest arrival route between two stations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "to",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "algorithm",
						Usage: "dijkstra, astar or bidirect",
						Value: "dijkstra",
					},
				},
				Action: func(c *cli.Context) error {
					manager, err := _NewManager(config)
					if err != nil {
						return err
					}
					g := manager.GetGraph(config.RoutingDate())
					route, err := QueryRoute(g, c.String("from"), c.String("to"), config.DepartAfter(), c.String("algorithm"), config.Routing.MaxRange)
					if err != nil {
						return err
					}
					PrintRoute(c.App.Writer, route)
					return nil
				},
			},
			{
				Name:  "journey",
				Usage: "Print a journey of the feed",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "index",
						Usage:    "index of the journey in feed order",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "dump the journey struct",
					},
				},
				Action: func(c *cli.Context) error {
					feed, err := LoadFeed(config)
					if err != nil {
						return err
					}
					journey := feed.GetJourney(c.Int("index"))
					if !journey.HasValue() {
						return fmt.Errorf("journey %v not found, feed has %v journeys", c.Int("index"), feed.JourneyCount())
					}
					if c.Bool("raw") {
						pretty.Fprintf(c.App.Writer, "%# v\n", journey.Value)
						return nil
					}
					PrintJourney(c.App.Writer, feed, journey.Value)
					return nil
				},
			},
			{
				Name:  "cache",
				Usage: "Rebuild the feed cache",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "info",
						Usage: "only print the summary of the existing cache",
					},
				},
				Action: func(c *cli.Context) error {
					path := config.CachePath()
					if path == "" {
						return errors.New("no cache configured")
					}
					if !c.Bool("info") {
						config.Source.InvalidateCache = true
						if _, err := LoadFeed(config); err != nil {
							return err
						}
					}
					info, err := comps.LoadInfo(path)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "cache:      %v\n", path)
					fmt.Fprintf(c.App.Writer, "created:    %v\n", info.Created.Format(timetable.DATETIME_LAYOUT))
					fmt.Fprintf(c.App.Writer, "timetables: %v\n", info.Timetables)
					fmt.Fprintf(c.App.Writer, "stations:   %v\n", info.Stations)
					fmt.Fprintf(c.App.Writer, "journeys:   %v\n", info.Journeys)
					return nil
				},
			},
			{
				Name:  "serve",
				Usage: "Run the http api",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "overrides server.port",
					},
				},
				Action: func(c *cli.Context) error {
					manager, err := _NewManager(config)
					if err != nil {
						return err
					}
					MANAGER = manager

					port := config.Server.Port
					if c.IsSet("port") {
						port = c.Int("port")
					}
					app := NewServeMux()
					slog.Info("listening", "port", port)
					return http.ListenAndServe(fmt.Sprintf(":%v", port), app)
				},
			},
		},
	}
}

func NewServeMux() *http.ServeMux {
	app := http.NewServeMux()
	MapGet(app, "/v0/arrivals", HandleArrivalsRequest)
	MapGet(app, "/v0/routing", HandleRoutingRequest)
	MapGet(app, "/v0/stations", HandleStationsRequest)
	MapPost(app, "/v1/matrix", HandleMatrixRequest)
	return app
}

// Reads the config file if present and applies the global flags on top.
func LoadConfig(c *cli.Context) (Config, error) {
	config := DefaultConfig()
	file := c.String("config")
	if _, err := os.Stat(file); err == nil || c.IsSet("config") {
		config, err = ReadConfig(file)
		if err != nil {
			return config, err
		}
	}
	if c.IsSet("netex") {
		config.Source.Netex = c.String("netex")
	}
	if c.IsSet("date") {
		config.Routing.Date = c.String("date")
	}
	if c.IsSet("depart-after") {
		config.Routing.DepartAfter = c.String("depart-after")
	}
	if c.IsSet("workers") {
		config.Routing.Workers = c.Int("workers")
	}
	if c.IsSet("invalidate-cache") {
		config.Source.InvalidateCache = c.Bool("invalidate-cache")
	}
	if c.IsSet("log-level") {
		config.Log.Level = c.String("log-level")
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func _NewManager(config Config) (*RoutingManager, error) {
	feed, err := LoadFeed(config)
	if err != nil {
		return nil, err
	}
	return NewRoutingManager(feed, config), nil
}

//**********************************************************
// printing
//**********************************************************

func PrintRoute(w io.Writer, route RoutingResponse) {
	fmt.Fprintf(w, "%v %v -> %v %v (%v)\n", route.Departure, route.From, route.Arrival, route.To, FormatDuration(route.Duration))
	for _, leg := range route.Legs {
		fmt.Fprintf(w, "  %v %v -> %v %v\n", leg.Departure, leg.From, leg.Arrival, leg.To)
	}
}

func PrintJourney(w io.Writer, feed *timetable.Feed, journey *timetable.Journey) {
	fmt.Fprintf(w, "%v valid %v to %v\n", journey.ID, journey.ValidFrom.Format(timetable.DATE_LAYOUT), journey.ValidTo.Format(timetable.DATE_LAYOUT))
	for _, passing := range journey.Passings {
		arrival := "--:--:--"
		if passing.Arrival.HasValue() {
			arrival = passing.Arrival.Value.Format()
		}
		departure := "--:--:--"
		if passing.Departure.HasValue() {
			departure = passing.Departure.Value.Format()
		}
		fmt.Fprintf(w, "  %v %v %v\n", arrival, departure, feed.Stations.GetName(passing.Stop))
	}
}

func FormatDuration(seconds int32) string {
	var b strings.Builder
	if seconds >= 3600 {
		fmt.Fprintf(&b, "%vh", seconds/3600)
	}
	fmt.Fprintf(&b, "%vmin", (seconds%3600)/60)
	return b.String()
}
