package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/waykit"
	"github.com/samirrijal/waykit/geo"
	"github.com/samirrijal/waykit/internal/pkg/config"
	"github.com/samirrijal/waykit/internal/pkg/logging"
)

const usage = `usage: wayctl <command> [flags] "<lon,lat;lon,lat;...>"

commands:
  route    compute itineraries through the given points
  match    snap a recorded location trace onto the road network

Run "wayctl <command> -h" for the command's flags. The upstream service
and credentials come from WAYKIT_UPSTREAM_* environment variables or a
config file under ./configs.
`

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "route":
		runRoute(os.Args[2:])
	case "match":
		runMatch(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}

// ---------------------------------------------------------------------------
// route
// ---------------------------------------------------------------------------

func runRoute(args []string) {
	fs := flag.NewFlagSet("route", flag.ExitOnError)
	profile := fs.String("profile", "", "routing profile (defaults to the configured one)")
	steps := fs.Bool("steps", false, "request and print turn-by-turn steps")
	alternatives := fs.Bool("alternatives", false, "request alternative itineraries")
	language := fs.String("language", "", "BCP 47 locale for instructions")
	asJSON := fs.Bool("json", false, "print the raw response as JSON")
	verbose := fs.Bool("v", false, "log outgoing requests to stderr")
	timeout := fs.Duration("timeout", 30*time.Second, "request timeout")
	fs.Parse(args)

	client, cfg := newClient(*verbose, *timeout)
	waypoints := parseTrace(fs.Arg(0))

	opts := waykit.NewRouteOptions(waypoints, pickProfile(*profile, cfg))
	opts.IncludesSteps = *steps
	opts.IncludesAlternativeRoutes = *alternatives
	opts.Locale = *language

	resp, err := client.Routes(context.Background(), opts)
	if err != nil {
		log.Fatalf("route: %v", err)
	}

	if *asJSON {
		printJSON(resp)
		return
	}

	beeline := geo.Distance(waypoints[0].Coordinate, waypoints[len(waypoints)-1].Coordinate)
	for i := range resp.Routes {
		printRoute(i, &resp.Routes[i], beeline, *steps)
	}
}

func printRoute(i int, r *waykit.Route, beeline float64, showSteps bool) {
	fmt.Printf("route %d: %s, %s\n", i+1, formatDistance(r.Distance), formatTravelTime(r.Duration))
	if beeline > 0 && r.Distance > 0 {
		fmt.Printf("  beeline %s, detour x%.2f\n", formatDistance(beeline), r.Distance/beeline)
	}
	for _, leg := range r.Legs {
		if leg.Summary != "" {
			fmt.Printf("  via %s (%s)\n", leg.Summary, formatDistance(leg.Distance))
		}
		if !showSteps {
			continue
		}
		for _, step := range leg.Steps {
			if step.Maneuver.Instruction == "" {
				continue
			}
			fmt.Printf("    %s (%s)\n", step.Maneuver.Instruction, formatDistance(step.Distance))
		}
	}
}

// ---------------------------------------------------------------------------
// match
// ---------------------------------------------------------------------------

func runMatch(args []string) {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	profile := fs.String("profile", "", "routing profile (defaults to the configured one)")
	tidy := fs.Bool("tidy", false, "resample noisy or redundant trace points upstream")
	steps := fs.Bool("steps", false, "request turn-by-turn steps")
	asJSON := fs.Bool("json", false, "print the raw response as JSON")
	verbose := fs.Bool("v", false, "log outgoing requests to stderr")
	timeout := fs.Duration("timeout", 30*time.Second, "request timeout")
	fs.Parse(args)

	client, cfg := newClient(*verbose, *timeout)
	waypoints := parseTrace(fs.Arg(0))

	opts := waykit.NewMatchOptions(waypoints, pickProfile(*profile, cfg))
	opts.ResamplesTraces = *tidy
	opts.IncludesSteps = *steps

	resp, err := client.Match(context.Background(), opts)
	if err != nil {
		log.Fatalf("match: %v", err)
	}

	if *asJSON {
		printJSON(resp)
		return
	}

	snapped := 0
	for _, tp := range resp.Tracepoints {
		if tp != nil {
			snapped++
		}
	}
	fmt.Printf("%d of %d trace points snapped\n", snapped, len(resp.Tracepoints))

	for i := range resp.Matchings {
		m := &resp.Matchings[i]
		fmt.Printf("matching %d: %s, %s, confidence %.2f\n",
			i+1, formatDistance(m.Distance), formatTravelTime(m.Duration), m.Confidence)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newClient(verbose bool, timeout time.Duration) (*waykit.Client, *config.Config) {
	cfg, err := config.Load("wayctl")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}

	client := waykit.NewClient(waykit.ClientConfig{
		BaseURL:     cfg.Upstream.BaseURL,
		AccessToken: cfg.Upstream.AccessToken,
		HTTPClient:  &http.Client{Timeout: timeout},
		Logger:      logging.New(os.Stderr, level, "text"),
	})
	return client, cfg
}

func pickProfile(flagValue string, cfg *config.Config) waykit.Profile {
	if flagValue != "" {
		return waykit.Profile(flagValue)
	}
	return waykit.Profile(cfg.Upstream.DefaultProfile)
}

func parseTrace(s string) []waykit.Waypoint {
	if s == "" {
		log.Fatal(`missing points argument: want "lon,lat;lon,lat;..."`)
	}

	slots := strings.Split(s, ";")
	if len(slots) < 2 {
		log.Fatalf("need at least 2 points, got %d", len(slots))
	}

	waypoints := make([]waykit.Waypoint, len(slots))
	for i, slot := range slots {
		parts := strings.Split(slot, ",")
		if len(parts) != 2 {
			log.Fatalf(`point %d: want "lon,lat", got %q`, i+1, slot)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			log.Fatalf("point %d: bad longitude %q", i+1, parts[0])
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			log.Fatalf("point %d: bad latitude %q", i+1, parts[1])
		}
		waypoints[i] = waykit.NewWaypoint(geo.Point{Longitude: lon, Latitude: lat})
	}
	return waypoints
}

func formatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}

func formatTravelTime(seconds float64) string {
	return time.Duration(seconds * float64(time.Second)).Round(time.Second).String()
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Println(string(out))
}
