package gateway

import (
	"context"

	"github.com/samirrijal/waykit"
)

// RoutingService is the slice of the waykit client the handlers need.
type RoutingService interface {
	Routes(ctx context.Context, opts *waykit.RouteOptions) (*waykit.RouteResponse, error)
	Match(ctx context.Context, opts *waykit.MatchOptions) (*waykit.MatchResponse, error)
}

// Dependencies holds everything the HTTP handlers need.
type Dependencies struct {
	Routing RoutingService

	// DefaultProfile is used when a request names no profile.
	DefaultProfile waykit.Profile

	// MaxRouteWaypoints and MaxTracePoints cap request sizes before they
	// reach the upstream service.
	MaxRouteWaypoints int
	MaxTracePoints    int
}

// Limits mirror the upstream service's documented per-request caps.
const (
	defaultMaxRouteWaypoints = 25
	defaultMaxTracePoints    = 100
)

func (d *Dependencies) maxRouteWaypoints() int {
	if d.MaxRouteWaypoints > 0 {
		return d.MaxRouteWaypoints
	}
	return defaultMaxRouteWaypoints
}

func (d *Dependencies) maxTracePoints() int {
	if d.MaxTracePoints > 0 {
		return d.MaxTracePoints
	}
	return defaultMaxTracePoints
}

func (d *Dependencies) profileOr(raw string) waykit.Profile {
	if raw != "" {
		return waykit.Profile(raw)
	}
	if d.DefaultProfile != "" {
		return d.DefaultProfile
	}
	return waykit.ProfileDriving
}
