package gateway

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DeprecatedParam describes a query parameter scheduled for removal.
type DeprecatedParam struct {
	Name       string    // Parameter name
	SunsetDate time.Time // Date when the parameter stops being honored
	Successor  string    // Recommended replacement
}

// legacyWaypointsParam is the ;-separated index list superseded by the
// per-point separators flags.
var legacyWaypointsParam = DeprecatedParam{
	Name:       "waypoints",
	SunsetDate: time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC),
	Successor:  "separators",
}

// MarkDeprecated adds Deprecation, Sunset, and Warning headers to a response
// whose request used d. This helps clients migrate before the parameter is
// dropped.
func MarkDeprecated(c *fiber.Ctx, d DeprecatedParam) {
	// RFC 8594 Deprecation header
	c.Set("Deprecation", "true")

	// RFC 8594 Sunset header (HTTP-Date format)
	c.Set("Sunset", d.SunsetDate.UTC().Format(time.RFC1123))

	// Warning header (optional, RFC 7234)
	days := time.Until(d.SunsetDate).Hours() / 24
	c.Set("Warning", fmt.Sprintf(`299 - "Deprecated parameter %q, will sunset in %.0f days; use %s"`, d.Name, days, d.Successor))
}
