package gateway

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/waykit"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, upstream_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg)
}

// errUpstream returns a 502 error.
func errUpstream(c *fiber.Ctx, msg string) error {
	return newError(c, 502, "upstream_error", msg)
}

// errServiceUnavailable returns a 503 error.
func errServiceUnavailable(c *fiber.Ctx, msg string) error {
	return newError(c, 503, "service_unavailable", msg)
}

// upstreamError translates a waykit client failure into a gateway response.
// Service codes that mean "your request can't be routed" map to 4xx; anything
// else, including transport failures, is the upstream's problem and maps to
// 502.
func upstreamError(c *fiber.Ctx, err error) error {
	var apiErr *waykit.APIError
	if !errors.As(err, &apiErr) {
		return errUpstream(c, "routing service unreachable")
	}

	switch apiErr.Code {
	case "NoRoute", "NoSegment", "NoMatch":
		return errNotFound(c, apiErr.Message)
	case "InvalidInput", "ProfileNotFound", "TooManyCoordinates":
		return errBadRequest(c, apiErr.Message)
	}

	if apiErr.StatusCode == 401 || apiErr.StatusCode == 403 {
		// Our token, not the caller's, was rejected.
		return errServiceUnavailable(c, "routing service rejected gateway credentials")
	}
	if apiErr.StatusCode == 429 {
		return newError(c, 429, "rate_limited", "routing service rate limit exceeded")
	}
	return errUpstream(c, apiErr.Error())
}
