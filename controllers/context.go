package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jgecalumni/room-booking-app/middleware"
)

// mustIdentity reads the identity attached by middleware.Protected; routes
// using it are always behind that middleware.
func mustIdentity(c *fiber.Ctx) middleware.Identity {
	identity, _ := middleware.CurrentIdentity(c)
	return identity
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02",
}

// parseDate accepts the date formats clients send for booking ranges.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}
