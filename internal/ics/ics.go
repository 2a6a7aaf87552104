// Package ics renders minimal iCalendar files so guests can add an event
// to their calendar from its public page.
package ics

import (
	"fmt"
	"strings"
	"time"

	"invy/internal/domain"
)

const dateLayout = "20060102T150405Z"

// escaper handles the text escaping required by RFC 5545 for TEXT values.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\n", `\n`,
)

// Generate renders a single-VEVENT calendar for the event. Lines are CRLF
// separated per RFC 5545.
func Generate(event *domain.Event, now time.Time) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//INVY//RSVP Event//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@invy.rsvp", event.Slug),
		"DTSTAMP:" + now.UTC().Format(dateLayout),
		"DTSTART:" + event.StartsAt.UTC().Format(dateLayout),
		"SUMMARY:" + escaper.Replace(event.Title),
	}

	if event.Description != nil && *event.Description != "" {
		lines = append(lines, "DESCRIPTION:"+escaper.Replace(*event.Description))
	}

	if event.LocationText != "" {
		location := "LOCATION:" + escaper.Replace(event.LocationText)
		if event.LocationURL != nil && *event.LocationURL != "" {
			location += `\n` + *event.LocationURL
		}
		lines = append(lines, location)
	}

	lines = append(lines, "END:VEVENT", "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}
