// Package functions declares the closed set of actions the model may
// request, binding them to the calendar and tasks services. Every action
// resolves to speakable text; the model phrases it for the user.
package functions

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/cero-ai/cero-backend/internal/assistant"
	"github.com/cero-ai/cero-backend/internal/calendar"
)

func CreateCalendarEventAction(svc calendar.Service) *assistant.Action {
	return &assistant.Action{
		Name:        "create_calendar_event",
		Description: "Creates a new event in the user's Google Calendar.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"summary": map[string]any{
					"type":        "string",
					"description": "Title of the event",
				},
				"startTime": map[string]any{
					"type":        "string",
					"description": "Start time in ISO 8601 format (YYYY-MM-DDTHH:mm:ss)",
				},
				"endTime": map[string]any{
					"type":        "string",
					"description": "End time in ISO 8601 format (YYYY-MM-DDTHH:mm:ss)",
				},
			},
			"required": []string{"summary", "startTime", "endTime"},
		},
		Execute: func(ctx context.Context, token *oauth2.Token, args map[string]any) (string, error) {
			summary := StringArg(args, "summary", "title")
			if summary == "" {
				summary = "Evento sin título"
			}
			startTime := StringArg(args, "startTime", "start_time", "start")
			endTime := StringArg(args, "endTime", "end_time", "end")
			if startTime == "" || endTime == "" {
				return "No pude entender la fecha y hora de inicio o fin. Por favor repítelo.", nil
			}

			return svc.CreateEvent(ctx, token, calendar.EventDetails{
				Summary:   summary,
				StartTime: startTime,
				EndTime:   endTime,
			})
		},
	}
}

func ListCalendarEventsAction(svc calendar.Service) *assistant.Action {
	return &assistant.Action{
		Name:        "list_calendar_events",
		Description: "Lists upcoming events from the user's calendar.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"timeMin": map[string]any{
					"type":        "string",
					"description": "Start time to fetch events from (ISO 8601). Defaults to now.",
				},
				"maxResults": map[string]any{
					"type":        "integer",
					"description": "Maximum number of events to return.",
				},
			},
		},
		Execute: func(ctx context.Context, token *oauth2.Token, args map[string]any) (string, error) {
			events, err := svc.ListEvents(ctx, token, calendar.ListParams{
				TimeMin:    StringArg(args, "timeMin", "time_min"),
				TimeMax:    StringArg(args, "timeMax", "time_max"),
				MaxResults: IntArg(args, "maxResults", "max_results"),
			})
			if err != nil {
				return "", fmt.Errorf("no se pudo acceder al calendario: %w", err)
			}
			return FormatEvents(events), nil
		},
	}
}

// FormatEvents renders an event listing as speakable text. Shared with the
// direct tool route.
func FormatEvents(events []calendar.Event) string {
	if len(events) == 0 {
		return "No hay eventos próximos."
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		start := e.Start.DateTime
		if start == "" {
			start = e.Start.Date
		}
		lines = append(lines, fmt.Sprintf("%s - %s", start, e.Summary))
	}
	return strings.Join(lines, "\n")
}
