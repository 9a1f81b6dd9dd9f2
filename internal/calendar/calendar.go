// Package calendar exposes the user's Google Calendar to the assistant.
package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/cero-ai/cero-backend/internal/googleauth"
)

// EventTime carries either a timed start (DateTime) or an all-day start
// (Date), mirroring the Calendar API.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Event is the slice of a calendar event the assistant consumes.
type Event struct {
	Summary string    `json:"summary"`
	Start   EventTime `json:"start"`
}

// ListParams bound an event listing. When neither TimeMin nor TimeMax is
// set the service defaults to "from now on", capped at 20 results.
type ListParams struct {
	TimeMin    string
	TimeMax    string
	MaxResults int64
}

// EventDetails describes an event to create. Times are ISO 8601 local
// times; the service attaches the configured timezone.
type EventDetails struct {
	Summary   string
	StartTime string
	EndTime   string
}

// Service is the calendar capability used by the assistant actions, the
// tool route and the dashboard.
type Service interface {
	ListEvents(ctx context.Context, token *oauth2.Token, params ListParams) ([]Event, error)
	CreateEvent(ctx context.Context, token *oauth2.Token, details EventDetails) (string, error)
}

// GoogleService implements Service against the Calendar v3 API, always on
// the user's primary calendar.
type GoogleService struct {
	auth     *googleauth.Config
	timezone string
}

func NewGoogleService(auth *googleauth.Config, timezone string) *GoogleService {
	return &GoogleService{auth: auth, timezone: timezone}
}

func (s *GoogleService) client(ctx context.Context, token *oauth2.Token) (*gcal.Service, error) {
	svc, err := gcal.NewService(ctx, option.WithTokenSource(s.auth.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("calendar: new service: %w", err)
	}
	return svc, nil
}

func (s *GoogleService) ListEvents(ctx context.Context, token *oauth2.Token, params ListParams) ([]Event, error) {
	svc, err := s.client(ctx, token)
	if err != nil {
		return nil, err
	}

	call := svc.Events.List("primary").
		SingleEvents(true).
		OrderBy("startTime")

	if params.TimeMin == "" && params.TimeMax == "" {
		params.TimeMin = time.Now().Format(time.RFC3339)
		if params.MaxResults == 0 {
			params.MaxResults = 20
		}
	}
	if params.TimeMin != "" {
		call = call.TimeMin(params.TimeMin)
	}
	if params.TimeMax != "" {
		call = call.TimeMax(params.TimeMax)
	}
	if params.MaxResults > 0 {
		call = call.MaxResults(params.MaxResults)
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: list events: %w", err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		e := Event{Summary: item.Summary}
		if item.Start != nil {
			e.Start = EventTime{DateTime: item.Start.DateTime, Date: item.Start.Date}
		}
		events = append(events, e)
	}
	return events, nil
}

// CreateEvent inserts the event and returns a confirmation that carries the
// event link. The spoken-reply cleanup strips the URL before synthesis.
func (s *GoogleService) CreateEvent(ctx context.Context, token *oauth2.Token, details EventDetails) (string, error) {
	svc, err := s.client(ctx, token)
	if err != nil {
		return "", err
	}

	event := &gcal.Event{
		Summary: details.Summary,
		Start:   &gcal.EventDateTime{DateTime: details.StartTime, TimeZone: s.timezone},
		End:     &gcal.EventDateTime{DateTime: details.EndTime, TimeZone: s.timezone},
	}

	created, err := svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar: insert event: %w", err)
	}
	return fmt.Sprintf("Evento creado: %s", created.HtmlLink), nil
}
