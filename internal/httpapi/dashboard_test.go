package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/cero-ai/cero-backend/internal/calendar"
	"github.com/cero-ai/cero-backend/internal/tasks"
)

func TestDashboardRequiresAuth(t *testing.T) {
	s := newTestServer(t, Deps{})

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Usuario no autenticado" {
		t.Fatalf("body = %v", body)
	}
}

func TestDashboardReturnsWeekEventsAndTasks(t *testing.T) {
	var gotParams calendar.ListParams
	var gotShowCompleted bool
	var gotMax int64

	calSvc := &fakeCalendarService{
		listEvents: func(ctx context.Context, token *oauth2.Token, params calendar.ListParams) ([]calendar.Event, error) {
			gotParams = params
			return []calendar.Event{{Summary: "Standup"}}, nil
		},
	}
	taskSvc := &fakeTasksService{
		listTasks: func(ctx context.Context, token *oauth2.Token, showCompleted bool, maxResults int64) ([]tasks.Task, error) {
			gotShowCompleted = showCompleted
			gotMax = maxResults
			return []tasks.Task{{Title: "Comprar pan", Status: "needsAction"}}, nil
		},
	}
	s := newTestServer(t, Deps{Tokens: tokensWith(t, "demo-user"), Calendar: calSvc, Tasks: taskSvc})

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if gotParams.MaxResults != 250 {
		t.Fatalf("events max results = %d", gotParams.MaxResults)
	}
	if !gotShowCompleted || gotMax != 20 {
		t.Fatalf("tasks query = (%v, %d), want (true, 20)", gotShowCompleted, gotMax)
	}

	min, err := time.Parse(time.RFC3339, gotParams.TimeMin)
	if err != nil {
		t.Fatal(err)
	}
	max, err := time.Parse(time.RFC3339, gotParams.TimeMax)
	if err != nil {
		t.Fatal(err)
	}
	if min.Weekday() != time.Monday {
		t.Fatalf("week starts on %v", min.Weekday())
	}
	if max.Weekday() != time.Sunday {
		t.Fatalf("week ends on %v", max.Weekday())
	}

	var body dashboardResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Events) != 1 || body.Events[0].Summary != "Standup" {
		t.Fatalf("events = %+v", body.Events)
	}
	if len(body.Tasks) != 1 || body.Tasks[0].Title != "Comprar pan" {
		t.Fatalf("tasks = %+v", body.Tasks)
	}
}

func TestDashboardSurfacesServiceErrors(t *testing.T) {
	calSvc := &fakeCalendarService{
		listEvents: func(ctx context.Context, token *oauth2.Token, params calendar.ListParams) ([]calendar.Event, error) {
			return nil, context.DeadlineExceeded
		},
	}
	s := newTestServer(t, Deps{Tokens: tokensWith(t, "demo-user"), Calendar: calSvc})

	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestCurrentWeek(t *testing.T) {
	loc := time.FixedZone("ART", -3*3600)
	cases := []struct {
		name string
		now  time.Time
	}{
		{"monday", time.Date(2026, 8, 24, 9, 0, 0, 0, loc)},
		{"midweek", time.Date(2026, 8, 26, 15, 30, 0, 0, loc)},
		{"saturday", time.Date(2026, 8, 29, 23, 59, 0, 0, loc)},
		{"sunday", time.Date(2026, 8, 30, 0, 1, 0, 0, loc)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			monday, sunday := currentWeek(tc.now)

			wantMonday := time.Date(2026, 8, 24, 0, 0, 0, 0, loc)
			wantSunday := time.Date(2026, 8, 30, 23, 59, 59, 0, loc)
			if !monday.Equal(wantMonday) {
				t.Fatalf("monday = %v, want %v", monday, wantMonday)
			}
			if !sunday.Equal(wantSunday) {
				t.Fatalf("sunday = %v, want %v", sunday, wantSunday)
			}
			if tc.now.Before(monday) || tc.now.After(sunday) {
				t.Fatalf("now %v outside its own week [%v, %v]", tc.now, monday, sunday)
			}
		})
	}
}
