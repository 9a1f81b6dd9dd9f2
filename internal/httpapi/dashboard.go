package httpapi

import (
	"net/http"
	"time"

	"github.com/cero-ai/cero-backend/internal/calendar"
	"github.com/cero-ai/cero-backend/internal/tasks"
)

type dashboardResponse struct {
	Events []calendar.Event `json:"events"`
	Tasks  []tasks.Task     `json:"tasks"`
}

// handleDashboard returns the current week's events plus all tasks for the
// web frontend. Unlike the voice routes this one does surface errors as
// HTTP statuses.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := s.tokens.Get(ctx, identity(r))
	if err != nil {
		s.logger.Error("dashboard token lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error al obtener datos del dashboard"})
		return
	}
	if token == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Usuario no autenticado"})
		return
	}

	monday, sunday := currentWeek(time.Now().In(s.location))

	events, err := s.calendar.ListEvents(ctx, token, calendar.ListParams{
		TimeMin:    monday.Format(time.RFC3339),
		TimeMax:    sunday.Format(time.RFC3339),
		MaxResults: 250,
	})
	if err != nil {
		s.logger.Error("dashboard events fetch failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error al obtener datos del dashboard"})
		return
	}

	taskList, err := s.tasks.ListTasks(ctx, token, true, 20)
	if err != nil {
		s.logger.Error("dashboard tasks fetch failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error al obtener datos del dashboard"})
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{Events: events, Tasks: taskList})
}

// currentWeek returns the Monday 00:00:00 and Sunday 23:59:59 bracketing
// now, in now's location.
func currentWeek(now time.Time) (time.Time, time.Time) {
	offset := int(time.Monday - now.Weekday())
	if now.Weekday() == time.Sunday {
		offset = -6
	}

	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, offset)
	sunday := monday.AddDate(0, 0, 6).Add(24*time.Hour - time.Second)
	return monday, sunday
}
