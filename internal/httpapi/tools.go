package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cero-ai/cero-backend/internal/calendar"
	"github.com/cero-ai/cero-backend/internal/functions"
	"github.com/cero-ai/cero-backend/internal/tokenstore"
)

// handleCalendarTool is the direct tool route: the voice platform calls it
// with a flat action body instead of going through the model. Same
// permissive credential fallback as the webhook.
func (s *Server) handleCalendarTool(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"result": "No pude leer la solicitud."})
		return
	}

	token, err := tokenstore.Resolve(ctx, s.tokens, identity(r))
	if err != nil {
		s.logger.Error("tool route token lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"result": "Hubo un error técnico en el servidor Cero.",
		})
		return
	}
	if token == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"result": "Error: No has iniciado sesión en Cero. Por favor entra a la web y conecta tu calendario.",
		})
		return
	}

	action := functions.StringArg(body, "action")
	s.logger.Info("tool request", "action", action)

	var result string
	switch action {
	case "list_events":
		timeMin := functions.StringArg(body, "timeMin", "time_min")
		if timeMin == "" {
			timeMin = time.Now().Format(time.RFC3339)
		}
		events, err := s.calendar.ListEvents(ctx, token, calendar.ListParams{
			TimeMin: timeMin,
			TimeMax: functions.StringArg(body, "timeMax", "time_max"),
		})
		if err != nil {
			s.toolError(w, "list_events", err)
			return
		}
		result = s.formatEventsForSpeech(events)

	case "create_event":
		summary := functions.StringArg(body, "summary", "title")
		if summary == "" {
			summary = "Evento sin título"
		}
		startTime := functions.StringArg(body, "startTime", "start_time", "start")
		endTime := functions.StringArg(body, "endTime", "end_time", "end")
		if startTime == "" || endTime == "" {
			writeJSON(w, http.StatusOK, map[string]string{
				"result": "Error: No pude entender la fecha y hora de inicio o fin. Por favor repítelo.",
			})
			return
		}
		result, err = s.calendar.CreateEvent(ctx, token, calendar.EventDetails{
			Summary:   summary,
			StartTime: startTime,
			EndTime:   endTime,
		})
		if err != nil {
			s.toolError(w, "create_event", err)
			return
		}

	default:
		result = "Acción no reconocida."
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) toolError(w http.ResponseWriter, action string, err error) {
	s.logger.Error("tool action failed", "action", action, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"result": "Hubo un error técnico en el servidor Cero.",
	})
}

// formatEventsForSpeech renders events with local clock times, the way the
// voice platform reads them out.
func (s *Server) formatEventsForSpeech(events []calendar.Event) string {
	if len(events) == 0 {
		return "No encontré eventos en tu calendario para esas fechas."
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		when := ""
		if e.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, e.Start.DateTime); err == nil {
				when = t.In(s.location).Format("15:04")
			}
		}
		if when == "" {
			lines = append(lines, fmt.Sprintf("- %s (todo el día)", e.Summary))
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s a las %s", e.Summary, when))
	}
	return "Aquí tienes tus eventos:\n" + strings.Join(lines, "\n")
}
