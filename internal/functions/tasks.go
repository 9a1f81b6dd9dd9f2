package functions

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"

	"github.com/cero-ai/cero-backend/internal/assistant"
	"github.com/cero-ai/cero-backend/internal/tasks"
)

func ListTasksAction(svc tasks.Service) *assistant.Action {
	return &assistant.Action{
		Name:        "list_tasks",
		Description: "Lists tasks from the user's default task list.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"showCompleted": map[string]any{
					"type":        "boolean",
					"description": "Include completed tasks. Defaults to false.",
				},
			},
		},
		Execute: func(ctx context.Context, token *oauth2.Token, args map[string]any) (string, error) {
			list, err := svc.ListTasks(ctx, token, BoolArg(args, "showCompleted", "show_completed"), 10)
			if err != nil {
				return "", fmt.Errorf("no se pudo acceder a las tareas: %w", err)
			}
			return FormatTasks(list), nil
		},
	}
}

func CompleteTaskAction(svc tasks.Service) *assistant.Action {
	return &assistant.Action{
		Name:        "complete_task",
		Description: "Marks a task as completed, matched by title.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"taskTitle": map[string]any{
					"type":        "string",
					"description": "Title (or part of the title) of the task to complete",
				},
			},
			"required": []string{"taskTitle"},
		},
		Execute: func(ctx context.Context, token *oauth2.Token, args map[string]any) (string, error) {
			title := StringArg(args, "taskTitle", "task_title", "title")
			if title == "" {
				return "¿Qué tarea quieres marcar como completada?", nil
			}

			completed, found, err := svc.CompleteTask(ctx, token, title)
			if err != nil {
				return "", fmt.Errorf("no se pudo completar la tarea: %w", err)
			}
			if !found {
				return fmt.Sprintf("No encontré una tarea que coincida con %q.", title), nil
			}
			return fmt.Sprintf("Tarea %q marcada como completada.", completed), nil
		},
	}
}

// FormatTasks renders a task listing as a speakable checklist.
func FormatTasks(list []tasks.Task) string {
	if len(list) == 0 {
		return "No hay tareas pendientes."
	}
	lines := make([]string, 0, len(list))
	for _, t := range list {
		mark := " "
		if t.Status == tasks.StatusCompleted {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s", mark, t.Title))
	}
	return strings.Join(lines, "\n")
}
