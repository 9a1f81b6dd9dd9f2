// Package tasks exposes the user's default Google Tasks list to the
// assistant.
package tasks

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	gtasks "google.golang.org/api/tasks/v1"

	"github.com/cero-ai/cero-backend/internal/googleauth"
)

const StatusCompleted = "completed"

// Task is the slice of a task record the assistant consumes.
type Task struct {
	Title  string `json:"title"`
	Status string `json:"status"`
	Due    string `json:"due,omitempty"`
}

// Service is the task capability used by the assistant actions and the
// dashboard. CompleteTask matches by title because voice input carries no
// task IDs; found is false when no pending task matches.
type Service interface {
	ListTasks(ctx context.Context, token *oauth2.Token, showCompleted bool, maxResults int64) ([]Task, error)
	CompleteTask(ctx context.Context, token *oauth2.Token, title string) (completed string, found bool, err error)
}

// GoogleService implements Service against the Tasks v1 API on the user's
// default task list.
type GoogleService struct {
	auth *googleauth.Config
}

func NewGoogleService(auth *googleauth.Config) *GoogleService {
	return &GoogleService{auth: auth}
}

func (s *GoogleService) client(ctx context.Context, token *oauth2.Token) (*gtasks.Service, error) {
	svc, err := gtasks.NewService(ctx, option.WithTokenSource(s.auth.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("tasks: new service: %w", err)
	}
	return svc, nil
}

func (s *GoogleService) defaultListID(ctx context.Context, svc *gtasks.Service) (string, error) {
	lists, err := svc.Tasklists.List().MaxResults(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("tasks: list task lists: %w", err)
	}
	if len(lists.Items) == 0 {
		return "", nil
	}
	return lists.Items[0].Id, nil
}

func (s *GoogleService) ListTasks(ctx context.Context, token *oauth2.Token, showCompleted bool, maxResults int64) ([]Task, error) {
	svc, err := s.client(ctx, token)
	if err != nil {
		return nil, err
	}

	listID, err := s.defaultListID(ctx, svc)
	if err != nil {
		return nil, err
	}
	if listID == "" {
		return []Task{}, nil
	}

	call := svc.Tasks.List(listID).ShowCompleted(showCompleted)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	res, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("tasks: list tasks: %w", err)
	}

	result := make([]Task, 0, len(res.Items))
	for _, item := range res.Items {
		result = append(result, Task{Title: item.Title, Status: item.Status, Due: item.Due})
	}
	return result, nil
}

func (s *GoogleService) CompleteTask(ctx context.Context, token *oauth2.Token, title string) (string, bool, error) {
	svc, err := s.client(ctx, token)
	if err != nil {
		return "", false, err
	}

	listID, err := s.defaultListID(ctx, svc)
	if err != nil {
		return "", false, err
	}
	if listID == "" {
		return "", false, nil
	}

	pending, err := svc.Tasks.List(listID).ShowCompleted(false).Context(ctx).Do()
	if err != nil {
		return "", false, fmt.Errorf("tasks: list pending tasks: %w", err)
	}

	var match *gtasks.Task
	for _, t := range pending.Items {
		if strings.Contains(strings.ToLower(t.Title), strings.ToLower(title)) {
			match = t
			break
		}
	}
	if match == nil {
		return "", false, nil
	}

	update := &gtasks.Task{Id: match.Id, Title: match.Title, Status: StatusCompleted}
	if _, err := svc.Tasks.Update(listID, match.Id, update).Context(ctx).Do(); err != nil {
		return "", false, fmt.Errorf("tasks: complete task %q: %w", match.Title, err)
	}
	return match.Title, true, nil
}
