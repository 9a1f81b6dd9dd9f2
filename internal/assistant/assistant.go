// Package assistant drives one model turn: resolve the caller's credential,
// submit the text with its history to the language model under a wall-clock
// budget, execute at most one requested action, and return speakable text.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/cero-ai/cero-backend/internal/model"
	"github.com/cero-ai/cero-backend/internal/tokenstore"
)

// ActionCall is a tool invocation requested by the model.
type ActionCall struct {
	Name string
	Args map[string]any
}

// ModelTurn is one model reply: either direct text or a single requested
// action. A reply with neither means the model produced no candidates.
type ModelTurn struct {
	Text string
	Call *ActionCall
}

// Chat is one model conversation in progress.
type Chat interface {
	Send(ctx context.Context, text string) (*ModelTurn, error)

	// SendActionResult feeds the textual outcome of the named action back
	// to the model and returns its follow-up reply.
	SendActionResult(ctx context.Context, name, result string) (*ModelTurn, error)
}

// ModelClient starts chats seeded with prior turns.
type ModelClient interface {
	StartChat(ctx context.Context, history model.Conversation) (Chat, error)
}

// Action is one entry of the closed action enumeration. Execute returns
// speakable result text; errors are folded into the conversation as text,
// they never surface to the caller.
type Action struct {
	Name        string
	Description string
	Parameters  map[string]any
	Execute     func(ctx context.Context, token *oauth2.Token, args map[string]any) (string, error)
}

const (
	defaultTimeout       = 5 * time.Second
	defaultMaxConcurrent = 32
)

// Options tune the turn budget. Zero values pick the defaults.
type Options struct {
	// Timeout bounds one whole model turn, tool round included.
	Timeout time.Duration

	// MaxConcurrent caps in-flight model turns process-wide so sustained
	// timeouts cannot pile up unbounded model calls.
	MaxConcurrent int
}

type Assistant struct {
	modelClient ModelClient
	store       tokenstore.Store
	logger      *slog.Logger
	actions     map[string]*Action
	timeout     time.Duration
	sem         chan struct{}
}

func New(modelClient ModelClient, store tokenstore.Store, logger *slog.Logger, opts Options) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}
	return &Assistant{
		modelClient: modelClient,
		store:       store,
		logger:      logger,
		actions:     make(map[string]*Action),
		timeout:     opts.Timeout,
		sem:         make(chan struct{}, opts.MaxConcurrent),
	}
}

func (a *Assistant) AddAction(action *Action) error {
	if action == nil {
		return fmt.Errorf("action cannot be nil")
	}
	if action.Name == "" {
		return fmt.Errorf("action name cannot be empty")
	}
	if action.Execute == nil {
		return fmt.Errorf("action implementation cannot be nil")
	}
	a.actions[action.Name] = action
	return nil
}

// Respond runs one turn for the given user and always returns speakable
// text, already cleaned for synthesis.
func (a *Assistant) Respond(ctx context.Context, req model.NormalizedRequest, userID string) string {
	token, err := tokenstore.Resolve(ctx, a.store, userID)
	if err != nil {
		a.logger.Error("token lookup failed", "user_id", userID, "error", err)
		return ReplyTechnicalError
	}
	if token == nil {
		a.logger.Info("no credential stored, prompting sign-in", "user_id", userID)
		return ReplySignIn
	}

	text := Clean(a.boundedTurn(ctx, req, token))
	if text == "" {
		return ReplyProblem
	}
	return text
}

// boundedTurn races the model turn against the configured timeout. The
// deadline context is handed to the model call so the losing side stops
// consuming resources instead of being silently abandoned.
func (a *Assistant) boundedTurn(ctx context.Context, req model.NormalizedRequest, token *oauth2.Token) string {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan string, 1)
	go func() {
		select {
		case a.sem <- struct{}{}:
			defer func() { <-a.sem }()
		case <-ctx.Done():
			done <- ReplyStillThinking
			return
		}
		done <- a.turnWithRetry(ctx, req, token)
	}()

	select {
	case <-ctx.Done():
		a.logger.Warn("model turn exceeded budget", "timeout", a.timeout)
		return ReplyStillThinking
	case text := <-done:
		return text
	}
}

// turnWithRetry runs the turn and, on a non-timeout failure with non-empty
// history, retries once with the history cleared. Losing context beats
// crashing.
func (a *Assistant) turnWithRetry(ctx context.Context, req model.NormalizedRequest, token *oauth2.Token) string {
	text, err := a.turn(ctx, req.Text, req.History, token)
	if err == nil {
		return text
	}
	if ctx.Err() != nil {
		return ReplyStillThinking
	}

	a.logger.Warn("model turn failed", "error", err, "history_len", len(req.History))
	if len(req.History) == 0 {
		return ReplyModelError
	}

	text, err = a.turn(ctx, req.Text, nil, token)
	if err != nil {
		if ctx.Err() != nil {
			return ReplyStillThinking
		}
		a.logger.Error("stateless retry failed", "error", err)
		return ReplySeriousTrouble
	}
	return text
}

// turn performs one conversation round with at most one tool call.
func (a *Assistant) turn(ctx context.Context, text string, history model.Conversation, token *oauth2.Token) (string, error) {
	chat, err := a.modelClient.StartChat(ctx, history)
	if err != nil {
		return "", err
	}

	reply, err := chat.Send(ctx, text)
	if err != nil {
		return "", err
	}

	if reply.Call != nil {
		result := a.executeAction(ctx, token, reply.Call)
		reply, err = chat.SendActionResult(ctx, reply.Call.Name, result)
		if err != nil {
			return "", err
		}
	}

	if reply.Text == "" {
		return ReplyNoCandidates, nil
	}
	return reply.Text, nil
}

// executeAction dispatches one requested action. Names outside the
// enumeration are terminal: no service is contacted and no retry happens.
func (a *Assistant) executeAction(ctx context.Context, token *oauth2.Token, call *ActionCall) string {
	action, ok := a.actions[call.Name]
	if !ok {
		a.logger.Warn("model requested unknown action", "name", call.Name)
		return ReplyUnknownAction
	}

	a.logger.Info("executing action", "name", call.Name)
	result, err := action.Execute(ctx, token, call.Args)
	if err != nil {
		a.logger.Error("action failed", "name", call.Name, "error", err)
		return fmt.Sprintf("Error al ejecutar la acción: %v", err)
	}
	return result
}
