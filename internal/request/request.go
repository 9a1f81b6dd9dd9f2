// Package request reduces the payload shapes accepted on the webhook routes
// to one canonical (text, history) pair. The voice platform has shipped
// several body formats over time; each one gets its own parser and the
// parsers are tried in a fixed priority order, first match wins.
package request

import (
	"strings"

	"github.com/cero-ai/cero-backend/internal/model"
)

// parser inspects a decoded JSON body and reports whether it recognized the
// shape. Parsers never fail; an unrecognized shape just returns ok=false.
type parser func(body map[string]any) (model.NormalizedRequest, bool)

var parsers = []parser{
	parseText,
	parseInput,
	parseMessages,
	parsePrompt,
}

// Normalize extracts the current user text and prior turns from an inbound
// webhook body. ok is false when no parser found usable text; the caller is
// expected to answer with the fixed clarification reply instead of invoking
// the model.
func Normalize(body map[string]any) (model.NormalizedRequest, bool) {
	for _, parse := range parsers {
		req, ok := parse(body)
		if !ok {
			continue
		}
		req.Text = strings.TrimSpace(req.Text)
		if req.Text == "" {
			return model.NormalizedRequest{}, false
		}
		req.History = model.SanitizeHistory(req.History)
		return req, true
	}
	return model.NormalizedRequest{}, false
}

// parseText handles the direct top-level text field.
func parseText(body map[string]any) (model.NormalizedRequest, bool) {
	text, ok := stringField(body, "text")
	if !ok {
		return model.NormalizedRequest{}, false
	}
	return model.NormalizedRequest{Text: text}, true
}

// parseInput handles the custom-LLM "input" format: an ordered list of
// role-tagged messages. System and empty entries are dropped, the last
// remaining entry is the current turn and everything before it becomes
// history. A trailing non-user entry still supplies the text.
func parseInput(body map[string]any) (model.NormalizedRequest, bool) {
	msgs, ok := messageList(body, "input")
	if !ok {
		return model.NormalizedRequest{}, false
	}

	valid := msgs[:0]
	for _, m := range msgs {
		if m.role == "system" || m.content == "" {
			continue
		}
		valid = append(valid, m)
	}
	if len(valid) == 0 {
		return model.NormalizedRequest{}, false
	}

	last := valid[len(valid)-1]
	history := make(model.Conversation, 0, len(valid)-1)
	for _, m := range valid[:len(valid)-1] {
		role := model.RoleUser
		if m.role == "assistant" {
			role = model.RoleModel
		}
		history = append(history, model.Turn{Role: role, Text: m.content})
	}

	return model.NormalizedRequest{Text: last.content, History: history}, true
}

// parseMessages handles the legacy flat chat list: only the last entry's
// content is used, no history is derived.
func parseMessages(body map[string]any) (model.NormalizedRequest, bool) {
	msgs, ok := messageList(body, "messages")
	if !ok || len(msgs) == 0 {
		return model.NormalizedRequest{}, false
	}
	last := msgs[len(msgs)-1]
	if last.content == "" {
		return model.NormalizedRequest{}, false
	}
	return model.NormalizedRequest{Text: last.content}, true
}

func parsePrompt(body map[string]any) (model.NormalizedRequest, bool) {
	text, ok := stringField(body, "prompt")
	if !ok {
		return model.NormalizedRequest{}, false
	}
	return model.NormalizedRequest{Text: text}, true
}

type chatMessage struct {
	role    string
	content string
}

func stringField(body map[string]any, key string) (string, bool) {
	v, ok := body[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func messageList(body map[string]any, key string) ([]chatMessage, bool) {
	v, ok := body[key]
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	msgs := make([]chatMessage, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		role, _ := m["role"].(string)
		content, _ := m["content"].(string)
		msgs = append(msgs, chatMessage{role: role, content: content})
	}
	return msgs, true
}
