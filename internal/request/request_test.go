package request

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/cero-ai/cero-backend/internal/model"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return body
}

func TestNormalizeEquivalentShapes(t *testing.T) {
	payloads := map[string]string{
		"text":     `{"text":"hola"}`,
		"input":    `{"input":[{"role":"user","content":"hola"}]}`,
		"messages": `{"messages":[{"role":"user","content":"hola"}]}`,
		"prompt":   `{"prompt":"hola"}`,
	}

	for name, raw := range payloads {
		t.Run(name, func(t *testing.T) {
			req, ok := Normalize(decode(t, raw))
			if !ok {
				t.Fatal("expected a normalized request")
			}
			if req.Text != "hola" {
				t.Fatalf("text = %q, want %q", req.Text, "hola")
			}
			if len(req.History) != 0 {
				t.Fatalf("history = %v, want empty", req.History)
			}
		})
	}
}

func TestNormalizeTextWinsOverOtherShapes(t *testing.T) {
	body := decode(t, `{"text":"directo","input":[{"role":"user","content":"del input"}],"prompt":"del prompt"}`)

	req, ok := Normalize(body)
	if !ok || req.Text != "directo" {
		t.Fatalf("got (%q, %v), want the top-level text field", req.Text, ok)
	}
}

func TestNormalizeInputDerivesHistory(t *testing.T) {
	body := decode(t, `{"input":[
		{"role":"system","content":"eres Cero"},
		{"role":"user","content":"hola"},
		{"role":"assistant","content":"hola, ¿qué necesitas?"},
		{"role":"user","content":"agenda una reunión"}
	]}`)

	req, ok := Normalize(body)
	if !ok {
		t.Fatal("expected a normalized request")
	}
	if req.Text != "agenda una reunión" {
		t.Fatalf("text = %q", req.Text)
	}
	want := model.Conversation{
		{Role: model.RoleUser, Text: "hola"},
		{Role: model.RoleModel, Text: "hola, ¿qué necesitas?"},
	}
	if !reflect.DeepEqual(req.History, want) {
		t.Fatalf("history = %v, want %v", req.History, want)
	}
}

func TestNormalizeInputTrailingAssistantStillSuppliesText(t *testing.T) {
	body := decode(t, `{"input":[
		{"role":"user","content":"hola"},
		{"role":"assistant","content":"te escucho"}
	]}`)

	req, ok := Normalize(body)
	if !ok {
		t.Fatal("expected a normalized request")
	}
	if req.Text != "te escucho" {
		t.Fatalf("text = %q", req.Text)
	}
	want := model.Conversation{{Role: model.RoleUser, Text: "hola"}}
	if !reflect.DeepEqual(req.History, want) {
		t.Fatalf("history = %v, want %v", req.History, want)
	}
}

func TestNormalizeInputDropsEmptyAndSystemEntries(t *testing.T) {
	body := decode(t, `{"input":[
		{"role":"system","content":"prompt"},
		{"role":"user","content":""},
		{"role":"user","content":"lo único válido"}
	]}`)

	req, ok := Normalize(body)
	if !ok || req.Text != "lo único válido" {
		t.Fatalf("got (%q, %v)", req.Text, ok)
	}
	if len(req.History) != 0 {
		t.Fatalf("history = %v, want empty", req.History)
	}
}

func TestNormalizeInputHistoryIsSanitized(t *testing.T) {
	// An assistant greeting before the first user turn must be trimmed.
	body := decode(t, `{"input":[
		{"role":"assistant","content":"¡hola! soy Cero"},
		{"role":"user","content":"hola"},
		{"role":"user","content":"¿qué tengo hoy?"}
	]}`)

	req, ok := Normalize(body)
	if !ok {
		t.Fatal("expected a normalized request")
	}
	want := model.Conversation{{Role: model.RoleUser, Text: "hola"}}
	if !reflect.DeepEqual(req.History, want) {
		t.Fatalf("history = %v, want %v", req.History, want)
	}
}

func TestNormalizeMessagesTakesLastContentWithoutHistory(t *testing.T) {
	body := decode(t, `{"messages":[
		{"role":"user","content":"primero"},
		{"role":"assistant","content":"respuesta"},
		{"role":"user","content":"último"}
	]}`)

	req, ok := Normalize(body)
	if !ok || req.Text != "último" {
		t.Fatalf("got (%q, %v)", req.Text, ok)
	}
	if len(req.History) != 0 {
		t.Fatalf("history = %v, want empty", req.History)
	}
}

func TestNormalizeRejectsUnusableBodies(t *testing.T) {
	cases := map[string]string{
		"empty object":    `{}`,
		"whitespace text": `{"text":"   "}`,
		"empty input":     `{"input":[]}`,
		"system only":     `{"input":[{"role":"system","content":"x"}]}`,
		"wrong types":     `{"text":42,"prompt":true,"messages":"no"}`,
		"empty messages":  `{"messages":[]}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if req, ok := Normalize(decode(t, raw)); ok {
				t.Fatalf("expected no text, got %q", req.Text)
			}
		})
	}
}

func TestNormalizeTrimsText(t *testing.T) {
	req, ok := Normalize(decode(t, `{"prompt":"  hola  "}`))
	if !ok || req.Text != "hola" {
		t.Fatalf("got (%q, %v)", req.Text, ok)
	}
}
