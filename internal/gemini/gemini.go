// Package gemini adapts the google.golang.org/genai chat API to the
// assistant's model contract.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/cero-ai/cero-backend/internal/assistant"
	"github.com/cero-ai/cero-backend/internal/model"
)

const (
	maxOutputTokens = 256
	temperature     = 0.2
)

// Client implements assistant.ModelClient over a Gemini model with the
// assistant's actions declared as callable functions.
type Client struct {
	client  *genai.Client
	model   string
	prompt  *promptBuilder
	actions []*assistant.Action
}

// NewClient builds the adapter. timezone is the assistant's local timezone
// name, used for the per-request date in the system instruction.
func NewClient(client *genai.Client, modelName, timezone string, actions []*assistant.Action) *Client {
	return &Client{
		client:  client,
		model:   modelName,
		prompt:  newPromptBuilder(timezone),
		actions: actions,
	}
}

func (c *Client) tools() []*genai.Tool {
	declarations := make([]*genai.FunctionDeclaration, 0, len(c.actions))
	for _, a := range c.actions {
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:                 a.Name,
			Description:          a.Description,
			ParametersJsonSchema: a.Parameters,
		})
	}
	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

func (c *Client) StartChat(ctx context.Context, history model.Conversation) (assistant.Chat, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: c.prompt.build()}},
		},
		Tools: c.tools(),
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode: genai.FunctionCallingConfigModeAuto,
			},
		},
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: maxOutputTokens,
	}

	chat, err := c.client.Chats.Create(ctx, c.model, config, toGenAIHistory(history))
	if err != nil {
		return nil, fmt.Errorf("gemini: create chat: %w", err)
	}
	return &chatSession{chat: chat}, nil
}

type chatSession struct {
	chat *genai.Chat
}

func (s *chatSession) Send(ctx context.Context, text string) (*assistant.ModelTurn, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return nil, fmt.Errorf("gemini: send message: %w", err)
	}
	return parseResponse(resp), nil
}

func (s *chatSession) SendActionResult(ctx context.Context, name, result string) (*assistant.ModelTurn, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			Name:     name,
			Response: map[string]any{"content": result},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: send action result: %w", err)
	}
	return parseResponse(resp), nil
}

// parseResponse reduces a generation to the assistant's turn shape: the
// first function call wins, otherwise the concatenated candidate text. An
// empty response maps to an empty turn, never an error.
func parseResponse(resp *genai.GenerateContentResponse) *assistant.ModelTurn {
	turn := &assistant.ModelTurn{}
	if resp == nil || len(resp.Candidates) == 0 {
		return turn
	}

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.FunctionCall != nil && turn.Call == nil {
				turn.Call = &assistant.ActionCall{
					Name: part.FunctionCall.Name,
					Args: part.FunctionCall.Args,
				}
				continue
			}
			text.WriteString(part.Text)
		}
	}
	turn.Text = text.String()
	return turn
}

func toGenAIHistory(history model.Conversation) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		contents = append(contents, &genai.Content{
			Role:  turn.Role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	return contents
}
