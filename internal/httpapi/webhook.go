package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/cero-ai/cero-backend/internal/assistant"
	"github.com/cero-ai/cero-backend/internal/request"
)

// maxWebhookBody bounds inbound payloads; the voice platform ships large
// system prompts inside the body.
const maxWebhookBody = 50 << 20

// respond runs the full pipeline for one webhook call and always yields
// speakable text. Malformed bodies and payloads without usable text get the
// fixed clarification reply without touching the model.
func (s *Server) respond(r *http.Request) string {
	var body map[string]any
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxWebhookBody)).Decode(&body); err != nil {
		s.logger.Warn("webhook body decode failed", "error", err)
		return assistant.ReplyNoText
	}

	req, ok := request.Normalize(body)
	if !ok {
		s.logger.Warn("no usable text in webhook payload")
		return assistant.ReplyNoText
	}

	return s.assistant.Respond(r.Context(), req, identity(r))
}

// handleWebhookJSON answers with the single JSON envelope. Always 200: the
// voice platform needs something to say, not an HTTP error.
func (s *Server) handleWebhookJSON(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"response": s.respond(r)})
}

// handleWebhookStream answers with the chat.completion.chunk event stream.
func (s *Server) handleWebhookStream(w http.ResponseWriter, r *http.Request) {
	text := s.respond(r)
	if err := writeStream(w, text); err != nil {
		// Headers are already out; all we can do is close the stream.
		s.logger.Error("stream write failed", "error", err)
	}
}
