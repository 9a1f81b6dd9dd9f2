package model

// Turn roles. The voice front end speaks in user/assistant terms; the model
// side of the conversation is always "model".
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one utterance attributed to the user or the model.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Conversation is an ordered list of turns, oldest first. A non-empty
// conversation always starts with a user turn; SanitizeHistory enforces that.
type Conversation []Turn

// NormalizedRequest is the canonical shape every inbound payload is reduced
// to. Text is never empty once a request reaches the orchestrator.
type NormalizedRequest struct {
	Text    string
	History Conversation
}

// SanitizeHistory drops any leading turns before the first user turn. A
// model turn without a preceding user turn is out of scope for the chat
// session. The operation is idempotent: sanitizing a sanitized conversation
// returns it unchanged.
func SanitizeHistory(history Conversation) Conversation {
	for i, t := range history {
		if t.Role == RoleUser {
			return history[i:]
		}
	}
	return Conversation{}
}
