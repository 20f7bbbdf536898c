package audit

import (
	"encoding/json"
	"time"
)

// TopicToolInvoked is the event bus topic carrying one Invocation per MCP
// tool call. The server publishes; the audit writer subscribes.
const TopicToolInvoked = "tool.invoked"

// Outcome represents the result of an audited tool invocation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// Invocation is a single audit log entry for one tool call.
// This is immutable — once created, it is never modified.
type Invocation struct {
	ID         string          `json:"id"`
	Tool       string          `json:"tool"`
	Actor      string          `json:"actor"`
	Params     json.RawMessage `json:"params,omitempty"`
	Outcome    Outcome         `json:"outcome"`
	Detail     string          `json:"detail,omitempty"`
	DurationMS int64           `json:"duration_ms"`
	CreatedAt  time.Time       `json:"created_at"`
}
