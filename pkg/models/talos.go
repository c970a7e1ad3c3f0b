// Package models holds the wire-contract types exchanged with the Talos
// agent, shared between the sync layer packages and view implementations.
package models

// HealthState is the tri-state condition of the remote agent as observed
// by the health poller.
type HealthState string

const (
	// HealthOnline means the last health poll succeeded with an ok status.
	HealthOnline HealthState = "online"
	// HealthDegraded means the last health poll succeeded but the agent
	// reported a non-ok status.
	HealthDegraded HealthState = "degraded"
	// HealthOffline means the last health poll itself failed.
	HealthOffline HealthState = "offline"
)

// HealthResponse mirrors GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// MetricsSnapshot mirrors GET /metrics. Pointer fields distinguish absent
// values from zero values; absent fields render as a placeholder instead of
// carrying over a prior snapshot.
type MetricsSnapshot struct {
	VRAM         *VRAMMetrics  `json:"vram,omitempty"`
	Gemini       *TokenMetrics `json:"gemini,omitempty"`
	TotalVectors *int64        `json:"total_vectors,omitempty"`
	Skills       *SkillCounts  `json:"skills,omitempty"`
}

// VRAMMetrics reports the agent's GPU memory arbiter state.
type VRAMMetrics struct {
	State string `json:"state"`
}

// TokenMetrics reports cloud-model token consumption.
type TokenMetrics struct {
	TokensUsedToday int64 `json:"tokens_used_today"`
}

// SkillCounts reports how many skills sit in each lifecycle bucket.
type SkillCounts struct {
	Active     int `json:"active"`
	Quarantine int `json:"quarantine"`
}

// Skill mirrors one element of GET /skills?state={tab}.
type Skill struct {
	SkillID         string    `json:"skill_id"`
	Version         string    `json:"version"`
	Code            SkillCode `json:"code"`
	QuarantineState string    `json:"quarantine_state"`
}

// SkillCode carries skill artifact metadata.
type SkillCode struct {
	Language string `json:"language,omitempty"`
}

// QuarantineAwaitingPromotion is the one lifecycle label the client
// interprets: it unlocks the promote action. All other values are opaque
// labels owned by the agent.
const QuarantineAwaitingPromotion = "awaiting_promotion"

// Promotable reports whether the skill is eligible for the promote action.
func (s Skill) Promotable() bool {
	return s.QuarantineState == QuarantineAwaitingPromotion
}

// PromoteRequest is the body of POST /skills/{id}/promote.
type PromoteRequest struct {
	TTSCode string `json:"tts_code"`
}

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the success body of POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// ErrorDetail is the structured rejection payload the agent attaches to
// non-2xx responses (promote failures, blocked chat).
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// ChatRole distinguishes transcript entries.
type ChatRole string

const (
	RoleUser    ChatRole = "user"
	RoleAgent   ChatRole = "agent"
	RoleBlocked ChatRole = "blocked"
)

// ChatMessage is one transcript entry. The transcript grows without bound
// for the life of the session.
type ChatMessage struct {
	Role ChatRole
	Text string
}
