package domain

// ChatRequest is one conversational turn handed to the answer pipeline.
// Appliance and Brand scope the session; SessionID keys follow-up context.
type ChatRequest struct {
	Query     string `json:"query"`
	Appliance string `json:"appliance,omitempty"`
	Brand     string `json:"brand,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// ChunkRef identifies a manual chunk: source document plus chunk ordinal.
type ChunkRef struct {
	FileName string `json:"file_name"`
	ChunkID  int    `json:"chunk_id"`
}

// RetrievedChunk is a single nearest-neighbor hit resolved to its text.
// Text may be empty when the chunk identity has no entry in the text lookup.
type RetrievedChunk struct {
	FileName string  `json:"file_name"`
	ChunkID  int     `json:"chunk_id"`
	Distance float64 `json:"distance"`
	Text     string  `json:"text"`
}

type Answer struct {
	Text       string           `json:"text"`
	Sources    []RetrievedChunk `json:"sources"`
	OutOfScope bool             `json:"out_of_scope,omitempty"`

	// Turn classification, for observability at the boundary.
	FollowUp  bool `json:"-"`
	Escalated bool `json:"-"`
}

// EscalationEvent is published when a turn matches major-repair keywords.
type EscalationEvent struct {
	SessionID string `json:"session_id,omitempty"`
	Brand     string `json:"brand,omitempty"`
	Appliance string `json:"appliance,omitempty"`
	Query     string `json:"query"`
	TollFree  string `json:"toll_free,omitempty"`
}
