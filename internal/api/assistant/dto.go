package assistant

import (
	"encoding/json"
	"time"
)

// Fixed actions attached to every follow-up-options message.
const (
	ActionBrowseMoreFAQs = "browse_more_faqs"
	ActionReturnToParent = "return_to_parent_chat"
)

type SendMessageRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

type SelectQuestionRequest struct {
	Question string `json:"question" validate:"required,max=500"`
}

type MessageResponse struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Content      string          `json:"content"`
	Timestamp    time.Time       `json:"timestamp"`
	Options      []string        `json:"options,omitempty"`
	Actions      []string        `json:"actions,omitempty"`
	RelevantInfo json.RawMessage `json:"relevant_info,omitempty"`
	IsError      bool            `json:"is_error,omitempty"`
}

type SessionResponse struct {
	SessionID    string            `json:"session_id"`
	View         string            `json:"view"`
	CurrentTopic string            `json:"current_topic,omitempty"`
	IsLoading    bool              `json:"is_loading"`
	Messages     []MessageResponse `json:"messages"`
}

type BackResponse struct {
	// CloseHost tells the hosting surface to take over: there was nothing
	// left to navigate back to inside the assistant.
	CloseHost bool            `json:"close_host"`
	Session   SessionResponse `json:"session"`
}
