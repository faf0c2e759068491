package entity

import (
	"encoding/json"
	"time"
)

type MessageKind string

const (
	MessageKindUser            MessageKind = "user"
	MessageKindBot             MessageKind = "bot"
	MessageKindFollowUpOptions MessageKind = "follow_up_options"
)

// ViewState is the assistant's navigation state: browsing the FAQ list or
// inside an active chat thread.
type ViewState uint8

const (
	ViewInitial ViewState = iota
	ViewChat
)

var viewStateNames = map[ViewState]string{
	ViewInitial: "initial",
	ViewChat:    "chat",
}

func (v ViewState) String() string {
	return viewStateNames[v]
}

type Message struct {
	ID           string
	Kind         MessageKind
	Content      string
	Timestamp    time.Time
	Options      []string
	RelevantInfo json.RawMessage
	IsError      bool
}

// NavigationSnapshot holds one level of back-navigation state: the view and
// message log captured right before the engine replaced them.
type NavigationSnapshot struct {
	PreviousView     *ViewState
	PreviousMessages []Message
}

// Session is the per-conversation state. The message log always starts with
// the seed greeting; the view is Initial exactly while the log holds nothing
// else. IsLoading is set while an oracle call is outstanding and blocks a
// second call for the same session.
type Session struct {
	ID           string
	Messages     []Message
	CurrentTopic string
	IsLoading    bool
	View         ViewState
	Snapshot     *NavigationSnapshot
	CreatedAt    time.Time
	LastActivity time.Time
}
