package memory

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Message is a single transcript entry. Content is the deterministic JSON
// serialization of the envelope exchanged in that turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	TurnID  string `json:"turn_id,omitempty"`
}

// Options configures a Memory instance.
type Options struct {
	// MaxMessages bounds the transcript length. When the bound is exceeded
	// the oldest messages are dropped. Zero means unbounded.
	MaxMessages int
}

// Memory is an append-only conversation log. The only operation permitted
// to discard history is Reset (or window trimming when MaxMessages is set).
type Memory struct {
	messages      []Message
	maxMessages   int
	currentTurnID string
}

// New creates an empty Memory.
func New(optFns ...func(o *Options)) *Memory {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Memory{maxMessages: opts.MaxMessages}
}

// NewTurn starts a new conversation turn and returns its generated ID.
// Messages added afterwards are tagged with this ID until the next call.
func (m *Memory) NewTurn() string {
	m.currentTurnID = uuid.NewString()
	return m.currentTurnID
}

// CurrentTurnID returns the active turn ID, creating one if none exists yet.
func (m *Memory) CurrentTurnID() string {
	if m.currentTurnID == "" {
		return m.NewTurn()
	}
	return m.currentTurnID
}

// AddMessage appends a message under the current turn.
func (m *Memory) AddMessage(role, content string) {
	m.messages = append(m.messages, Message{
		Role:    role,
		Content: content,
		TurnID:  m.CurrentTurnID(),
	})
	m.trim()
}

// trim enforces the MaxMessages window by dropping the oldest entries.
func (m *Memory) trim() {
	if m.maxMessages <= 0 || len(m.messages) <= m.maxMessages {
		return
	}
	overflow := len(m.messages) - m.maxMessages
	m.messages = append([]Message(nil), m.messages[overflow:]...)
}

// History returns the ordered transcript as a copy; mutating the returned
// slice never affects the memory.
func (m *Memory) History() []Message {
	out := make([]Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Len returns the number of stored messages.
func (m *Memory) Len() int { return len(m.messages) }

// Copy returns an independent structural snapshot. Later mutation of either
// memory never affects the other.
func (m *Memory) Copy() *Memory {
	c := &Memory{
		messages:      make([]Message, len(m.messages)),
		maxMessages:   m.maxMessages,
		currentTurnID: m.currentTurnID,
	}
	copy(c.messages, m.messages)
	return c
}

// Reset discards the transcript and the active turn.
func (m *Memory) Reset() {
	m.messages = nil
	m.currentTurnID = ""
}

// Dump serializes the transcript to JSON for caller-driven persistence.
func (m *Memory) Dump() ([]byte, error) {
	return json.Marshal(m.messages)
}

// Load replaces the transcript with a previously dumped one.
func (m *Memory) Load(data []byte) error {
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return err
	}
	m.messages = msgs
	m.trim()
	return nil
}
