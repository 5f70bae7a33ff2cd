package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is one turn of a conversation.
type Message struct {
	Content   string    `json:"content"`
	IsBot     bool      `json:"is_bot"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is an in-memory chat transcript.
type Conversation struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	StartedAt time.Time `json:"started_at"`
}

// Store keeps active conversations in memory. Transcripts are not
// persisted; a restart forgets them, which matches the assistant's
// stateless promise to shoppers.
type Store struct {
	mu            sync.Mutex
	conversations map[string]*Conversation
	now           func() time.Time
}

// NewStore constructs an empty conversation store.
func NewStore() *Store {
	return &Store{
		conversations: make(map[string]*Conversation),
		now:           time.Now,
	}
}

// Start opens a conversation seeded with the assistant greeting.
func (s *Store) Start() *Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv := &Conversation{
		ID:        uuid.NewString(),
		StartedAt: s.now(),
		Messages: []Message{
			{Content: Greeting, IsBot: true, Timestamp: s.now()},
		},
	}
	s.conversations[conv.ID] = conv
	return snapshot(conv)
}

// Append records a user message and its reply on an existing
// conversation. It reports false when the conversation is unknown.
func (s *Store) Append(id, userMessage, reply string) (*Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, false
	}
	conv.Messages = append(conv.Messages,
		Message{Content: userMessage, IsBot: false, Timestamp: s.now()},
		Message{Content: reply, IsBot: true, Timestamp: s.now()},
	)
	return snapshot(conv), true
}

// Get returns a conversation by ID.
func (s *Store) Get(id string) (*Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, false
	}
	return snapshot(conv), true
}

// snapshot copies a conversation while the store lock is held. Callers
// encode transcripts after the lock is released, so handing out the
// shared slice would race with concurrent appends.
func snapshot(conv *Conversation) *Conversation {
	out := *conv
	out.Messages = make([]Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return &out
}
