// Package chat holds the conversation state of a chat session and the pure
// projection used to render it.
package chat

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/diogo/cvischat/internal/models"
	"github.com/diogo/cvischat/internal/prompt"
)

// Submission errors
var (
	ErrEmptyInput = errors.New("input is empty")
	ErrBusy       = errors.New("a request is already in flight")
	ErrClosed     = errors.New("session is closed")
)

// State is the position of a session in the submit cycle
type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting-response"
	default:
		return "unknown"
	}
}

// Exchange is one accepted submission waiting for its reply
type Exchange struct {
	ID       string
	Prompt   string
	Messages int // conversation length including the new user message
}

// Result settles an exchange: either Reply or Err is set
type Result struct {
	Reply *models.Reply
	Err   error
}

// Session is the single owner of a conversation. All mutation goes through
// Submit and Complete.
type Session struct {
	mu           sync.Mutex
	conversation *models.Conversation
	builder      *prompt.Builder
	pending      string // exchange ID in flight, "" when idle
	lastErr      error
	closed       bool
	newID        func() string
}

// NewSession creates an empty session using window to select prompt history
func NewSession(window prompt.Window) *Session {
	return &Session{
		conversation: models.NewConversation(),
		builder:      prompt.NewBuilder(window),
		newID:        uuid.NewString,
	}
}

// Submit appends input as a User message and starts an exchange.
// Whitespace-only input and submissions while a reply is pending are rejected
// without touching the conversation.
func (s *Session) Submit(input string) (Exchange, error) {
	if strings.TrimSpace(input) == "" {
		return Exchange{}, ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Exchange{}, ErrClosed
	}
	if s.pending != "" {
		return Exchange{}, ErrBusy
	}

	s.conversation.Append(models.NewUserMessage(input))
	s.pending = s.newID()
	s.lastErr = nil

	msgs := s.conversation.Messages()
	return Exchange{
		ID:       s.pending,
		Prompt:   s.builder.Build(msgs),
		Messages: len(msgs),
	}, nil
}

// Complete settles the exchange with the given id. It reports whether the
// result was applied; results for unknown exchanges or a closed session are
// dropped.
func (s *Session) Complete(id string, res Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || id == "" || id != s.pending {
		return false
	}

	s.pending = ""
	if res.Err != nil {
		s.lastErr = res.Err
		return true
	}

	text := models.FallbackReply
	if res.Reply != nil && res.Reply.Text != "" {
		text = res.Reply.Text
	}
	s.conversation.Append(models.NewSystemMessage(text))
	return true
}

// Close stops the session from accepting further submissions or results
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.pending = ""
}

// Loading reports whether a reply is pending
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != ""
}

// State returns the current state
func (s *Session) State() State {
	if s.Loading() {
		return StateAwaitingResponse
	}
	return StateIdle
}

// PendingID returns the in-flight exchange id, or ""
func (s *Session) PendingID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Messages returns a copy of the conversation
func (s *Session) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation.Messages()
}

// Len returns the number of messages in the conversation
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation.Len()
}

// LastReply returns the most recent System message, if any
func (s *Session) LastReply() (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation.LastReply()
}

// LastError returns the failure of the most recent exchange, cleared by the
// next successful Submit
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError dismisses the last failure
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}
