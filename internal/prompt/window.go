package prompt

import "github.com/diogo/cvischat/internal/models"

// Window chooses which part of the history is sent with a request.
// Resending the full history makes every request grow with the conversation;
// a Window is where a bounded context plugs in.
type Window interface {
	Select(msgs []models.Message) []models.Message
}

// FullHistory sends every message.
type FullHistory struct{}

func (FullHistory) Select(msgs []models.Message) []models.Message {
	return msgs
}

// LastN keeps only the most recent N messages. N <= 0 keeps everything.
type LastN int

func (n LastN) Select(msgs []models.Message) []models.Message {
	if n <= 0 || len(msgs) <= int(n) {
		return msgs
	}
	return msgs[len(msgs)-int(n):]
}

// WindowFor maps the context_window setting to a Window
func WindowFor(size int) Window {
	if size <= 0 {
		return FullHistory{}
	}
	return LastN(size)
}

// Builder applies a Window before formatting
type Builder struct {
	Window Window
}

// NewBuilder creates a Builder; a nil window means full history
func NewBuilder(w Window) *Builder {
	if w == nil {
		w = FullHistory{}
	}
	return &Builder{Window: w}
}

// Build returns the prompt for msgs
func (b *Builder) Build(msgs []models.Message) string {
	return Format(b.Window.Select(msgs))
}
