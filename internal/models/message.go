package models

import "fmt"

// Role identifies who authored a message
type Role string

const (
	RoleUser   Role = "User"
	RoleSystem Role = "System"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleSystem
}

// Avatar returns the short label shown next to a bubble
func (r Role) Avatar() string {
	if r == RoleUser {
		return "U"
	}
	return "AI"
}

// Message is one turn of a conversation. Treat it as a value: it is never
// changed after creation.
type Message struct {
	Role    Role
	Content string
}

// NewUserMessage creates a message authored by the user
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewSystemMessage creates a message authored by the model
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s", m.Role, m.Content)
}
