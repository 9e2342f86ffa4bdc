package models

// Conversation is the ordered, append-only history of a chat session.
// Insertion order is display order.
type Conversation struct {
	messages []Message
}

// NewConversation creates a conversation seeded with msgs
func NewConversation(msgs ...Message) *Conversation {
	c := &Conversation{}
	for _, m := range msgs {
		c.Append(m)
	}
	return c
}

// Append adds a message to the end of the conversation
func (c *Conversation) Append(msg Message) {
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of the history
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message, if any
func (c *Conversation) Last() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastReply returns the most recent System message, if any
func (c *Conversation) LastReply() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleSystem {
			return c.messages[i], true
		}
	}
	return Message{}, false
}
