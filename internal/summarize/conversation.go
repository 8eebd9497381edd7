// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

// Role identifies the speaker of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation log.
type Turn struct {
	Role    Role   `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Conversation is an ordered, append-only turn log. Append returns a new
// Conversation and never mutates the receiver, so earlier states stay
// valid for inspection and replay.
type Conversation struct {
	turns []Turn
}

// NewConversation starts a conversation with the given system context.
func NewConversation(system string) Conversation {
	return Conversation{turns: []Turn{{Role: RoleSystem, Content: system}}}
}

// Append returns a new Conversation with the turn added.
func (c Conversation) Append(role Role, content string) Conversation {
	turns := make([]Turn, len(c.turns), len(c.turns)+1)
	copy(turns, c.turns)
	return Conversation{turns: append(turns, Turn{Role: role, Content: content})}
}

// Turns returns a copy of the turn log in order.
func (c Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c Conversation) Len() int {
	return len(c.turns)
}
