// Package domain defines the core domain models for the chat service.
package domain

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleError marks a locally generated error notice. Error messages are
	// shown in the conversation but never sent to the completion backend.
	RoleError Role = "error"
)

// Message is a single entry in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is a titled, ordered sequence of messages plus a rolling
// summary of everything that was compacted away.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	Memory    string    `json:"memory"`
	CreatedAt time.Time `json:"created_at"`
}

// TitleLimit is the number of characters of the first user message used as
// the conversation title.
const TitleLimit = 30

// DeriveTitle truncates the first user message into a display title.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= TitleLimit {
		return content
	}
	return string(runes[:TitleLimit])
}

// CustomModel is a user-registered model entry.
type CustomModel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Settings holds the user-facing configuration. It is persisted alongside
// the conversations, not read from the environment.
type Settings struct {
	APIKey       string        `json:"api_key"`
	Model        string        `json:"model"`
	SystemPrompt string        `json:"system_prompt"`
	EcoMode      bool          `json:"eco_mode"`
	SearchMode   bool          `json:"search_mode"`
	CustomModels []CustomModel `json:"custom_models,omitempty"`
}

const (
	DefaultModel        = "deepseek/deepseek-chat"
	DefaultSystemPrompt = "You are a helpful assistant."
)

// ApplyDefaults fills in zero-valued settings fields.
func (s *Settings) ApplyDefaults() {
	if s.Model == "" {
		s.Model = DefaultModel
	}
	if s.SystemPrompt == "" {
		s.SystemPrompt = DefaultSystemPrompt
	}
}

// AttachmentKind distinguishes how an attachment payload is handled.
type AttachmentKind string

const (
	AttachmentKindImage AttachmentKind = "image"
	AttachmentKindText  AttachmentKind = "text"
)

// Attachment is an ingested file accompanying a user message. For images the
// payload is a data URL reference; for anything else it is the raw text.
type Attachment struct {
	Kind    AttachmentKind `json:"kind"`
	Payload string         `json:"payload"`
}
