package service

import (
	"context"
	"strings"

	"turbochat/domain"
	"turbochat/llmclient"
)

// Send runs one user turn against the conversation identified by
// conversationID: it appends the composed user message, calls the completion
// backend and appends either the assistant reply or an error-role notice.
// The returned message is whichever of the two was appended; the error
// return covers precondition failures only, transport failures are recorded
// in the conversation itself.
//
// The conversation id is captured here so a response always lands in the
// conversation it was requested for, even if the user switches away while
// the call is pending.
func (s *Service) Send(ctx context.Context, conversationID, text string, attachment *domain.Attachment) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && attachment == nil {
		return domain.Message{}, ErrEmptyMessage
	}

	settings, err := s.store.GetSettings()
	if err != nil {
		return domain.Message{}, err
	}
	if settings.APIKey == "" {
		return domain.Message{}, ErrNoAPIKey
	}

	if !s.acquire(s.sendInFlight, conversationID) {
		return domain.Message{}, ErrBusy
	}
	defer s.release(s.sendInFlight, conversationID)

	if _, err := s.store.Get(conversationID); err != nil {
		return domain.Message{}, err
	}

	// Attachment failures degrade to inline markers, they never abort the send.
	content := s.composeContent(ctx, settings, text, attachment)

	if _, err := s.store.AppendMessage(conversationID, domain.Message{Role: domain.RoleUser, Content: content}); err != nil {
		return domain.Message{}, err
	}

	conv, err := s.store.Get(conversationID)
	if err != nil {
		return domain.Message{}, err
	}

	req := &llmclient.ChatCompletionRequest{
		Model:    settings.Model,
		Messages: buildRequestMessages(settings, conv),
	}

	reply, err := s.llm.CreateChatCompletion(ctx, settings.APIKey, req)
	if err != nil {
		errMsg := domain.Message{Role: domain.RoleError, Content: "Error: " + err.Error()}
		if _, appendErr := s.store.AppendMessage(conversationID, errMsg); appendErr != nil {
			return domain.Message{}, appendErr
		}
		return errMsg, nil
	}

	assistantMsg := domain.Message{Role: domain.RoleAssistant, Content: reply}
	if _, err := s.store.AppendMessage(conversationID, assistantMsg); err != nil {
		return domain.Message{}, err
	}

	// Best-effort background compaction; the send cycle is already complete.
	go s.CompactMemory(conversationID)

	return assistantMsg, nil
}

// buildRequestMessages assembles the effective context: one synthetic system
// message carrying the base prompt, the conversation memory and the active
// mode directives, followed by the full message history. Error-role notices
// are local artifacts and are filtered out.
func buildRequestMessages(settings domain.Settings, conv domain.Conversation) []llmclient.ChatMessage {
	var b strings.Builder
	b.WriteString("[SYSTEM]\n")
	b.WriteString(settings.SystemPrompt)
	b.WriteString("\n[MEMORY]\n")
	b.WriteString(conv.Memory)
	b.WriteString("\n[MODES]\n")
	if settings.EcoMode {
		b.WriteString("ECONOMY: Be concise.\n")
	}
	if settings.SearchMode {
		b.WriteString("SEARCH: Use web browsing logic or provide citations.\n")
	}

	messages := make([]llmclient.ChatMessage, 0, len(conv.Messages)+1)
	messages = append(messages, llmclient.ChatMessage{Role: "system", Content: b.String()})
	for _, m := range conv.Messages {
		if m.Role == domain.RoleError {
			continue
		}
		messages = append(messages, llmclient.ChatMessage{Role: string(m.Role), Content: m.Content})
	}
	return messages
}
