package service

import "turbochat/domain"

// Conversation management pass-throughs. They exist so the transport layer
// depends on the service alone.

func (s *Service) CreateConversation() (domain.Conversation, error) {
	return s.store.Create()
}

func (s *Service) GetConversation(id string) (domain.Conversation, error) {
	return s.store.Get(id)
}

func (s *Service) ListConversations() []domain.Conversation {
	return s.store.List()
}

func (s *Service) ActiveConversationID() string {
	return s.store.ActiveID()
}

func (s *Service) SetActiveConversation(id string) error {
	return s.store.SetActive(id)
}

// DeleteConversation removes a conversation and returns the conversation
// that is active afterwards.
func (s *Service) DeleteConversation(id string) (domain.Conversation, error) {
	return s.store.Delete(id)
}

func (s *Service) EditMessage(conversationID string, index int, content string) error {
	return s.store.EditMessage(conversationID, index, content)
}

func (s *Service) DeleteMessage(conversationID string, index int) error {
	return s.store.DeleteMessage(conversationID, index)
}

func (s *Service) GetSettings() (domain.Settings, error) {
	return s.store.GetSettings()
}

func (s *Service) UpdateSettings(settings domain.Settings) error {
	return s.store.SetSettings(settings)
}
