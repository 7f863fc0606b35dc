// Package service implements the conversation controller and the memory
// compaction pipeline.
package service

import (
	"errors"
	"sync"

	"turbochat/config"
	"turbochat/llmclient"
	"turbochat/store"
)

var (
	// ErrNoAPIKey signals a configuration problem, distinct from transport
	// failures: the send is rejected before any network call.
	ErrNoAPIKey = errors.New("api key not configured")
	// ErrEmptyMessage rejects a send with neither text nor attachment.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrBusy rejects a send while another one is in flight for the same
	// conversation.
	ErrBusy = errors.New("send already in flight")
)

type Service struct {
	store  *store.ConversationStore
	llm    *llmclient.Client
	config *config.Config

	mu              sync.Mutex
	sendInFlight    map[string]bool
	compactInFlight map[string]bool
}

func New(store *store.ConversationStore, llm *llmclient.Client, cfg *config.Config) *Service {
	return &Service{
		store:           store,
		llm:             llm,
		config:          cfg,
		sendInFlight:    make(map[string]bool),
		compactInFlight: make(map[string]bool),
	}
}

// acquire marks a conversation busy in the given in-flight set, reporting
// whether it was free.
func (s *Service) acquire(set map[string]bool, conversationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set[conversationID] {
		return false
	}
	set[conversationID] = true
	return true
}

func (s *Service) release(set map[string]bool, conversationID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(set, conversationID)
}
