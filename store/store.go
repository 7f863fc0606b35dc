// Package store manages conversation state and its persistence.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"turbochat/domain"
)

var (
	ErrNotFound        = errors.New("conversation not found")
	ErrIndexOutOfRange = errors.New("message index out of range")
)

// Persistence keys.
const (
	keyConversations = "conversations"
	keyActiveID      = "active_id"
	keySettings      = "settings"
)

// KV is the persistence boundary: get/set of opaque JSON blobs.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Close() error
}

// ConversationStore is the in-memory source of truth for conversations,
// mirrored to a KV backend. Every mutation re-serializes the whole
// conversation map plus the active id before returning.
type ConversationStore struct {
	mu            sync.RWMutex
	kv            KV
	conversations map[string]*domain.Conversation
	activeID      string
}

// NewConversationStore loads (or initializes) a store backed by kv.
func NewConversationStore(kv KV) (*ConversationStore, error) {
	s := &ConversationStore{
		kv:            kv,
		conversations: make(map[string]*domain.Conversation),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *ConversationStore) load() error {
	data, ok, err := s.kv.Get(keyConversations)
	if err != nil {
		return fmt.Errorf("failed to load conversations: %w", err)
	}
	if ok {
		if err := json.Unmarshal(data, &s.conversations); err != nil {
			return fmt.Errorf("failed to decode conversations: %w", err)
		}
	}

	data, ok, err = s.kv.Get(keyActiveID)
	if err != nil {
		return fmt.Errorf("failed to load active id: %w", err)
	}
	if ok {
		s.activeID = string(data)
	}

	// A stale active id pointing at a deleted conversation is dropped.
	if _, exists := s.conversations[s.activeID]; !exists {
		s.activeID = ""
	}
	return nil
}

// persistLocked writes the full store state plus the active id. Callers must
// hold the write lock. The two Set calls are not one transaction; a crash in
// between can leave an active id with no matching conversation, which load()
// resolves by dropping the stale id.
func (s *ConversationStore) persistLocked() error {
	data, err := json.Marshal(s.conversations)
	if err != nil {
		return fmt.Errorf("failed to encode conversations: %w", err)
	}
	if err := s.kv.Set(keyConversations, data); err != nil {
		return err
	}
	return s.kv.Set(keyActiveID, []byte(s.activeID))
}

// Create allocates a fresh conversation, makes it active and persists.
func (s *ConversationStore) Create() (domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := &domain.Conversation{
		ID:        "chat_" + uuid.New().String()[:8],
		Title:     "New chat",
		Messages:  []domain.Message{},
		CreatedAt: time.Now(),
	}
	s.conversations[conv.ID] = conv
	s.activeID = conv.ID

	if err := s.persistLocked(); err != nil {
		return domain.Conversation{}, err
	}
	return copyConversation(conv), nil
}

// Get returns a deep copy of the conversation.
func (s *ConversationStore) Get(id string) (domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return domain.Conversation{}, ErrNotFound
	}
	return copyConversation(conv), nil
}

// List returns all conversations without their messages, most recent first.
func (s *ConversationStore) List() []domain.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Conversation, 0, len(s.conversations))
	for _, conv := range s.conversations {
		item := copyConversation(conv)
		item.Messages = nil
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

// ActiveID returns the id of the active conversation.
func (s *ConversationStore) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// SetActive selects a conversation. Unknown ids are a silent no-op.
func (s *ConversationStore) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return nil
	}
	s.activeID = id
	return s.persistLocked()
}

// Delete removes a conversation. If it was active, the most recently created
// remaining conversation is selected; with none left a fresh one is created.
func (s *ConversationStore) Delete(id string) (domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conversations[id]; !ok {
		return domain.Conversation{}, ErrNotFound
	}
	delete(s.conversations, id)

	if s.activeID == id {
		s.activeID = ""
		var newest *domain.Conversation
		for _, conv := range s.conversations {
			if newest == nil || conv.CreatedAt.After(newest.CreatedAt) {
				newest = conv
			}
		}
		if newest != nil {
			s.activeID = newest.ID
		} else {
			conv := &domain.Conversation{
				ID:        "chat_" + uuid.New().String()[:8],
				Title:     "New chat",
				Messages:  []domain.Message{},
				CreatedAt: time.Now(),
			}
			s.conversations[conv.ID] = conv
			s.activeID = conv.ID
		}
	}

	if err := s.persistLocked(); err != nil {
		return domain.Conversation{}, err
	}
	active, ok := s.conversations[s.activeID]
	if !ok {
		return domain.Conversation{}, nil
	}
	return copyConversation(active), nil
}

// AppendMessage appends msg to the conversation and returns the new message
// count. The first message appended also derives the conversation title.
func (s *ConversationStore) AppendMessage(id string, msg domain.Message) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return 0, ErrNotFound
	}
	conv.Messages = append(conv.Messages, msg)
	if len(conv.Messages) == 1 {
		conv.Title = domain.DeriveTitle(msg.Content)
	}
	if err := s.persistLocked(); err != nil {
		return 0, err
	}
	return len(conv.Messages), nil
}

// ReplaceCompacted atomically overwrites memory and drops the first
// compacted messages from the list. The retained tail is re-derived from the
// live list here, not captured by the caller: messages appended while the
// summarization call was in flight stay in the conversation.
func (s *ConversationStore) ReplaceCompacted(id, memory string, compacted int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return ErrNotFound
	}
	if compacted > len(conv.Messages) {
		// The list shrank while the summary was produced; everything left
		// is already represented in the new memory.
		compacted = len(conv.Messages)
	}
	conv.Memory = memory
	conv.Messages = append([]domain.Message(nil), conv.Messages[compacted:]...)
	return s.persistLocked()
}

// EditMessage replaces the content at index, leaving the role unchanged.
func (s *ConversationStore) EditMessage(id string, index int, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return ErrNotFound
	}
	if index < 0 || index >= len(conv.Messages) {
		return ErrIndexOutOfRange
	}
	conv.Messages[index].Content = content
	return s.persistLocked()
}

// DeleteMessage removes the entry at index, shifting later entries down.
func (s *ConversationStore) DeleteMessage(id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, ok := s.conversations[id]
	if !ok {
		return ErrNotFound
	}
	if index < 0 || index >= len(conv.Messages) {
		return ErrIndexOutOfRange
	}
	conv.Messages = append(conv.Messages[:index], conv.Messages[index+1:]...)
	return s.persistLocked()
}

// GetSettings returns the persisted settings with defaults applied.
func (s *ConversationStore) GetSettings() (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var settings domain.Settings
	data, ok, err := s.kv.Get(keySettings)
	if err != nil {
		return settings, err
	}
	if ok {
		if err := json.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to decode settings: %w", err)
		}
	}
	settings.ApplyDefaults()
	return settings, nil
}

// SetSettings persists the settings.
func (s *ConversationStore) SetSettings(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return s.kv.Set(keySettings, data)
}

func copyConversation(conv *domain.Conversation) domain.Conversation {
	out := *conv
	out.Messages = make([]domain.Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	return out
}
