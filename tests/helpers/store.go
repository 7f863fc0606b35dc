// Package helpers provides shared test fixtures.
package helpers

import (
	"testing"

	"turbochat/store"
)

// NewTestStore builds a conversation store backed by an in-memory SQLite KV.
func NewTestStore(t *testing.T) *store.ConversationStore {
	t.Helper()

	kv, err := store.NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite kv: %v", err)
	}
	t.Cleanup(func() {
		_ = kv.Close()
	})

	s, err := store.NewConversationStore(kv)
	if err != nil {
		t.Fatalf("failed to create conversation store: %v", err)
	}
	return s
}
