package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"turbochat/domain"
	"turbochat/llmclient"
)

// summarizeFormat instructs the backend to merge the existing memory with a
// transcript of the messages being compacted away.
const summarizeFormat = `Analyze this conversation part.
CURRENT MEMORY: "%s"
NEW PART: "%s"
TASK: Merge them into one concise summary. Keep user goals, facts, tech stack.
Output ONLY the summary.`

// CompactMemory summarizes everything but the last CompactKeep messages of
// the conversation into its memory, once the history grows past
// CompactThreshold. It is a best-effort background step: every failure is
// logged and swallowed, leaving the conversation untouched. At most one
// compaction runs per conversation; concurrent triggers are dropped.
func (s *Service) CompactMemory(conversationID string) {
	if !s.acquire(s.compactInFlight, conversationID) {
		return
	}
	defer s.release(s.compactInFlight, conversationID)

	conv, err := s.store.Get(conversationID)
	if err != nil {
		log.Printf("WARN: compaction skipped, %v", err)
		return
	}

	threshold := s.config.CompactThreshold
	keep := s.config.CompactKeep
	if keep >= threshold {
		// Misconfigured retention would leave nothing to compress.
		log.Printf("WARN: compaction disabled, keep %d >= threshold %d", keep, threshold)
		return
	}
	if len(conv.Messages) <= threshold {
		return
	}

	toCompress := conv.Messages[:len(conv.Messages)-keep]
	if len(toCompress) == 0 {
		return
	}

	lines := make([]string, 0, len(toCompress))
	for _, m := range toCompress {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	transcript := strings.Join(lines, "\n")

	settings, err := s.store.GetSettings()
	if err != nil {
		log.Printf("WARN: compaction skipped, failed to load settings: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.LLMTimeout)
	defer cancel()

	// Isolated single-message call, no conversation history attached.
	req := &llmclient.ChatCompletionRequest{
		Model: domain.DefaultModel,
		Messages: []llmclient.ChatMessage{{
			Role:    "system",
			Content: fmt.Sprintf(summarizeFormat, conv.Memory, transcript),
		}},
	}
	summary, err := s.llm.CreateChatCompletion(ctx, settings.APIKey, req)
	if err != nil {
		log.Printf("WARN: memory compaction failed for %s: %v", conversationID, err)
		return
	}

	if err := s.store.ReplaceCompacted(conversationID, summary, len(toCompress)); err != nil {
		log.Printf("ERROR: failed to store compacted memory for %s: %v", conversationID, err)
		return
	}
	log.Printf("INFO: memory compacted for %s, %d messages summarized", conversationID, len(toCompress))
}
