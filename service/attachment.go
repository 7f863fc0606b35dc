package service

import (
	"context"
	"log"

	"turbochat/domain"
	"turbochat/llmclient"
)

const visionPrompt = "Describe this image in detail. If code, write it out."

// visionFailureNote replaces the description when the vision call fails.
const visionFailureNote = "[Error analyzing image]"

// composeContent merges the user text with any attachment marker. Image
// attachments are described through a vision-capable completion call; other
// attachments are embedded verbatim.
func (s *Service) composeContent(ctx context.Context, settings domain.Settings, text string, attachment *domain.Attachment) string {
	if attachment == nil {
		return text
	}

	switch attachment.Kind {
	case domain.AttachmentKindImage:
		description, err := s.describeImage(ctx, settings.APIKey, attachment.Payload)
		if err != nil {
			log.Printf("WARN: image analysis failed: %v", err)
			description = visionFailureNote
		}
		return domain.AttachImageDescription(text, description)
	default:
		return domain.AttachFileContent(text, attachment.Payload)
	}
}

// describeImage asks the vision model for a textual description of the
// image. This call is isolated from the conversation context.
func (s *Service) describeImage(ctx context.Context, apiKey, imageURL string) (string, error) {
	req := &llmclient.ChatCompletionRequest{
		Model: s.config.VisionModel,
		Messages: []llmclient.ChatMessage{{
			Role: "user",
			ContentParts: []llmclient.ContentPart{
				llmclient.TextPart(visionPrompt),
				llmclient.ImagePart(imageURL),
			},
		}},
	}
	return s.llm.CreateChatCompletion(ctx, apiKey, req)
}
