package domain

import "strings"

// Attachments are embedded into the message content as bracketed markers so
// that the single-string wire format stays compatible with the completion
// backend. The marker text is part of what gets sent upstream; only the
// display layer strips it.

const (
	imageMarkerPrefix = "[USER ATTACHED IMAGE"
	imageMarkerFormat = "\n\n[USER ATTACHED IMAGE. DESCRIPTION: "
	fileMarkerFormat  = "\n\n[ATTACHED FILE]:\n"
)

// AttachImageDescription appends an image-description marker to text.
func AttachImageDescription(text, description string) string {
	return text + imageMarkerFormat + description + "]"
}

// AttachFileContent appends a raw file payload block to text.
func AttachFileContent(text, payload string) string {
	return text + fileMarkerFormat + payload
}

// HasImageAttachment reports whether content carries an image marker.
func HasImageAttachment(content string) bool {
	return strings.Contains(content, imageMarkerPrefix)
}

// DisplayContent returns the content with any image marker replaced by a
// short placeholder. The full content, marker included, is still what goes
// to the backend.
func DisplayContent(content string) string {
	idx := strings.Index(content, imageMarkerPrefix)
	if idx < 0 {
		return content
	}
	return strings.TrimRight(content[:idx], "\n ") + " (Image Attached)"
}
