package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hakivo/chatd/internal/domain"
)

func TestSystemPromptKnownTemplateAndAudience(t *testing.T) {
	p := SystemPrompt("policy_brief", "educator")
	assert.Contains(t, p, "nonpartisan legislative research writer")
	assert.NotContains(t, p, "%s")
}

func TestSystemPromptUnknownFallsBack(t *testing.T) {
	known := SystemPrompt("policy_brief", "general")
	unknown := SystemPrompt("no_such_template", "no_such_audience")
	assert.NotEqual(t, known, unknown)
	assert.NotEmpty(t, unknown)
}

func TestArtifactUserPromptOrdersDirectives(t *testing.T) {
	p := ArtifactUserPrompt(domain.ArtifactTypeReport, "climate change")
	assert.Contains(t, p, "climate change")

	bills := strings.Index(p, "bills")
	news := strings.Index(p, "news")
	members := strings.Index(p, "members of Congress")
	write := strings.Index(p, "Write the document")
	assert.True(t, bills >= 0 && news > bills && members > news && write > members,
		"tool directives out of order: %q", p)
}

func TestArtifactUserPromptSlides(t *testing.T) {
	p := ArtifactUserPrompt(domain.ArtifactTypeSlides, "the farm bill")
	assert.Contains(t, p, "slide deck")
	assert.Contains(t, p, "one `##` heading per slide")
}

func TestConversationalPromptSingleMessage(t *testing.T) {
	messages := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "What bills passed this week?"},
	}
	assert.Equal(t, "What bills passed this week?", ConversationalPrompt(messages))
}

func TestConversationalPromptWithHistory(t *testing.T) {
	messages := []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "Tell me about HR 1"},
		{Role: domain.RoleAssistant, Content: "HR 1 is the For the People Act."},
		{Role: domain.RoleUser, Content: "Who sponsored it?"},
	}
	p := ConversationalPrompt(messages)
	assert.True(t, strings.HasPrefix(p, "Previous conversation:\n"))
	assert.Contains(t, p, "User: Tell me about HR 1")
	assert.Contains(t, p, "Assistant: HR 1 is the For the People Act.")
	assert.True(t, strings.HasSuffix(p, "User: Who sponsored it?"))
}

func TestConversationalPromptEmpty(t *testing.T) {
	assert.Equal(t, "", ConversationalPrompt(nil))
}
