// Package prompt builds the instruction text sent to either generation
// backend. The rendered wording is a stable contract with the document
// generator; change it deliberately.
package prompt

import (
	"fmt"
	"strings"

	"github.com/hakivo/chatd/internal/domain"
)

// templateDescriptions maps template identifiers to the document kind the
// generator is asked to produce. Unknown templates fall back to a generic
// description.
var templateDescriptions = map[string]string{
	"policy_brief":      "a concise policy brief that explains the issue, current legislative activity, and practical implications",
	"bill_analysis":     "a bill analysis that summarizes the legislation, its sponsors, key provisions, and likely impact",
	"week_in_congress":  "a week-in-congress roundup covering notable votes, introduced bills, and hearings",
	"district_briefing": "a district briefing connecting federal legislative activity to local impact",
	"comparison":        "a side-by-side comparison laying out positions, provisions, or voting records",
}

// audienceDescriptions maps audience identifiers to reader descriptions.
var audienceDescriptions = map[string]string{
	"general":      "a general audience with no assumed background in policy or government",
	"educator":     "educators preparing classroom material; favor plain language and discussion prompts",
	"advocate":     "advocates and organizers who need action-oriented framing and key talking points",
	"professional": "professionals tracking policy for business or industry impact",
	"legislator":   "legislators and congressional staff; precise citations and procedural detail are expected",
}

const (
	genericTemplateDescription = "a well-structured document on the requested topic"
	genericAudienceDescription = "a general audience"
)

// SystemPrompt renders the document generator's system instruction from the
// template and audience lookup tables.
func SystemPrompt(template, audience string) string {
	doc, ok := templateDescriptions[template]
	if !ok {
		doc = genericTemplateDescription
	}
	reader, ok := audienceDescriptions[audience]
	if !ok {
		reader = genericAudienceDescription
	}

	return fmt.Sprintf(
		"You are a nonpartisan legislative research writer. Produce %s, written for %s. "+
			"Ground every claim in the research data you gather. Use clear headings, keep sections short, "+
			"and never editorialize beyond what the data supports.",
		doc, reader)
}

// ArtifactUserPrompt renders the per-request instruction naming the topic
// and the ordered tool-usage directives.
func ArtifactUserPrompt(artifactType, topic string) string {
	kind := "report"
	if artifactType == domain.ArtifactTypeSlides {
		kind = "slide deck in markdown, one `##` heading per slide"
	}

	return fmt.Sprintf(
		"Create a %s about: %s\n\n"+
			"Work through these steps in order:\n"+
			"1. Search for relevant bills and summarize the ones that matter.\n"+
			"2. Search recent news coverage for context and public reaction.\n"+
			"3. Search for the members of Congress most involved and note their roles.\n"+
			"4. Write the document from what you found, citing bills by number.",
		kind, topic)
}

// ConversationalPrompt flattens a conversation into a single prompt for the
// agent. Prior turns become "Role: content" lines; with no prior turns the
// prompt is exactly the last message's content.
func ConversationalPrompt(messages []domain.ChatMessage) string {
	if len(messages) == 0 {
		return ""
	}
	last := messages[len(messages)-1]
	if len(messages) == 1 {
		return last.Content
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for i, msg := range messages[:len(messages)-1] {
		if i > 0 {
			b.WriteString("\n\n")
		}
		role := "User"
		if msg.Role == domain.RoleAssistant {
			role = "Assistant"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
	}
	b.WriteString("\n\nUser: ")
	b.WriteString(last.Content)
	return b.String()
}
