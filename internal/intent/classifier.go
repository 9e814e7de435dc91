// Package intent decides which generation backend a chat message should be
// routed to and extracts the document parameters for the artifact path.
package intent

import (
	"regexp"
	"strings"

	"github.com/hakivo/chatd/internal/domain"
)

// Template identifiers consumed by the prompt composer.
const (
	TemplatePolicyBrief      = "policy_brief"
	TemplateBillAnalysis     = "bill_analysis"
	TemplateWeekInCongress   = "week_in_congress"
	TemplateDistrictBriefing = "district_briefing"
	TemplateComparison       = "comparison"
)

// Audience identifiers consumed by the prompt composer.
const (
	AudienceGeneral      = "general"
	AudienceEducator     = "educator"
	AudienceAdvocate     = "advocate"
	AudienceProfessional = "professional"
	AudienceLegislator   = "legislator"
)

// artifactBlockRe matches an explicit [ARTIFACT_REQUEST]...[/ARTIFACT_REQUEST]
// block anywhere in the message.
var artifactBlockRe = regexp.MustCompile(`(?s)\[ARTIFACT_REQUEST\](.*?)\[/ARTIFACT_REQUEST\]`)

// slidePatterns are tested before reportPatterns. The precedence is a
// deliberate tie-break: a message matching both classifies as slides.
// Changing the order changes product-visible classification outcomes.
var slidePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(create|make|build|generate|prepare|put together)\b.*\b(slide deck|slideshow|slides|presentation|deck)\b`),
	regexp.MustCompile(`(?i)\bgive me a (slide deck|slideshow|presentation)\b`),
	regexp.MustCompile(`(?i)\b(slide deck|slideshow|presentation)\b.*\b(about|on|covering|for)\b`),
	regexp.MustCompile(`(?i)\bturn (this|that|it) into (a )?(slide deck|slides|presentation)\b`),
}

var reportPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(create|make|build|generate|write|prepare|draft)\b.*\b(report|brief|briefing|analysis|summary document|one.?pager)\b`),
	regexp.MustCompile(`(?i)\bgive me a (report|brief|briefing|analysis)\b`),
	regexp.MustCompile(`(?i)\b(policy brief|issue brief|district briefing)\b`),
	regexp.MustCompile(`(?i)\b(profile|report|brief)\b.*\b(senator|representative|legislator|congressman|congresswoman|member of congress)\b`),
	regexp.MustCompile(`(?i)\blegislator profile\b`),
}

// profilePattern routes legislator-profile phrasing to the bill_analysis
// template in the cascade below.
var profilePattern = regexp.MustCompile(`(?i)\bprofile\b.*\b(senator|representative|legislator|congressman|congresswoman|member of congress)\b`)

// templateCascade is an ordered keyword cascade over the whole message.
// First hit wins; no hit falls through to policy_brief.
var templateCascade = []struct {
	re       *regexp.Regexp
	template string
}{
	{regexp.MustCompile(`(?i)\bbill\b|\blegislation\b|\b[hs]\.?r?\.?\s?\d+\b`), TemplateBillAnalysis},
	{regexp.MustCompile(`(?i)week in congress|this week|weekly`), TemplateWeekInCongress},
	{regexp.MustCompile(`(?i)\bdistrict\b`), TemplateDistrictBriefing},
	{regexp.MustCompile(`(?i)\bcompar(e|ison|ing)\b|\bversus\b|\bvs\.?\b`), TemplateComparison},
}

// audienceCascade is an ordered keyword cascade over the whole message.
// First hit wins; no hit falls through to general.
var audienceCascade = []struct {
	re       *regexp.Regexp
	audience string
}{
	{regexp.MustCompile(`(?i)\bstudent|classroom|teacher|educat`), AudienceEducator},
	{regexp.MustCompile(`(?i)\badvoca|activist|organiz(er|ing)|campaign`), AudienceAdvocate},
	{regexp.MustCompile(`(?i)\bprofessional|industry|business|stakeholder`), AudienceProfessional},
	{regexp.MustCompile(`(?i)\blegislator|staffer|congressional office|policymaker`), AudienceLegislator},
}

// Classify inspects a user message and returns the artifact intent. It is
// pure and deterministic: same input, same output, no side effects, never
// panics. Precedence: explicit ARTIFACT_REQUEST block, then slide patterns,
// then report patterns, else no request.
func Classify(content string) domain.ArtifactIntent {
	if m := artifactBlockRe.FindStringSubmatchIndex(content); m != nil {
		return parseArtifactBlock(content, m)
	}

	for _, re := range slidePatterns {
		if re.MatchString(content) {
			return naturalLanguageIntent(content, domain.ArtifactTypeSlides)
		}
	}
	for _, re := range reportPatterns {
		if re.MatchString(content) {
			return naturalLanguageIntent(content, domain.ArtifactTypeReport)
		}
	}

	return domain.ArtifactIntent{HasRequest: false}
}

// parseArtifactBlock extracts `key: value` lines from an explicit block.
// Unknown keys are ignored; missing keys get the documented defaults.
func parseArtifactBlock(content string, m []int) domain.ArtifactIntent {
	intent := domain.ArtifactIntent{
		HasRequest: true,
		Type:       domain.ArtifactTypeReport,
		Template:   TemplatePolicyBrief,
		Audience:   AudienceGeneral,
	}

	body := content[m[2]:m[3]]
	for _, line := range strings.Split(body, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(strings.ToLower(key))
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch key {
		case "type":
			intent.Type = value
		case "template":
			intent.Template = value
		case "audience":
			intent.Audience = value
		case "title":
			intent.Title = value
		}
	}

	if before := strings.TrimSpace(content[:m[0]]); before != "" {
		intent.Context = before
	}
	return intent
}

// naturalLanguageIntent derives template and audience from the message via
// the keyword cascades.
func naturalLanguageIntent(content, artifactType string) domain.ArtifactIntent {
	intent := domain.ArtifactIntent{
		HasRequest: true,
		Type:       artifactType,
		Template:   TemplatePolicyBrief,
		Audience:   AudienceGeneral,
	}

	if profilePattern.MatchString(content) {
		intent.Template = TemplateBillAnalysis
	} else {
		for _, entry := range templateCascade {
			if entry.re.MatchString(content) {
				intent.Template = entry.template
				break
			}
		}
	}

	for _, entry := range audienceCascade {
		if entry.re.MatchString(content) {
			intent.Audience = entry.audience
			break
		}
	}

	return intent
}
