package generation

import (
	"context"
	"fmt"
	"strings"
)

// TemplateProvider is the terminal provider of the chain: a pure,
// deterministic letter generator with no network or external state. It
// cannot fail, which guarantees every generation request produces a letter.
type TemplateProvider struct{}

// NewTemplateProvider creates the terminal template provider
func NewTemplateProvider() *TemplateProvider { return &TemplateProvider{} }

// Name implements ContentProvider
func (p *TemplateProvider) Name() string { return "template" }

// Infallible marks the provider as a valid chain terminal
func (p *TemplateProvider) Infallible() bool { return true }

// Generate implements ContentProvider. The error is always nil.
func (p *TemplateProvider) Generate(_ context.Context, req Request) (string, error) {
	return p.Letter(req), nil
}

// Letter assembles the deterministic fallback letter
func (p *TemplateProvider) Letter(req Request) string {
	name := orDefault(req.Profile.Name, "Applicant")
	title := orDefault(req.Offer.Title, "the position")
	company := orDefault(req.Offer.Organization, "your company")

	var paragraphs []string

	paragraphs = append(paragraphs, "Dear Hiring Manager,")

	paragraphs = append(paragraphs, fmt.Sprintf(
		"I am writing to express my strong interest in the %s position at %s. "+
			"With my background and skills, I am confident that I would be a valuable addition to your team.",
		title, company))

	if skills := capList(req.Profile.Skills, 5); len(skills) > 0 {
		paragraphs = append(paragraphs, fmt.Sprintf(
			"My technical expertise includes %s, which aligns well with the requirements for this role. "+
				"I have developed these skills through practical experience and continuous learning.",
			joinWithAnd(skills)))
	}

	if len(req.Profile.Experience) > 0 {
		plural := ""
		if len(req.Profile.Experience) > 1 {
			plural = "s"
		}
		recent := req.Profile.Experience[0]
		paragraphs = append(paragraphs, fmt.Sprintf(
			"I bring %d professional experience%s to this role. Most recently, I worked as %s at %s, "+
				"where I gained valuable experience that directly applies to this position.",
			len(req.Profile.Experience), plural,
			orDefault(recent.Title, "a professional"),
			orDefault(recent.Organization, "a leading organization")))
	}

	paragraphs = append(paragraphs, fmt.Sprintf(
		"I am particularly drawn to this opportunity at %s because of your commitment to innovation "+
			"and excellence. The role's focus on %s aligns perfectly with my career goals and expertise.",
		company, keyFocus(req.Offer.Description)))

	if req.Note != "" {
		paragraphs = append(paragraphs, req.Note)
	}

	paragraphs = append(paragraphs, fmt.Sprintf(
		"I am excited about the possibility of contributing to %s's success and would welcome the "+
			"opportunity to discuss how my background and skills would benefit your team. "+
			"Thank you for considering my application.",
		company))

	paragraphs = append(paragraphs, "Sincerely,\n"+name)

	return strings.Join(paragraphs, "\n\n")
}

// keyFocus extracts a short focus phrase from the offer description for the
// why-this-company paragraph.
func keyFocus(description string) string {
	sentence := description
	if idx := strings.Index(sentence, "."); idx >= 0 {
		sentence = sentence[:idx]
	}
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return "the role's responsibilities"
	}
	if runes := []rune(sentence); len(runes) > 50 {
		sentence = string(runes[:50])
	}
	if idx := strings.Index(sentence, ","); idx >= 0 {
		sentence = sentence[:idx]
	}
	return strings.ToLower(strings.TrimSpace(sentence))
}

// joinWithAnd renders "a", "a and b", "a, b, and c"
func joinWithAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
