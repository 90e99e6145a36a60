package generation

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert cover letter writer who creates professional, " +
	"ATS-friendly cover letters that highlight concrete skills and experiences. " +
	"You avoid cliches and focus on measurable achievements."

// buildPrompt renders the user prompt shared by the LLM providers
func buildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("Generate a highly targeted, ATS-friendly cover letter based on the following information.\n\n")

	b.WriteString("CANDIDATE INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(req.Profile.Name, "Candidate"))
	if req.Profile.Email != "" {
		fmt.Fprintf(&b, "- Email: %s\n", req.Profile.Email)
	}
	if req.Profile.Phone != "" {
		fmt.Fprintf(&b, "- Phone: %s\n", req.Profile.Phone)
	}
	fmt.Fprintf(&b, "- Matched Skills: %s\n\n", orDefault(strings.Join(capList(req.Report.Matched, 8), ", "), "General skills"))

	b.WriteString("RELEVANT EXPERIENCE:\n")
	if len(req.Profile.Experience) == 0 {
		b.WriteString("Entry-level candidate with educational background\n")
	}
	for i, entry := range req.Profile.Experience {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "%d. %s at %s", i+1, orDefault(entry.Title, "Professional"), orDefault(entry.Organization, "a leading organization"))
		if len(entry.Bullets) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(capList(entry.Bullets, 2), ", "))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("JOB INFORMATION:\n")
	fmt.Fprintf(&b, "- Position: %s\n", orDefault(req.Offer.Title, "the position"))
	fmt.Fprintf(&b, "- Company: %s\n", orDefault(req.Offer.Organization, "the company"))
	fmt.Fprintf(&b, "- Description: %s\n\n", truncateRunes(req.Offer.Description, 500))

	b.WriteString("SKILL MATCH ANALYSIS:\n")
	fmt.Fprintf(&b, "- Matching Skills: %s\n", orDefault(strings.Join(capList(req.Report.Matched, 5), ", "), "To be highlighted from experience"))
	fmt.Fprintf(&b, "- Skills to Emphasize: %s\n\n", orDefault(strings.Join(capList(req.Report.Missing, 3), ", "), "Core competencies"))

	if req.Note != "" {
		fmt.Fprintf(&b, "CUSTOM MESSAGE TO INCORPORATE: %s\n\n", req.Note)
	}

	b.WriteString(`REQUIREMENTS:
1. Structure: professional salutation; opening paragraph stating the position and interest; one paragraph of concrete experiences matching the job; one paragraph of specific skill alignment; closing paragraph with a call to action; professional closing (Sincerely,).
2. No cliches ("team player", "detail-oriented"). Use concrete, measurable achievements and reference skills from the matched skills list. Active voice, strong action verbs.
3. Keep total length to 300-400 words.
4. Write in professional English with simple paragraph formatting.

Generate the cover letter now:`)

	return b.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
