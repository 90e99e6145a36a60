// Package profile builds a CandidateProfile from the plain text of a CV.
package profile

import (
	"regexp"
	"strings"

	"github.com/mathieu/applyassist/internal/normalize"
	"github.com/mathieu/applyassist/internal/types"
)

const (
	maxSkills      = 20
	maxExperiences = 5
)

var (
	namePattern  = regexp.MustCompile(`^[A-Z][a-zA-Z ]+$`)
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d{1,3}[-. ]?\(?\d{1,4}\)?[-. ]?\d{1,4}[-. ]?\d{1,9}`)

	skillsSectionPattern     = regexp.MustCompile(`(?is)(?:technical skills|skills?|competencies)[ \t]*:?[ \t]*\n?(.+?)(?:\n\n|\n[A-Z]{2,}|$)`)
	experienceSectionPattern = regexp.MustCompile(`(?is)(?:experience|work history|employment)[ \t]*:?[ \t]*\n?(.+?)(?:\n\n|education|skills|$)`)
	educationSectionPattern  = regexp.MustCompile(`(?is)(?:education|academic|qualifications)[ \t]*:?[ \t]*\n?(.+?)(?:\n\n|experience|skills|$)`)

	jobLinePattern = regexp.MustCompile(`([A-Z][A-Za-z/ ]*?)\s+(?:at|@)\s+([A-Z][A-Za-z&., ]*)`)

	skillSeparators = regexp.MustCompile(`[,\n•\-;]`)
)

var degreeKeywords = []string{"bachelor", "master", "phd", "bsc", "msc", "mba", "degree"}

var commonLanguages = []string{
	"English", "French", "Spanish", "German", "Italian", "Portuguese",
	"Chinese", "Japanese", "Korean", "Arabic", "Russian", "Hindi",
}

// Parse extracts a structured profile from raw CV text. Every field is
// best-effort: a text where nothing is recognizable yields a profile with
// empty fields and the raw text preserved, never an error.
func Parse(rawText string) *types.CandidateProfile {
	return &types.CandidateProfile{
		Name:       extractName(rawText),
		Email:      extractEmail(rawText),
		Phone:      extractPhone(rawText),
		Skills:     extractSkills(rawText),
		Experience: extractExperience(rawText),
		Education:  extractEducation(rawText),
		Languages:  extractLanguages(rawText),
		RawText:    rawText,
	}
}

// extractName looks for a name-like line near the top of the CV
func extractName(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		if i == 5 {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" || len(line) >= 50 || strings.Contains(line, "@") {
			continue
		}
		// All-caps lines are usually headers ("CURRICULUM VITAE"), not names.
		if line == strings.ToUpper(line) {
			continue
		}
		if namePattern.MatchString(line) {
			return line
		}
	}
	return ""
}

func extractEmail(text string) string {
	return emailPattern.FindString(text)
}

func extractPhone(text string) string {
	for _, match := range phonePattern.FindAllString(text, -1) {
		if digitCount(match) >= 8 {
			return match
		}
	}
	return ""
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// extractSkills combines vocabulary hits across the whole text with items
// listed in an explicit skills section.
func extractSkills(text string) []string {
	seen := make(map[string]bool)
	var skills []string
	add := func(skill string) {
		skill = strings.TrimSpace(strings.ToLower(skill))
		if skill == "" || len(skill) >= 50 || seen[skill] {
			return
		}
		seen[skill] = true
		skills = append(skills, skill)
	}

	// Email addresses tokenize like punctuated tool names (jane.doe), so
	// they are blanked before extraction.
	withoutEmails := emailPattern.ReplaceAllString(text, " ")
	for _, token := range normalize.ExtractSkillTokens(withoutEmails) {
		add(token)
	}

	if m := skillsSectionPattern.FindStringSubmatch(text); m != nil {
		for _, item := range skillSeparators.Split(m[1], -1) {
			add(item)
		}
	}

	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}
	return skills
}

// extractExperience finds "Title at Company" lines in the experience section
func extractExperience(text string) []types.ExperienceEntry {
	m := experienceSectionPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	var entries []types.ExperienceEntry
	for _, jobMatch := range jobLinePattern.FindAllStringSubmatch(m[1], maxExperiences) {
		entries = append(entries, types.ExperienceEntry{
			Title:        strings.TrimSpace(jobMatch[1]),
			Organization: strings.TrimSpace(jobMatch[2]),
		})
	}
	return entries
}

// extractEducation returns the lines of the education section that mention
// a degree keyword.
func extractEducation(text string) []string {
	m := educationSectionPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	var education []string
	for _, line := range strings.Split(m[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, keyword := range degreeKeywords {
			if strings.Contains(lower, keyword) {
				education = append(education, line)
				break
			}
		}
	}
	return education
}

func extractLanguages(text string) []string {
	lower := strings.ToLower(text)
	var languages []string
	for _, lang := range commonLanguages {
		if strings.Contains(lower, strings.ToLower(lang)) {
			languages = append(languages, lang)
		}
	}
	return languages
}
