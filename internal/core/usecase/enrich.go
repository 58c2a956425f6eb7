package usecase

import (
	"fmt"
	"strings"
)

const escalationNotice = "This appears to be a major repair that likely requires a technician. " +
	"Please contact customer support or a certified technician."

// enrichAnswer appends escalation guidance and support contacts to the
// generated answer. It never alters the generated body text. The second
// return reports whether the major-repair branch fired.
func (uc *AnswerUseCase) enrichAnswer(answer, queryLower, brand, appliance string) (string, bool) {
	profile, hasProfile := uc.rules.SupportFor(brand, appliance)
	escalated := uc.rules.MentionsMajorRepair(queryLower)

	var b strings.Builder
	b.WriteString(answer)

	if escalated {
		b.WriteString("\n\n")
		b.WriteString(escalationNotice)
		if hasProfile && profile.TollFree != "" {
			b.WriteString(" Support: ")
			b.WriteString(profile.TollFree)
		}
	}

	if hasProfile {
		b.WriteString("\n\n---\nHelpful resources:\n")
		if profile.TollFree != "" {
			fmt.Fprintf(&b, "Support: %s\n", profile.TollFree)
		}
		if profile.ManualLink != "" {
			fmt.Fprintf(&b, "Manual / docs: %s\n", profile.ManualLink)
		}
		if profile.VideoLink != "" {
			fmt.Fprintf(&b, "Troubleshooting video: %s\n", profile.VideoLink)
		}
	}

	return b.String(), escalated
}
