package domain

import "strings"

// SupportProfile holds the static support contacts for one (brand, appliance)
// pair. Loaded once at startup, never mutated.
type SupportProfile struct {
	TollFree   string `json:"toll_free,omitempty"`
	ManualLink string `json:"manual_link,omitempty"`
	VideoLink  string `json:"video_link,omitempty"`
}

func (p SupportProfile) IsZero() bool {
	return p.TollFree == "" && p.ManualLink == "" && p.VideoLink == ""
}

// AssistantRules bundles the text-matching tables the pipeline decides with:
// appliance taxonomy for topic scoping, follow-up tokens, major-repair
// keywords, and support profiles keyed by lower-cased brand then appliance.
type AssistantRules struct {
	Taxonomy       map[string][]string
	FollowUpTokens []string
	RepairKeywords []string
	Support        map[string]map[string]SupportProfile
}

// SupportFor resolves a support profile by brand and appliance category,
// case-insensitively. The second return reports whether a profile exists.
func (r AssistantRules) SupportFor(brand, appliance string) (SupportProfile, bool) {
	brand = strings.ToLower(strings.TrimSpace(brand))
	appliance = strings.ToLower(strings.TrimSpace(appliance))
	if brand == "" || appliance == "" {
		return SupportProfile{}, false
	}
	byAppliance, ok := r.Support[brand]
	if !ok {
		return SupportProfile{}, false
	}
	profile, ok := byAppliance[appliance]
	if !ok || profile.IsZero() {
		return SupportProfile{}, false
	}
	return profile, true
}

// MentionsOtherAppliance reports whether the lower-cased query names an
// appliance category different from the active one. Aliases of the active
// category are skipped.
func (r AssistantRules) MentionsOtherAppliance(queryLower, activeAppliance string) bool {
	active := strings.ToLower(strings.TrimSpace(activeAppliance))
	for category, aliases := range r.Taxonomy {
		if active != "" && category == active {
			continue
		}
		for _, alias := range aliases {
			if alias != "" && strings.Contains(queryLower, alias) {
				return true
			}
		}
	}
	return false
}

// IsFollowUp reports whether the lower-cased query contains any follow-up
// token, e.g. "tell me more".
func (r AssistantRules) IsFollowUp(queryLower string) bool {
	q := strings.TrimSpace(queryLower)
	if q == "" {
		return false
	}
	for _, token := range r.FollowUpTokens {
		if token != "" && strings.Contains(q, token) {
			return true
		}
	}
	return false
}

// MentionsMajorRepair reports whether the lower-cased query contains any
// major-repair keyword phrase.
func (r AssistantRules) MentionsMajorRepair(queryLower string) bool {
	for _, keyword := range r.RepairKeywords {
		if keyword != "" && strings.Contains(queryLower, keyword) {
			return true
		}
	}
	return false
}
