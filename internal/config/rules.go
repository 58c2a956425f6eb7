package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okorolev/manual-assistant/internal/core/domain"
)

// rulesFile is the on-disk shape of the assistant decision tables. Every
// section is optional; an omitted section keeps the built-in defaults, so an
// operator can tune one table without restating the rest.
type rulesFile struct {
	Taxonomy       map[string][]string                  `yaml:"taxonomy"`
	FollowUpTokens []string                             `yaml:"follow_up_tokens"`
	RepairKeywords []string                             `yaml:"repair_keywords"`
	Support        map[string]map[string]supportProfile `yaml:"support"`
}

type supportProfile struct {
	TollFree   string `yaml:"toll_free"`
	ManualLink string `yaml:"manual_link"`
	VideoLink  string `yaml:"video_link"`
}

// LoadRules returns the built-in rules when path is empty, otherwise the
// built-ins overridden section-by-section from the YAML file at path.
func LoadRules(path string) (domain.AssistantRules, error) {
	rules := DefaultRules()
	if strings.TrimSpace(path) == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.AssistantRules{}, fmt.Errorf("read rules file: %w", err)
	}
	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.AssistantRules{}, fmt.Errorf("parse rules file: %w", err)
	}

	if len(file.Taxonomy) > 0 {
		rules.Taxonomy = lowerTaxonomy(file.Taxonomy)
	}
	if len(file.FollowUpTokens) > 0 {
		rules.FollowUpTokens = lowerAll(file.FollowUpTokens)
	}
	if len(file.RepairKeywords) > 0 {
		rules.RepairKeywords = lowerAll(file.RepairKeywords)
	}
	if len(file.Support) > 0 {
		rules.Support = lowerSupport(file.Support)
	}
	return rules, nil
}

// DefaultRules is the compiled-in rule set covering the indexed appliance
// categories and the supported brands.
func DefaultRules() domain.AssistantRules {
	return domain.AssistantRules{
		Taxonomy: map[string][]string{
			"refrigerator":    {"refrigerator", "fridge", "fridges"},
			"washing-machine": {"washing machine", "washing-machine", "washing", "washer", "washers"},
			"dishwasher":      {"dishwasher", "dish washers", "dishwashing"},
		},
		FollowUpTokens: []string{"more", "explain", "tell me more", "details", "detail", "this"},
		RepairKeywords: []string{
			"replace motor", "replace drum", "replace compressor",
			"wiring", "electrical repair", "major repair", "cannot be fixed", "seized",
		},
		Support: map[string]map[string]domain.SupportProfile{
			"lg": {
				"refrigerator": {
					TollFree:   "1800-315-9999",
					ManualLink: "https://www.lg.com/in/support/manuals",
					VideoLink:  "https://www.youtube.com/watch?v=LG_fridge_demo",
				},
				"washing-machine": {
					TollFree:   "1800-315-9999",
					ManualLink: "https://www.lg.com/in/support/washing-machine-manuals",
					VideoLink:  "https://www.youtube.com/watch?v=LG_wm_demo",
				},
			},
			"samsung": {
				"refrigerator": {
					TollFree:   "1800-40-7267864",
					ManualLink: "https://www.samsung.com/in/support/manuals",
					VideoLink:  "https://www.youtube.com/watch?v=Samsung_fridge_demo",
				},
				"washing-machine": {
					TollFree:   "1800-40-7267864",
					ManualLink: "https://www.samsung.com/in/support/washing-machine-manuals",
					VideoLink:  "https://www.youtube.com/watch?v=Samsung_wm_demo",
				},
			},
		},
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func lowerTaxonomy(taxonomy map[string][]string) map[string][]string {
	out := make(map[string][]string, len(taxonomy))
	for category, aliases := range taxonomy {
		out[strings.ToLower(strings.TrimSpace(category))] = lowerAll(aliases)
	}
	return out
}

func lowerSupport(support map[string]map[string]supportProfile) map[string]map[string]domain.SupportProfile {
	out := make(map[string]map[string]domain.SupportProfile, len(support))
	for brand, byAppliance := range support {
		converted := make(map[string]domain.SupportProfile, len(byAppliance))
		for appliance, profile := range byAppliance {
			converted[strings.ToLower(strings.TrimSpace(appliance))] = domain.SupportProfile{
				TollFree:   strings.TrimSpace(profile.TollFree),
				ManualLink: strings.TrimSpace(profile.ManualLink),
				VideoLink:  strings.TrimSpace(profile.VideoLink),
			}
		}
		out[strings.ToLower(strings.TrimSpace(brand))] = converted
	}
	return out
}
