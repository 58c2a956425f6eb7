package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRulesEmptyPathUsesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	if _, ok := rules.Taxonomy["refrigerator"]; !ok {
		t.Fatalf("default taxonomy missing refrigerator category")
	}
	if _, ok := rules.SupportFor("lg", "refrigerator"); !ok {
		t.Fatalf("default support table missing lg refrigerator")
	}
}

func TestLoadRulesOverridesSectionBySection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `
follow_up_tokens:
  - "Go On"
support:
  bosch:
    dishwasher:
      toll_free: "1800-266-1880"
      manual_link: "https://www.bosch-home.in/service"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}

	// Overridden sections replace the defaults wholesale, lower-cased.
	if len(rules.FollowUpTokens) != 1 || rules.FollowUpTokens[0] != "go on" {
		t.Fatalf("FollowUpTokens = %v", rules.FollowUpTokens)
	}
	profile, ok := rules.SupportFor("BOSCH", "Dishwasher")
	if !ok {
		t.Fatalf("expected bosch dishwasher profile")
	}
	if profile.TollFree != "1800-266-1880" {
		t.Fatalf("toll free = %q", profile.TollFree)
	}
	if _, ok := rules.SupportFor("lg", "refrigerator"); ok {
		t.Fatalf("support override must replace the default table")
	}

	// Untouched sections keep the defaults.
	if len(rules.Taxonomy) == 0 || len(rules.RepairKeywords) == 0 {
		t.Fatalf("untouched sections lost their defaults")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing rules file")
	}
}

func TestLoadRulesMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(":\n  - ][broken"), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}
	if _, err := LoadRules(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
