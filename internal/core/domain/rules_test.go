package domain

import "testing"

func testRules() AssistantRules {
	return AssistantRules{
		Taxonomy: map[string][]string{
			"refrigerator":    {"refrigerator", "fridge"},
			"washing-machine": {"washing machine", "washer"},
		},
		FollowUpTokens: []string{"more", "explain", "tell me more"},
		RepairKeywords: []string{"replace compressor", "seized"},
		Support: map[string]map[string]SupportProfile{
			"lg": {
				"refrigerator": {TollFree: "1800-315-9999", ManualLink: "https://example.com/manual"},
			},
		},
	}
}

func TestSupportForCaseInsensitive(t *testing.T) {
	rules := testRules()

	profile, ok := rules.SupportFor("LG", "Refrigerator")
	if !ok {
		t.Fatalf("expected profile for LG refrigerator")
	}
	if profile.TollFree != "1800-315-9999" {
		t.Fatalf("toll free = %q", profile.TollFree)
	}
}

func TestSupportForUnknownPairs(t *testing.T) {
	rules := testRules()

	cases := []struct{ brand, appliance string }{
		{"", "refrigerator"},
		{"lg", ""},
		{"miele", "refrigerator"},
		{"lg", "washing-machine"},
	}
	for _, tc := range cases {
		if _, ok := rules.SupportFor(tc.brand, tc.appliance); ok {
			t.Fatalf("SupportFor(%q, %q) unexpectedly found a profile", tc.brand, tc.appliance)
		}
	}
}

func TestMentionsOtherAppliance(t *testing.T) {
	rules := testRules()

	if !rules.MentionsOtherAppliance("my washer is broken", "refrigerator") {
		t.Fatalf("expected washer to be off-topic in a refrigerator session")
	}
	if rules.MentionsOtherAppliance("my fridge is warm", "refrigerator") {
		t.Fatalf("active-appliance alias must not be flagged")
	}
	if rules.MentionsOtherAppliance("the light is blinking", "refrigerator") {
		t.Fatalf("neutral query must not be flagged")
	}
}

func TestMentionsOtherApplianceNoActiveCategory(t *testing.T) {
	rules := testRules()

	// With no active appliance every category counts as "other".
	if !rules.MentionsOtherAppliance("my fridge is warm", "") {
		t.Fatalf("expected match with empty active category")
	}
}

func TestIsFollowUp(t *testing.T) {
	rules := testRules()

	if !rules.IsFollowUp("tell me more") {
		t.Fatalf("expected follow-up match")
	}
	if !rules.IsFollowUp("can you explain that step") {
		t.Fatalf("expected substring token match")
	}
	if rules.IsFollowUp("how do i drain it") {
		t.Fatalf("unexpected follow-up match")
	}
	if rules.IsFollowUp("   ") {
		t.Fatalf("blank query must not match")
	}
}

func TestMentionsMajorRepair(t *testing.T) {
	rules := testRules()

	if !rules.MentionsMajorRepair("how to replace compressor at home") {
		t.Fatalf("expected repair keyword match")
	}
	if rules.MentionsMajorRepair("how do i clean the filter") {
		t.Fatalf("unexpected repair keyword match")
	}
}

func TestSupportProfileIsZero(t *testing.T) {
	if !(SupportProfile{}).IsZero() {
		t.Fatalf("empty profile must be zero")
	}
	if (SupportProfile{TollFree: "x"}).IsZero() {
		t.Fatalf("profile with toll free must not be zero")
	}
}
