// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package character

import "testing"

// =============================================================================
// CATALOG INTEGRITY TESTS
// =============================================================================

func TestCatalogConsistency(t *testing.T) {
	if len(Order) != len(Characters) {
		t.Fatalf("Order has %d ids, catalog has %d characters", len(Order), len(Characters))
	}

	for _, id := range Order {
		c := Characters[id]
		if c == nil {
			t.Errorf("Order references unknown character %q", id)
			continue
		}
		if c.ID != id {
			t.Errorf("character %q has mismatched ID %q", id, c.ID)
		}
		if c.Name == "" || c.Backstory == "" || c.SpeakingStyle == "" {
			t.Errorf("%s: incomplete persona", id)
		}
		if len(c.SampleMessages) == 0 {
			t.Errorf("%s: no sample messages", id)
		}
		if len(c.Keywords) == 0 {
			t.Errorf("%s: no selector keywords", id)
		}
		if c.AvatarEmoji == "" {
			t.Errorf("%s: missing avatar emoji", id)
		}
	}
}

func TestDynamicsReferenceKnownCharacters(t *testing.T) {
	for _, d := range Dynamics {
		for _, id := range d.Pair {
			if Characters[id] == nil {
				t.Errorf("dynamic references unknown character %q", id)
			}
		}
		if d.PromptModifier == "" {
			t.Errorf("dynamic %v has no prompt modifier", d.Pair)
		}
	}
}

func TestScenariosReferenceKnownCharacters(t *testing.T) {
	for _, sc := range Scenarios {
		if len(sc.CharacterIDs) < 2 {
			t.Errorf("scenario %s needs at least 2 characters", sc.ID)
		}
		for _, id := range sc.CharacterIDs {
			if Characters[id] == nil {
				t.Errorf("scenario %s references unknown character %q", sc.ID, id)
			}
		}
	}
}

func TestDynamicsForGroup(t *testing.T) {
	// Both members present: activated.
	got := DynamicsForGroup([]string{"bunny", "rohan"})
	found := false
	for _, d := range got {
		if d.Involves("bunny") && d.Involves("rohan") {
			found = true
		}
	}
	if !found {
		t.Error("bunny-rohan dynamic should activate when both are present")
	}

	// One member missing: not activated.
	for _, d := range DynamicsForGroup([]string{"bunny", "kavya"}) {
		if d.Involves("rohan") {
			t.Error("dynamic with an absent member must not activate")
		}
	}
}

func TestStartersFor(t *testing.T) {
	for _, id := range Order {
		if len(StartersFor(id)) == 0 {
			t.Errorf("%s: no conversation starters", id)
		}
	}
	if StartersFor("ghost") != nil {
		t.Error("unknown character should have nil starters")
	}
}

func TestScenarioByID(t *testing.T) {
	if len(Scenarios) == 0 {
		t.Fatal("no scenarios in catalog")
	}
	first := Scenarios[0]
	if got := ScenarioByID(first.ID); got == nil || got.Name != first.Name {
		t.Errorf("ScenarioByID(%q) = %+v", first.ID, got)
	}
	if ScenarioByID("nope") != nil {
		t.Error("unknown scenario must return nil")
	}
}
