package domain

import "testing"

func TestValidBeliefCategory(t *testing.T) {
	valid := []string{"goal", "technical_preference", "working_style",
		"frustration", "domain_knowledge", "value"}
	for _, c := range valid {
		if !ValidBeliefCategory(c) {
			t.Errorf("ValidBeliefCategory(%q) = false, want true", c)
		}
	}

	invalid := []string{"", "unknown", "GOAL", "Goal", "preference"}
	for _, c := range invalid {
		if ValidBeliefCategory(c) {
			t.Errorf("ValidBeliefCategory(%q) = true, want false", c)
		}
	}
}

func TestValidArchetype(t *testing.T) {
	for _, a := range Archetypes {
		if !ValidArchetype(string(a)) {
			t.Errorf("ValidArchetype(%q) = false, want true", a)
		}
	}

	invalid := []string{"", "control", "Control-First", "speed-first"}
	for _, a := range invalid {
		if ValidArchetype(a) {
			t.Errorf("ValidArchetype(%q) = true, want false", a)
		}
	}
}

func TestArchetypesComplete(t *testing.T) {
	if len(Archetypes) != 7 {
		t.Errorf("Archetypes has %d entries, want 7", len(Archetypes))
	}
}
