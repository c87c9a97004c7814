package advice

import "testing"

func TestBuilderBuildsWithRequiredFields(t *testing.T) {
	got := NewBuilder().
		Title("t").
		Problem("p").
		Evidence("e").
		Suggestion("s1").
		Suggestion("s2").
		Priority(9).
		Category(CategoryLaning).
		Perspective(PerspectiveSelfImprovement).
		Build()

	if got == nil {
		t.Fatal("expected advice to build")
	}
	if got.Title != "t" || got.Problem != "p" || got.Evidence != "e" {
		t.Fatalf("unexpected fields: %+v", got)
	}
	if len(got.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got.Suggestions))
	}
	if got.Priority != 5 {
		t.Fatalf("expected priority clamped to 5, got %d", got.Priority)
	}
}

func TestBuilderRefusesMissingRequiredField(t *testing.T) {
	if got := NewBuilder().Title("t").Suggestion("s").Build(); got != nil {
		t.Fatalf("expected nil without problem/evidence, got %+v", got)
	}
}

func TestBuilderRefusesNoSuggestions(t *testing.T) {
	if got := NewBuilder().Title("t").Problem("p").Evidence("e").Build(); got != nil {
		t.Fatalf("expected nil without any suggestions, got %+v", got)
	}
}

func TestStrategyForReturnsDistinctPerspectives(t *testing.T) {
	if StrategyFor(PerspectiveSelfImprovement).Perspective() != PerspectiveSelfImprovement {
		t.Fatal("expected self-improvement strategy")
	}
	if StrategyFor(PerspectiveTargeting).Perspective() != PerspectiveTargeting {
		t.Fatal("expected targeting strategy")
	}
	if StrategyFor(PerspectiveCollaboration).Perspective() != PerspectiveCollaboration {
		t.Fatal("expected collaboration strategy")
	}
}
