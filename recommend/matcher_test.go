package recommend

import (
	"testing"

	"github.com/vnkhanh/healthquiz-server/models"
)

func rule(id uint, combo, products string) models.Rule {
	return models.Rule{ID: id, TagCombination: combo, RecommendedProducts: products}
}

func TestMatchRule_ExactWinsOverEverything(t *testing.T) {
	rules := []models.Rule{
		rule(1, "low-energy", "A"),
		rule(2, "joint-pain,low-energy,stress", "B"),
		rule(3, "joint-pain,low-energy", "C"),
	}
	got := MatchRule([]string{"low-energy", "joint-pain"}, rules)
	if got == nil || got.ID != 3 {
		t.Fatalf("expected exact rule 3, got %+v", got)
	}
}

func TestMatchRule_ExactIgnoresKeyOrder(t *testing.T) {
	// key lưu sai thứ tự vẫn phải khớp exact vì so theo tập
	rules := []models.Rule{
		rule(1, "low-energy, joint-pain", "A"),
	}
	got := MatchRule([]string{"joint-pain", "low-energy"}, rules)
	if got == nil || got.ID != 1 {
		t.Fatalf("expected rule 1 despite unsorted key, got %+v", got)
	}
}

func TestMatchRule_SubsetPreferredOverPartial(t *testing.T) {
	rules := []models.Rule{
		rule(1, "low-energy,stress", "B"),                      // partial (stress không thuộc user)
		rule(2, "low-energy,joint-pain,digestion", "A"),        // superset
	}
	got := MatchRule([]string{"low-energy", "joint-pain"}, rules)
	if got == nil || got.ID != 2 {
		t.Fatalf("expected subset rule 2, got %+v", got)
	}
}

func TestMatchRule_TightestSubsetWins(t *testing.T) {
	rules := []models.Rule{
		rule(1, "low-energy,joint-pain,stress", "A"),
		rule(2, "low-energy,joint-pain", "B"),
	}
	got := MatchRule([]string{"low-energy"}, rules)
	if got == nil || got.ID != 2 {
		t.Fatalf("expected smaller superset rule 2, got %+v", got)
	}
}

func TestMatchRule_PartialPicksMostOverlap(t *testing.T) {
	rules := []models.Rule{
		rule(1, "stress,sleep", "A"),                 // overlap 1
		rule(2, "stress,sleep,low-energy", "B"),      // overlap 2 nhưng không phải superset
		rule(3, "digestion", "C"),                    // overlap 0
	}
	got := MatchRule([]string{"low-energy", "stress", "joint-pain"}, rules)
	if got == nil || got.ID != 2 {
		t.Fatalf("expected partial rule 2, got %+v", got)
	}
}

func TestMatchRule_PartialTieFirstWins(t *testing.T) {
	rules := []models.Rule{
		rule(1, "stress,sleep", "A"),
		rule(2, "stress,digestion", "B"),
	}
	got := MatchRule([]string{"stress", "joint-pain"}, rules)
	if got == nil || got.ID != 1 {
		t.Fatalf("expected first-encountered rule 1 on tie, got %+v", got)
	}
}

func TestMatchRule_ZeroOverlapNeverSelected(t *testing.T) {
	rules := []models.Rule{
		rule(1, "sleep", "A"),
		rule(2, "digestion,skin", "B"),
	}
	if got := MatchRule([]string{"low-energy"}, rules); got != nil {
		t.Fatalf("expected nil for zero overlap, got %+v", got)
	}
}

func TestMatchRule_EmptyUserTags(t *testing.T) {
	rules := []models.Rule{rule(1, "low-energy", "A")}
	if got := MatchRule(nil, rules); got != nil {
		t.Fatalf("expected nil for empty tag set, got %+v", got)
	}
	if got := MatchRule([]string{"  ", ""}, rules); got != nil {
		t.Fatalf("expected nil for blank tags, got %+v", got)
	}
}

func TestMatchRule_Idempotent(t *testing.T) {
	rules := []models.Rule{
		rule(1, "low-energy,stress", "A"),
		rule(2, "low-energy", "B"),
	}
	user := []string{"low-energy", "stress"}
	first := MatchRule(user, rules)
	for i := 0; i < 10; i++ {
		again := MatchRule(user, rules)
		if again == nil || first == nil || again.ID != first.ID {
			t.Fatalf("match not stable: first=%+v again=%+v", first, again)
		}
	}
}

func TestParseTagCombination(t *testing.T) {
	got := ParseTagCombination(" stress , low-energy,stress, ,joint-pain ")
	want := []string{"joint-pain", "low-energy", "stress"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSplitProductNames(t *testing.T) {
	got := SplitProductNames(" Daily Energy Boost , , Stress Relief Complex")
	if len(got) != 2 || got[0] != "Daily Energy Boost" || got[1] != "Stress Relief Complex" {
		t.Fatalf("unexpected split: %v", got)
	}
}
