package controllers

import "testing"

func TestNormalizeRule_SortsAndDedupes(t *testing.T) {
	key, products, errMsg := normalizeRule(ruleReq{
		TagCombination:      "stress, low-energy ,stress",
		RecommendedProducts: " Energy A , Energy B ",
	})
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	if key != "low-energy,stress" {
		t.Fatalf("expected canonical key, got %q", key)
	}
	if products != "Energy A,Energy B" {
		t.Fatalf("expected trimmed products, got %q", products)
	}
}

func TestNormalizeRule_Rejections(t *testing.T) {
	if _, _, errMsg := normalizeRule(ruleReq{TagCombination: " , ", RecommendedProducts: "A"}); errMsg == "" {
		t.Fatalf("expected error for empty tag combination")
	}
	if _, _, errMsg := normalizeRule(ruleReq{TagCombination: "a", RecommendedProducts: "  "}); errMsg == "" {
		t.Fatalf("expected error for empty product list")
	}
	bad := 120.0
	if _, _, errMsg := normalizeRule(ruleReq{TagCombination: "a", RecommendedProducts: "A", DiscountPercentage: &bad}); errMsg == "" {
		t.Fatalf("expected error for discount out of range")
	}
}
