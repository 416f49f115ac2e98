package recommend

import (
	"sort"
	"strings"

	"github.com/vnkhanh/healthquiz-server/models"
)

// ParseTagCombination tách key "a,b,c" thành danh sách tên tag đã trim,
// bỏ trùng và sort. Key lưu trong DB được chuẩn hoá khi admin ghi rule,
// nhưng parse lại ở đây để rule nhập tay sai thứ tự vẫn khớp đúng.
func ParseTagCombination(s string) []string {
	return normalizeTags(strings.Split(s, ","))
}

// SplitProductNames tách danh sách tên sản phẩm của rule (nối bằng dấu phẩy).
func SplitProductNames(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MatchRule chọn rule khớp nhất theo ba bậc ưu tiên, bậc sau chỉ chạy khi
// bậc trước không tìm được gì:
//  1. Khớp chính xác: tập tag của user bằng tập tag của rule (so theo TẬP,
//     không so chuỗi, nên key chưa sort vẫn khớp).
//  2. Subset: mọi tag của user đều nằm trong rule; rule ít tag nhất thắng.
//  3. Partial: rule giao nhiều tag nhất với user, phải giao ít nhất 1.
//
// Hoà thì rule đứng trước trong danh sách thắng. Tập tag rỗng luôn trả nil.
func MatchRule(userTags []string, rules []models.Rule) *models.Rule {
	user := normalizeTags(userTags)
	if len(user) == 0 {
		return nil
	}
	userSet := toSet(user)

	// 1. Khớp chính xác theo tập
	for i := range rules {
		ruleSet := toSet(ParseTagCombination(rules[i].TagCombination))
		if setsEqual(ruleSet, userSet) {
			return &rules[i]
		}
	}

	// 2. Subset chặt nhất
	var best *models.Rule
	bestSize := 0
	for i := range rules {
		ruleSet := toSet(ParseTagCombination(rules[i].TagCombination))
		if !containsAll(ruleSet, userSet) {
			continue
		}
		if best == nil || len(ruleSet) < bestSize {
			best = &rules[i]
			bestSize = len(ruleSet)
		}
	}
	if best != nil {
		return best
	}

	// 3. Partial nhiều giao nhất
	bestOverlap := 0
	for i := range rules {
		ruleSet := toSet(ParseTagCombination(rules[i].TagCombination))
		n := overlap(ruleSet, userSet)
		if n > bestOverlap {
			bestOverlap = n
			best = &rules[i]
		}
	}
	return best // nil nếu không rule nào giao tag nào
}

func normalizeTags(raw []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func setsEqual(a, b map[string]bool) bool {
	return len(a) == len(b) && containsAll(a, b)
}

// containsAll: mọi phần tử của sub đều nằm trong super
func containsAll(super, sub map[string]bool) bool {
	for k := range sub {
		if !super[k] {
			return false
		}
	}
	return true
}

func overlap(a, b map[string]bool) int {
	n := 0
	for k := range a {
		if b[k] {
			n++
		}
	}
	return n
}
