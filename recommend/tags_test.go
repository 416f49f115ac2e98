package recommend

import (
	"testing"

	"github.com/vnkhanh/healthquiz-server/models"
)

func testQuestions() []models.Question {
	return []models.Question{
		{
			ID: 1, Content: "Bạn thấy thế nào mỗi sáng?", Active: true,
			Options: []models.Option{
				{ID: 11, QuestionID: 1, Content: "Luôn mệt mỏi", Tags: []models.Tag{{ID: 1, Name: "low-energy"}}},
				{ID: 12, QuestionID: 1, Content: "Bình thường"},
			},
		},
		{
			ID: 2, Content: "Vấn đề bạn quan tâm?", Active: true, Multiple: true,
			Options: []models.Option{
				{ID: 21, QuestionID: 2, Content: "Đau khớp", Tags: []models.Tag{{ID: 2, Name: "joint-pain"}}},
				{ID: 22, QuestionID: 2, Content: "Căng thẳng", Tags: []models.Tag{{ID: 3, Name: "stress"}, {ID: 1, Name: "low-energy"}}},
			},
		},
	}
}

func answer(qid uint, value string) models.QuizAnswer {
	return models.QuizAnswer{QuestionID: qid, Value: value}
}

func TestExtractTags_CaseInsensitiveTrimmed(t *testing.T) {
	tags, optionIDs := ExtractTags(testQuestions(), []models.QuizAnswer{
		answer(1, "  luôn mệt mỏi  "),
	})
	if len(tags) != 1 || tags[0].Name != "low-energy" {
		t.Fatalf("expected low-energy, got %+v", tags)
	}
	if len(optionIDs) != 1 || optionIDs[0] != 11 {
		t.Fatalf("expected option 11, got %v", optionIDs)
	}
}

func TestExtractTags_DedupeAcrossOptions(t *testing.T) {
	tags, _ := ExtractTags(testQuestions(), []models.QuizAnswer{
		answer(1, "Luôn mệt mỏi"),
		answer(2, "Căng thẳng"),
	})
	// low-energy xuất hiện ở cả hai option nhưng chỉ được tính một lần
	if len(tags) != 2 {
		t.Fatalf("expected 2 unique tags, got %+v", tags)
	}
	if tags[0].Name != "low-energy" || tags[1].Name != "stress" {
		t.Fatalf("expected sorted [low-energy stress], got %+v", tags)
	}
}

func TestExtractTags_MultipleChoiceSplitsValue(t *testing.T) {
	tags, optionIDs := ExtractTags(testQuestions(), []models.QuizAnswer{
		answer(2, "Đau khớp, Căng thẳng"),
	})
	if len(tags) != 3 {
		t.Fatalf("expected 3 tags from two options, got %+v", tags)
	}
	if len(optionIDs) != 2 {
		t.Fatalf("expected 2 matched options, got %v", optionIDs)
	}
}

func TestExtractTags_SkipsBadRows(t *testing.T) {
	tags, optionIDs := ExtractTags(testQuestions(), []models.QuizAnswer{
		answer(1, "   "),          // rỗng
		answer(99, "Đau khớp"),    // câu hỏi không tồn tại
		answer(1, "Không có đáp án này"), // text không khớp lựa chọn
	})
	if len(tags) != 0 || len(optionIDs) != 0 {
		t.Fatalf("expected nothing extracted, got tags=%+v options=%v", tags, optionIDs)
	}
}

func TestExtractTags_OptionWithoutTags(t *testing.T) {
	tags, optionIDs := ExtractTags(testQuestions(), []models.QuizAnswer{
		answer(1, "Bình thường"),
	})
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %+v", tags)
	}
	// option vẫn được ghi nhận dù không mang tag
	if len(optionIDs) != 1 || optionIDs[0] != 12 {
		t.Fatalf("expected option 12 recorded, got %v", optionIDs)
	}
}
