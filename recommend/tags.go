package recommend

import (
	"sort"
	"strings"

	"github.com/vnkhanh/healthquiz-server/models"
)

// ExtractTags khớp từng câu trả lời với lựa chọn của câu hỏi tương ứng
// (so sánh không phân biệt hoa thường, bỏ khoảng trắng hai đầu) rồi gom
// toàn bộ tag của các lựa chọn khớp được thành một tập không trùng lặp.
// Trả về kèm id các lựa chọn đã khớp — đường tra tag dự phòng cho Service.
// Câu trả lời rỗng, câu hỏi không tồn tại hay text không khớp lựa chọn nào
// đều bị bỏ qua, không làm hỏng cả lượt.
func ExtractTags(questions []models.Question, answers []models.QuizAnswer) ([]models.Tag, []uint) {
	byID := make(map[uint]*models.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	seen := map[string]bool{}
	tags := []models.Tag{}
	optionIDs := []uint{}

	for _, ans := range answers {
		value := strings.TrimSpace(ans.Value)
		if value == "" {
			continue
		}
		q, ok := byID[ans.QuestionID]
		if !ok {
			continue
		}

		// Câu hỏi nhiều lựa chọn: value chứa các đáp án cách nhau dấu phẩy
		parts := []string{value}
		if q.Multiple && strings.Contains(value, ",") {
			parts = strings.Split(value, ",")
		}

		for _, part := range parts {
			want := strings.ToLower(strings.TrimSpace(part))
			if want == "" {
				continue
			}
			for i := range q.Options {
				opt := &q.Options[i]
				if strings.ToLower(strings.TrimSpace(opt.Content)) != want {
					continue
				}
				optionIDs = append(optionIDs, opt.ID)
				for _, t := range opt.Tags {
					if seen[t.Name] {
						continue
					}
					seen[t.Name] = true
					tags = append(tags, t)
				}
				break
			}
		}
	}

	// Sort theo tên để kết quả ổn định giữa các lần gọi
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, optionIDs
}

// TagNames rút tên từ danh sách tag đã unique.
func TagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
