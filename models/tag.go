package models

// Tag là nhãn mô tả vấn đề sức khỏe/lối sống, gắn vào lựa chọn của câu hỏi.
type Tag struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Title string `gorm:"size:255" json:"title"`
	Icon  string `gorm:"size:255" json:"icon"`
}
