package models

import "time"

// QuizAnswer: một câu trả lời trong session. Mỗi (session, question) chỉ có một dòng,
// trả lời lại thì ghi đè. OptionID là lựa chọn khớp được tại thời điểm lưu (nếu có),
// dùng làm đường tra tag dự phòng khi text không còn khớp lựa chọn nào.
type QuizAnswer struct {
	ID           uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID    uint        `gorm:"not null;uniqueIndex:idx_session_question" json:"session_id"`
	Session      QuizSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
	QuestionID   uint        `gorm:"not null;uniqueIndex:idx_session_question" json:"question_id"`
	Value        string      `gorm:"type:text" json:"value"`
	ExtraDetails *string     `gorm:"column:extra_details;type:text" json:"extra_details"`
	OptionID     *uint       `json:"option_id"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
