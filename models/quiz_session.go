package models

import "time"

// QuizSession là một lượt làm quiz. Tạo ngay khi user bắt đầu (progressive save),
// chuyển sang completed khi submit. Thông tin cá nhân nằm ở đây, không nằm trong answers.
type QuizSession struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Token       string     `gorm:"size:36;uniqueIndex;not null" json:"token"`
	Name        *string    `gorm:"size:100" json:"name"`
	Email       *string    `gorm:"size:100" json:"email"`
	Contact     *string    `gorm:"size:30" json:"contact"`
	Age         *int       `json:"age"`
	Status      string     `gorm:"size:20;default:'in_progress'" json:"status"` // in_progress | completed
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	SubmittedAt *time.Time `json:"submitted_at"`

	Answers []QuizAnswer `gorm:"foreignKey:SessionID" json:"-"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}
