package models

type Option struct {
	ID         uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint     `json:"question_id"`
	Question   Question `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
	Content    string   `gorm:"type:text;not null" json:"content"`
	ThuTu      int      `gorm:"column:thu_tu;default:0" json:"thu_tu"`
	Tags       []Tag    `gorm:"many2many:option_tags;constraint:OnDelete:CASCADE" json:"tags"`
}
