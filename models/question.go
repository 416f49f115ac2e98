package models

type Question struct {
	ID       uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	ThuTu    int      `gorm:"column:thu_tu;default:0" json:"thu_tu"`
	Multiple bool     `gorm:"default:false" json:"multiple"` // cho phép chọn nhiều lựa chọn
	Active   bool     `gorm:"default:true" json:"active"`
	Options  []Option `gorm:"foreignKey:QuestionID" json:"options"`
}
