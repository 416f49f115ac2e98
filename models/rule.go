package models

import "time"

// Rule ánh xạ một tổ hợp tag sang danh sách sản phẩm gợi ý + giảm giá (nếu có).
// TagCombination lưu các tên tag đã sort, nối bằng dấu phẩy (chuẩn hoá khi ghi).
type Rule struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TagCombination      string    `gorm:"column:tag_combination;type:text;not null" json:"tag_combination"`
	RecommendedProducts string    `gorm:"column:recommended_products;type:text;not null" json:"recommended_products"` // tên sản phẩm, nối bằng dấu phẩy
	CouponCode          *string   `gorm:"column:coupon_code;size:50" json:"coupon_code"`
	DiscountPercentage  float64   `gorm:"column:discount_percentage;type:decimal(5,2);default:0" json:"discount_percentage"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Rule) TableName() string {
	return "recommendation_rules"
}
