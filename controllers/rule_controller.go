package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/healthquiz-server/config"
	"github.com/vnkhanh/healthquiz-server/models"
	"github.com/vnkhanh/healthquiz-server/recommend"
)

/* ========== QZ-30: CRUD rule gợi ý ========== */

func ListRules(c *gin.Context) {
	var rules []models.Rule
	if err := config.DB.Order("id ASC").Find(&rules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy rule"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

type ruleReq struct {
	TagCombination      string   `json:"tag_combination" binding:"required"`
	RecommendedProducts string   `json:"recommended_products" binding:"required"`
	CouponCode          *string  `json:"coupon_code"`
	DiscountPercentage  *float64 `json:"discount_percentage"`
}

func CreateRule(c *gin.Context) {
	var req ruleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	key, products, errMsg := normalizeRule(req)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMsg})
		return
	}

	rule := models.Rule{
		TagCombination:      key,
		RecommendedProducts: products,
		CouponCode:          req.CouponCode,
	}
	if req.DiscountPercentage != nil {
		rule.DiscountPercentage = *req.DiscountPercentage
	}

	if err := config.DB.Create(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo rule"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rule": rule})
}

func UpdateRule(c *gin.Context) {
	rule, ok := loadRule(c)
	if !ok {
		return
	}

	var req ruleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	key, products, errMsg := normalizeRule(req)
	if errMsg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMsg})
		return
	}

	updates := map[string]interface{}{
		"tag_combination":      key,
		"recommended_products": products,
		"coupon_code":          req.CouponCode,
	}
	if req.DiscountPercentage != nil {
		updates["discount_percentage"] = *req.DiscountPercentage
	}

	if err := config.DB.Model(&rule).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func DeleteRule(c *gin.Context) {
	rule, ok := loadRule(c)
	if !ok {
		return
	}
	if err := config.DB.Delete(&rule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// normalizeRule chuẩn hoá key khi ghi: trim, bỏ trùng, sort, nối dấu phẩy —
// matcher parse lại theo tập nên key cũ nhập tay sai thứ tự vẫn khớp,
// nhưng dữ liệu mới luôn sạch. Kiểm tra luôn discount trong [0,100].
func normalizeRule(req ruleReq) (key string, products string, errMsg string) {
	tags := recommend.ParseTagCombination(req.TagCombination)
	if len(tags) == 0 {
		return "", "", "tag_combination không chứa tag nào"
	}
	names := recommend.SplitProductNames(req.RecommendedProducts)
	if len(names) == 0 {
		return "", "", "recommended_products không chứa sản phẩm nào"
	}
	if req.DiscountPercentage != nil && (*req.DiscountPercentage < 0 || *req.DiscountPercentage > 100) {
		return "", "", "discount_percentage phải trong khoảng 0-100"
	}
	return strings.Join(tags, ","), strings.Join(names, ","), ""
}

func loadRule(c *gin.Context) (models.Rule, bool) {
	var rule models.Rule
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return rule, false
	}
	if e := config.DB.First(&rule, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Rule không tồn tại"})
			return rule, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc rule"})
		return rule, false
	}
	return rule, true
}
