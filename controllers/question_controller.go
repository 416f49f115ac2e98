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
)

/* ========== QZ-10: Danh sách câu hỏi (admin, gồm cả inactive) ========== */

func ListQuestions(c *gin.Context) {
	var questions []models.Question
	if err := config.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("thu_tu ASC, id ASC") }).
		Preload("Options.Tags").
		Order("thu_tu ASC, id ASC").
		Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy câu hỏi"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

/* ========== QZ-11: Thêm câu hỏi ========== */

type addQuestionReq struct {
	Content  string   `json:"content" binding:"required"`
	Multiple bool     `json:"multiple"`
	Options  []string `json:"options"`
}

func AddQuestion(c *gin.Context) {
	var req addQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	// Lấy index kế tiếp = MAX(thu_tu)+1 (0-based)
	type nextRes struct{ Next int }
	var r nextRes
	_ = config.DB.Model(&models.Question{}).
		Select("COALESCE(MAX(thu_tu), -1) + 1 AS next").
		Scan(&r).Error

	q := models.Question{
		Content:  strings.TrimSpace(req.Content),
		Multiple: req.Multiple,
		Active:   true,
		ThuTu:    r.Next,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&q).Error; err != nil {
			return err
		}
		for idx, content := range req.Options {
			content = strings.TrimSpace(content)
			if content == "" {
				continue
			}
			opt := models.Option{QuestionID: q.ID, Content: content, ThuTu: idx}
			if err := tx.Create(&opt).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể thêm câu hỏi"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"question_id": q.ID})
}

/* ========== QZ-12: Cập nhật câu hỏi ========== */

type updateQuestionReq struct {
	Content  *string `json:"content"`
	Multiple *bool   `json:"multiple"`
	Active   *bool   `json:"active"`
}

func UpdateQuestion(c *gin.Context) {
	q, ok := loadQuestion(c)
	if !ok {
		return
	}

	var req updateQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Multiple != nil {
		updates["multiple"] = *req.Multiple
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&q).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

/* ========== QZ-13: Xoá câu hỏi + dồn thứ tự ========== */

func DeleteQuestion(c *gin.Context) {
	q, ok := loadQuestion(c)
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", q.ID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&q).Error; err != nil {
			return err
		}
		// Dồn thứ tự: các câu phía sau lùi 1 (0-based)
		return tx.Model(&models.Question{}).
			Where("thu_tu > ?", q.ThuTu).
			Update("thu_tu", gorm.Expr("thu_tu - 1")).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

/* ========== QZ-14: Sắp xếp lại câu hỏi ========== */

type reorderReq struct {
	Order []uint `json:"order" binding:"required,min=1,dive,required"`
}

func ReorderQuestions(c *gin.Context) {
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	// Validate: tất cả id đều tồn tại
	var count int64
	if err := config.DB.Model(&models.Question{}).
		Where("id IN ?", req.Order).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể validate câu hỏi"})
		return
	}
	if count != int64(len(req.Order)) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Danh sách order chứa câu hỏi không tồn tại"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for idx, qID := range req.Order {
			if err := tx.Model(&models.Question{}).
				Where("id = ?", qID).
				Update("thu_tu", idx).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thứ tự thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

/* ========== QZ-15: Lựa chọn của câu hỏi ========== */

type addOptionReq struct {
	Content string `json:"content" binding:"required"`
}

func AddOption(c *gin.Context) {
	q, ok := loadQuestion(c)
	if !ok {
		return
	}

	var req addOptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	type nextRes struct{ Next int }
	var r nextRes
	_ = config.DB.Model(&models.Option{}).
		Where("question_id = ?", q.ID).
		Select("COALESCE(MAX(thu_tu), -1) + 1 AS next").
		Scan(&r).Error

	opt := models.Option{QuestionID: q.ID, Content: strings.TrimSpace(req.Content), ThuTu: r.Next}
	if err := config.DB.Create(&opt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể thêm lựa chọn"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"option_id": opt.ID, "question_id": q.ID})
}

type updateOptionReq struct {
	Content *string `json:"content"`
	ThuTu   *int    `json:"thu_tu"`
}

func UpdateOption(c *gin.Context) {
	opt, ok := loadOption(c)
	if !ok {
		return
	}

	var req updateOptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.ThuTu != nil {
		updates["thu_tu"] = *req.ThuTu
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&opt).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func DeleteOption(c *gin.Context) {
	opt, ok := loadOption(c)
	if !ok {
		return
	}
	if err := config.DB.Select("Tags").Delete(&opt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

/* ========== QZ-16: Gán tag cho lựa chọn ========== */

type assignTagsReq struct {
	TagIDs []uint `json:"tag_ids" binding:"required"`
}

// PUT /api/admin/options/:id/tags — thay toàn bộ tag của lựa chọn.
// Không ảnh hưởng câu trả lời đã lưu: OptionID trong quiz_answers vẫn nguyên.
func AssignOptionTags(c *gin.Context) {
	opt, ok := loadOption(c)
	if !ok {
		return
	}

	var req assignTagsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	var tags []models.Tag
	if len(req.TagIDs) > 0 {
		if err := config.DB.Where("id IN ?", req.TagIDs).Find(&tags).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc tag"})
			return
		}
		if len(tags) != len(req.TagIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Danh sách chứa tag không tồn tại"})
			return
		}
	}

	if err := config.DB.Model(&opt).Association("Tags").Replace(tags); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gán tag thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated", "option_id": opt.ID, "tag_count": len(tags)})
}

// ===== helpers =====

func loadQuestion(c *gin.Context) (models.Question, bool) {
	var q models.Question
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return q, false
	}
	if e := config.DB.First(&q, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Câu hỏi không tồn tại"})
			return q, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc câu hỏi"})
		return q, false
	}
	return q, true
}

func loadOption(c *gin.Context) (models.Option, bool) {
	var opt models.Option
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return opt, false
	}
	if e := config.DB.First(&opt, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Lựa chọn không tồn tại"})
			return opt, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc lựa chọn"})
		return opt, false
	}
	return opt, true
}
