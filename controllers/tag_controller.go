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

/* ========== QZ-20: CRUD tag ========== */

func ListTags(c *gin.Context) {
	var tags []models.Tag
	if err := config.DB.Order("name ASC").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy tag"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

type createTagReq struct {
	Name  string `json:"name" binding:"required,min=1"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

func CreateTag(c *gin.Context) {
	var req createTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	var count int64
	config.DB.Model(&models.Tag{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Tag đã tồn tại"})
		return
	}

	tag := models.Tag{Name: name, Title: req.Title, Icon: req.Icon}
	if err := config.DB.Create(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo tag"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

type updateTagReq struct {
	Title *string `json:"title"`
	Icon  *string `json:"icon"`
}

// Không cho đổi name: rule và option đều tham chiếu theo tên
func UpdateTag(c *gin.Context) {
	tag, ok := loadTag(c)
	if !ok {
		return
	}

	var req updateTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&tag).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func DeleteTag(c *gin.Context) {
	tag, ok := loadTag(c)
	if !ok {
		return
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		// Gỡ tag khỏi mọi lựa chọn trước khi xoá
		if err := tx.Exec("DELETE FROM option_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func loadTag(c *gin.Context) (models.Tag, bool) {
	var tag models.Tag
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return tag, false
	}
	if e := config.DB.First(&tag, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Tag không tồn tại"})
			return tag, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc tag"})
		return tag, false
	}
	return tag, true
}
