package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/healthquiz-server/config"
	"github.com/vnkhanh/healthquiz-server/models"
	"github.com/vnkhanh/healthquiz-server/utils"
)

/* ========== QZ-40: CRUD sản phẩm ========== */

// GET /api/admin/products?active=true
func ListProducts(c *gin.Context) {
	query := config.DB.Model(&models.Product{}).Order("id ASC")
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy sản phẩm"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

type createProductReq struct {
	Name        string   `json:"name" binding:"required,min=1"`
	Description string   `json:"description"`
	MRP         float64  `json:"mrp"`
	SRP         *float64 `json:"srp"`
}

func CreateProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	if req.MRP < 0 || (req.SRP != nil && *req.SRP < 0) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Giá không được âm"})
		return
	}

	p := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		MRP:         req.MRP,
		SRP:         req.SRP,
		Active:      true,
	}
	if err := config.DB.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo sản phẩm"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

type updateProductReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	MRP         *float64 `json:"mrp"`
	SRP         *float64 `json:"srp"`
	Active      *bool    `json:"active"`
}

func UpdateProduct(c *gin.Context) {
	p, ok := loadProduct(c)
	if !ok {
		return
	}

	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.MRP != nil {
		updates["mrp"] = *req.MRP
	}
	if req.SRP != nil {
		updates["srp"] = *req.SRP
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&p).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// Xoá mềm: chỉ tắt active để rule cũ còn tham chiếu tên không bị gãy hẳn
// (tên không resolve được thì recommend tự bỏ qua)
func DeleteProduct(c *gin.Context) {
	p, ok := loadProduct(c)
	if !ok {
		return
	}
	if err := config.DB.Model(&p).Update("active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá (mềm) thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

/* ========== QZ-41: Upload ảnh sản phẩm ========== */

// POST /api/admin/products/:id/image (multipart, field "image")
func UploadProductImage(c *gin.Context) {
	p, ok := loadProduct(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không nhận được file"})
		return
	}

	fileID := fmt.Sprintf("product_%d", p.ID)
	publicURL, err := utils.UploadToSupabase(fileHeader, fileHeader.Filename, fileID, "products", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload thất bại", "error": err.Error()})
		return
	}

	if err := config.DB.Model(&p).Update("image_url", publicURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lưu URL ảnh"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "uploaded", "image_url": publicURL})
}

func loadProduct(c *gin.Context) (models.Product, bool) {
	var p models.Product
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return p, false
	}
	if e := config.DB.First(&p, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Sản phẩm không tồn tại"})
			return p, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc sản phẩm"})
		return p, false
	}
	return p, true
}
