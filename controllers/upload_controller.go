package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/healthquiz-server/utils"
)

// POST /api/admin/uploads — upload asset chung (icon tag, banner...), trả public URL
func UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không nhận được file"})
		return
	}

	fileID := fmt.Sprintf("%d", time.Now().UnixNano())
	publicURL, err := utils.UploadToSupabase(fileHeader, fileHeader.Filename, fileID, "assets", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Upload thất bại", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Upload thành công",
		"url":     publicURL,
	})
}
