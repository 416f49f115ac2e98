package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"

	"github.com/vnkhanh/healthquiz-server/config"
	"github.com/vnkhanh/healthquiz-server/middleware"
	"github.com/vnkhanh/healthquiz-server/models"
	"github.com/vnkhanh/healthquiz-server/utils"
)

type RegisterReq struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Email đã tồn tại"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể mã hóa mật khẩu"})
		return
	}

	u := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		IsAdmin:  false,
	}

	if err := config.DB.Create(&u).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo tài khoản"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":         u.ID,
			"name":       u.Name,
			"email":      u.Email,
			"is_admin":   u.IsAdmin,
			"created_at": u.CreatedAt,
		},
	})
}

type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
		return
	}

	var u models.User
	if err := config.DB.Where("email = ?", req.Email).First(&u).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email hoặc mật khẩu không đúng"})
		return
	}
	if !utils.CheckPassword(u.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email hoặc mật khẩu không đúng"})
		return
	}

	token, err := utils.GenerateToken(fmt.Sprintf("%d", u.ID), u.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       u.ID,
			"name":     u.Name,
			"email":    u.Email,
			"is_admin": u.IsAdmin,
		},
	})
}

type GoogleLoginReq struct {
	IDToken string `json:"id_token" binding:"required"`
}

// GoogleLogin xác thực Google ID token rồi tạo/tìm user theo email.
// Tài khoản tạo qua Google không có mật khẩu dùng được (hash chuỗi ngẫu nhiên phía Google).
func GoogleLogin(c *gin.Context) {
	var req GoogleLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Thiếu id_token"})
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), req.IDToken, "")
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Google token không hợp lệ"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token không chứa email"})
		return
	}

	var u models.User
	if err := config.DB.Where("email = ?", email).First(&u).Error; err != nil {
		// Chưa có thì tạo mới
		hash, _ := utils.HashPassword(payload.Subject)
		u = models.User{Name: name, Email: email, Password: hash}
		if err := config.DB.Create(&u).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo tài khoản"})
			return
		}
	}

	token, err := utils.GenerateToken(fmt.Sprintf("%d", u.ID), u.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       u.ID,
			"name":     u.Name,
			"email":    u.Email,
			"is_admin": u.IsAdmin,
		},
	})
}

// Me trả thông tin user hiện tại (AuthJWT đã nạp sẵn)
func Me(c *gin.Context) {
	v, _ := c.Get(middleware.CtxUserPublic)
	c.JSON(http.StatusOK, gin.H{"user": v})
}
