package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/healthquiz-server/config"
	"github.com/vnkhanh/healthquiz-server/models"
)

/* ========== QZ-50: Danh sách session (admin) ========== */

// GET /api/admin/sessions?page=1&limit=10&status=completed&start_date=2026-08-01&end_date=2026-08-31
func ListSessions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := (page - 1) * limit

	query := config.DB.Model(&models.QuizSession{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			query = query.Where("created_at >= ?", startDate)
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			// endDate + 1 day để inclusive
			query = query.Where("created_at < ?", endDate.Add(24*time.Hour))
		}
	}

	var total int64
	query.Count(&total)

	var sessions []models.QuizSession
	if err := query.
		Preload("Answers").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy danh sách session"})
		return
	}

	resp := []gin.H{}
	for _, s := range sessions {
		resp = append(resp, gin.H{
			"id":           s.ID,
			"token":        s.Token,
			"name":         s.Name,
			"email":        s.Email,
			"status":       s.Status,
			"answer_count": len(s.Answers),
			"created_at":   s.CreatedAt,
			"submitted_at": s.SubmittedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     page,
		"limit":    limit,
		"total":    total,
		"sessions": resp,
	})
}

/* ========== QZ-51: Chi tiết session ========== */

// GET /api/admin/sessions/:id
func GetSessionDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID không hợp lệ"})
		return
	}

	var session models.QuizSession
	if err := config.DB.Preload("Answers").First(&session, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Session không tồn tại"})
		return
	}

	answers := []gin.H{}
	for _, a := range session.Answers {
		answers = append(answers, gin.H{
			"question_id":   a.QuestionID,
			"value":         a.Value,
			"extra_details": a.ExtraDetails,
			"option_id":     a.OptionID,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           session.ID,
		"token":        session.Token,
		"name":         session.Name,
		"email":        session.Email,
		"contact":      session.Contact,
		"age":          session.Age,
		"status":       session.Status,
		"created_at":   session.CreatedAt,
		"submitted_at": session.SubmittedAt,
		"answers":      answers,
	})
}

/* ========== QZ-52: Dashboard phân bố câu trả lời ========== */

// GET /api/admin/sessions/dashboard — đếm phân bố đáp án theo từng câu hỏi
func GetSessionDashboard(c *gin.Context) {
	db := config.DB

	var questions []models.Question
	if err := db.Order("thu_tu ASC, id ASC").Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tìm thấy câu hỏi"})
		return
	}

	var totalSessions, completedSessions int64
	db.Model(&models.QuizSession{}).Count(&totalSessions)
	db.Model(&models.QuizSession{}).Where("status = ?", "completed").Count(&completedSessions)

	results := []gin.H{}
	for _, q := range questions {
		var rows []struct {
			Answer string
			Count  int
		}
		db.Raw(`
			SELECT value AS answer, COUNT(*) AS count
			FROM quiz_answers
			WHERE question_id = ? AND value <> ''
			GROUP BY value
			ORDER BY count DESC
		`, q.ID).Scan(&rows)

		// tính tổng để lấy %
		var total int
		for _, r := range rows {
			total += r.Count
		}

		stats := []gin.H{}
		for _, r := range rows {
			percent := 0.0
			if total > 0 {
				percent = float64(r.Count) * 100 / float64(total)
			}
			stats = append(stats, gin.H{
				"answer":  r.Answer,
				"count":   r.Count,
				"percent": percent,
			})
		}

		results = append(results, gin.H{
			"question_id": q.ID,
			"content":     q.Content,
			"active":      q.Active,
			"stats":       stats,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_sessions":     totalSessions,
		"completed_sessions": completedSessions,
		"results":            results,
	})
}
