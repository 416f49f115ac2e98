package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/healthquiz-server/config"
	"github.com/vnkhanh/healthquiz-server/models"
	"github.com/vnkhanh/healthquiz-server/recommend"
)

// Recommender được main khởi tạo một lần và gắn vào đây trước khi SetupRoutes
var Recommender *recommend.Service

/* ========== QZ-01: Lấy bộ câu hỏi public ========== */

// GET /api/quiz/questions — chỉ câu hỏi active, theo thứ tự; không trả tag ra ngoài
func GetQuizQuestions(c *gin.Context) {
	var questions []models.Question
	if err := config.DB.Where("active = ?", true).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("thu_tu ASC, id ASC") }).
		Order("thu_tu ASC, id ASC").
		Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy câu hỏi"})
		return
	}

	resp := []gin.H{}
	for _, q := range questions {
		opts := []gin.H{}
		for _, o := range q.Options {
			opts = append(opts, gin.H{"id": o.ID, "content": o.Content})
		}
		resp = append(resp, gin.H{
			"id":       q.ID,
			"content":  q.Content,
			"multiple": q.Multiple,
			"options":  opts,
		})
	}
	c.JSON(http.StatusOK, gin.H{"questions": resp})
}

/* ========== QZ-02: Mở session (progressive save) ========== */

// POST /api/quiz/sessions
func StartQuizSession(c *gin.Context) {
	session := models.QuizSession{
		Token:  uuid.New().String(),
		Status: "in_progress",
	}
	if err := config.DB.Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": session.Token})
}

/* ========== QZ-03: Lưu câu trả lời từng phần ========== */

type saveAnswerReq struct {
	QuestionID   uint    `json:"question_id" binding:"required"`
	Value        string  `json:"value"`
	ExtraDetails *string `json:"extra_details"`
}

type saveAnswersReq struct {
	Answers []saveAnswerReq `json:"answers" binding:"required,min=1,dive"`
}

// PUT /api/quiz/sessions/:token/answers
// Upsert theo (session, question): trả lời lại thì ghi đè giá trị cũ.
func SaveQuizAnswers(c *gin.Context) {
	session, ok := loadSession(c)
	if !ok {
		return
	}
	if session.Status != "in_progress" {
		c.JSON(http.StatusConflict, gin.H{"message": "Session đã hoàn thành, không sửa được câu trả lời"})
		return
	}

	var req saveAnswersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, ans := range req.Answers {
			var q models.Question
			if err := tx.Preload("Options").
				Where("id = ? AND active = ?", ans.QuestionID, true).
				First(&q).Error; err != nil {
				// Câu hỏi không còn: bỏ qua, không hỏng cả batch
				log.Printf("quiz: câu hỏi %d không tồn tại/inactive, bỏ qua", ans.QuestionID)
				continue
			}

			row := models.QuizAnswer{
				SessionID:    session.ID,
				QuestionID:   q.ID,
				Value:        ans.Value,
				ExtraDetails: ans.ExtraDetails,
				OptionID:     matchOptionID(&q, ans.Value),
			}

			var existing models.QuizAnswer
			e := tx.Where("session_id = ? AND question_id = ?", session.ID, q.ID).First(&existing).Error
			if e == nil {
				if err := tx.Model(&existing).Updates(map[string]interface{}{
					"value":         row.Value,
					"extra_details": row.ExtraDetails,
					"option_id":     row.OptionID,
				}).Error; err != nil {
					return err
				}
				continue
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("quiz: lưu câu trả lời thất bại: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lưu câu trả lời"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "saved"})
}

/* ========== QZ-04: Hoàn thành session ========== */

type submitSessionReq struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Contact *string `json:"contact"`
	Age     *int    `json:"age"`
}

// POST /api/quiz/sessions/:token/submit
// Thông tin cá nhân nằm ở đây, không trộn vào answers. Submit lần hai vẫn OK.
func SubmitQuizSession(c *gin.Context) {
	session, ok := loadSession(c)
	if !ok {
		return
	}

	var req submitSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	if req.Email != nil && *req.Email != "" && !isValidEmail(*req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email không hợp lệ"})
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":       "completed",
		"submitted_at": &now,
	}
	if req.Name != nil {
		updates["name"] = req.Name
	}
	if req.Email != nil {
		updates["email"] = req.Email
	}
	if req.Contact != nil {
		updates["contact"] = req.Contact
	}
	if req.Age != nil {
		updates["age"] = req.Age
	}

	if err := config.DB.Model(&models.QuizSession{}).
		Where("id = ?", session.ID).
		Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể hoàn thành session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "completed", "token": session.Token})
}

/* ========== QZ-05: Kết quả gợi ý ========== */

// GET /api/quiz/sessions/:token/result
// Luôn 200: recommend.Service tự quy mọi sự cố về fallback. Kết quả tính lại
// mỗi lần xem, không lưu — rule/catalog đổi thì kết quả đổi theo.
func GetQuizResult(c *gin.Context) {
	session, ok := loadSession(c)
	if !ok {
		return
	}

	var answers []models.QuizAnswer
	if err := config.DB.Where("session_id = ?", session.ID).
		Order("question_id ASC").
		Find(&answers).Error; err != nil {
		log.Printf("quiz: không đọc được câu trả lời của session %d: %v", session.ID, err)
		// answers rỗng -> service vẫn trả fallback
	}

	result := Recommender.Recommend(answers)
	c.JSON(http.StatusOK, gin.H{
		"token":  session.Token,
		"status": session.Status,
		"result": result,
	})
}

// ===== helpers =====

func loadSession(c *gin.Context) (*models.QuizSession, bool) {
	token := c.Param("token")
	if _, err := uuid.Parse(token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token không hợp lệ"})
		return nil, false
	}
	var session models.QuizSession
	if err := config.DB.Where("token = ?", token).First(&session).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Session không tồn tại"})
		return nil, false
	}
	return &session, true
}

// matchOptionID tìm id lựa chọn khớp value (không phân biệt hoa thường) —
// ghi lại để recommend có đường tra tag dự phòng khi text hết khớp.
func matchOptionID(q *models.Question, value string) *uint {
	want := strings.ToLower(strings.TrimSpace(value))
	if want == "" {
		return nil
	}
	for i := range q.Options {
		if strings.ToLower(strings.TrimSpace(q.Options[i].Content)) == want {
			id := q.Options[i].ID
			return &id
		}
	}
	return nil
}

func isValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}
