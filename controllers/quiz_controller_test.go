package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/healthquiz-server/config"
	"github.com/vnkhanh/healthquiz-server/models"
	"github.com/vnkhanh/healthquiz-server/recommend"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Question{}, &models.Option{}, &models.Tag{},
		&models.Rule{}, &models.Product{}, &models.QuizSession{}, &models.QuizAnswer{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	config.DB = db
	Recommender = recommend.NewService(db)

	r := gin.New()
	quiz := r.Group("/api/quiz")
	{
		quiz.GET("/questions", GetQuizQuestions)
		quiz.POST("/sessions", StartQuizSession)
		quiz.PUT("/sessions/:token/answers", SaveQuizAnswers)
		quiz.POST("/sessions/:token/submit", SubmitQuizSession)
		quiz.GET("/sessions/:token/result", GetQuizResult)
	}
	return r
}

func seedFunnel(t *testing.T) {
	t.Helper()
	tag := models.Tag{Name: "low-energy", Title: "Thiếu năng lượng", Icon: "battery.svg"}
	if err := config.DB.Create(&tag).Error; err != nil {
		t.Fatalf("seed tag: %v", err)
	}
	q := models.Question{Content: "Buổi sáng bạn thấy thế nào?", Active: true}
	if err := config.DB.Create(&q).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	opt := models.Option{QuestionID: q.ID, Content: "Luôn mệt mỏi", Tags: []models.Tag{tag}}
	if err := config.DB.Create(&opt).Error; err != nil {
		t.Fatalf("seed option: %v", err)
	}
	if err := config.DB.Create(&models.Product{Name: "Energy A", MRP: 600, Active: true}).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := config.DB.Create(&models.Rule{TagCombination: "low-energy", RecommendedProducts: "Energy A"}).Error; err != nil {
		t.Fatalf("seed rule: %v", err)
	}
}

func doJSON(r *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuizFunnelFlow(t *testing.T) {
	r := setupTestRouter(t)
	seedFunnel(t)

	// Mở session
	w := doJSON(r, http.MethodPost, "/api/quiz/sessions", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("start session: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var started struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &started)
	if started.Token == "" {
		t.Fatalf("expected token, got %s", w.Body.String())
	}

	// Lưu câu trả lời (progressive)
	var q models.Question
	config.DB.First(&q)
	w = doJSON(r, http.MethodPut, "/api/quiz/sessions/"+started.Token+"/answers", gin.H{
		"answers": []gin.H{{"question_id": q.ID, "value": "luôn mệt mỏi"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save answers: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var saved models.QuizAnswer
	if err := config.DB.Where("question_id = ?", q.ID).First(&saved).Error; err != nil {
		t.Fatalf("answer not persisted: %v", err)
	}
	if saved.OptionID == nil {
		t.Fatalf("expected matched option id recorded")
	}

	// Trả lời lại cùng câu hỏi -> ghi đè, không thêm dòng
	w = doJSON(r, http.MethodPut, "/api/quiz/sessions/"+started.Token+"/answers", gin.H{
		"answers": []gin.H{{"question_id": q.ID, "value": "Không rõ"}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("re-answer: expected 200, got %d", w.Code)
	}
	var count int64
	config.DB.Model(&models.QuizAnswer{}).Where("question_id = ?", q.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected upsert (1 row), got %d", count)
	}
	config.DB.Where("question_id = ?", q.ID).First(&saved)
	if saved.Value != "Không rõ" {
		t.Fatalf("expected overwritten value, got %q", saved.Value)
	}
	if saved.OptionID != nil {
		t.Fatalf("value không khớp lựa chọn nào thì option_id phải nil")
	}

	// Quay về đáp án có tag để kết quả match rule
	doJSON(r, http.MethodPut, "/api/quiz/sessions/"+started.Token+"/answers", gin.H{
		"answers": []gin.H{{"question_id": q.ID, "value": "Luôn mệt mỏi"}},
	})

	// Submit với thông tin cá nhân
	w = doJSON(r, http.MethodPost, "/api/quiz/sessions/"+started.Token+"/submit", gin.H{
		"name":  "Khanh",
		"email": "khanh@example.com",
		"age":   29,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var session models.QuizSession
	config.DB.Where("token = ?", started.Token).First(&session)
	if session.Status != "completed" || session.SubmittedAt == nil {
		t.Fatalf("expected completed session, got %+v", session)
	}

	// Sau submit không sửa được câu trả lời nữa
	w = doJSON(r, http.MethodPut, "/api/quiz/sessions/"+started.Token+"/answers", gin.H{
		"answers": []gin.H{{"question_id": q.ID, "value": "x"}},
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 after submit, got %d", w.Code)
	}

	// Kết quả: luôn 200, ở đây phải match rule
	w = doJSON(r, http.MethodGet, "/api/quiz/sessions/"+started.Token+"/result", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("result: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var resultResp struct {
		Status string `json:"status"`
		Result struct {
			Source   string `json:"source"`
			Products []struct {
				Name string `json:"name"`
			} `json:"products"`
		} `json:"result"`
	}
	json.Unmarshal(w.Body.Bytes(), &resultResp)
	if resultResp.Result.Source != "matched" {
		t.Fatalf("expected matched result, got %s (%s)", resultResp.Result.Source, w.Body.String())
	}
	if len(resultResp.Result.Products) != 1 || resultResp.Result.Products[0].Name != "Energy A" {
		t.Fatalf("unexpected products: %s", w.Body.String())
	}
}

func TestQuizResultUnknownToken(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/quiz/sessions/not-a-uuid/result", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed token, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/quiz/sessions/123e4567-e89b-12d3-a456-426614174000/result", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", w.Code)
	}
}

func TestQuizQuestionsHideTags(t *testing.T) {
	r := setupTestRouter(t)
	seedFunnel(t)

	w := doJSON(r, http.MethodGet, "/api/quiz/questions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "low-energy") {
		t.Fatalf("public payload must not expose tags: %s", w.Body.String())
	}
}
