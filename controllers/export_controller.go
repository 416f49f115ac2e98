package controllers

import (
    "encoding/csv"
    "fmt"
    "net/http"
    "os"
    "path"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
    "github.com/xuri/excelize/v2"
    "gorm.io/gorm"

    "github.com/vnkhanh/healthquiz-server/config"
    "github.com/vnkhanh/healthquiz-server/models"
)

type ExportRequest struct {
    Format    string  `json:"format"` // csv | xlsx
    RangeFrom *string `json:"range_from,omitempty"`
    RangeTo   *string `json:"range_to,omitempty"`
}

/* ========== QZ-60: Export session hoàn thành ========== */

// POST /api/admin/exports
func CreateExport(c *gin.Context) {
    var req ExportRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"message": "Payload không hợp lệ"})
        return
    }
    if req.Format == "" {
        req.Format = "csv"
    }
    if req.Format != "csv" && req.Format != "xlsx" {
        c.JSON(http.StatusBadRequest, gin.H{"message": "Format chỉ hỗ trợ csv hoặc xlsx"})
        return
    }

    var fromPtr, toPtr *time.Time
    if req.RangeFrom != nil {
        if t, err := time.Parse(time.RFC3339, *req.RangeFrom); err == nil {
            fromPtr = &t
        }
    }
    if req.RangeTo != nil {
        if t, err := time.Parse(time.RFC3339, *req.RangeTo); err == nil {
            toPtr = &t
        }
    }

    jobID := uuid.New().String()
    job := models.ExportJob{
        JobID:     jobID,
        Format:    req.Format,
        RangeFrom: fromPtr,
        RangeTo:   toPtr,
        Status:    "queued",
    }
    config.DB.Create(&job)

    go processExportJob(jobID)

    c.JSON(http.StatusAccepted, gin.H{
        "job_id": jobID,
        "status": "queued",
    })
}

// GET /api/admin/exports/:job_id
func GetExport(c *gin.Context) {
    jobID := c.Param("job_id")
    var job models.ExportJob
    if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
        if err == gorm.ErrRecordNotFound {
            c.JSON(http.StatusNotFound, gin.H{"message": "Job không tìm thấy"})
            return
        }
        c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
        return
    }

    if job.Status == "done" && job.FilePath != nil {
        c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
        return
    }

    c.JSON(http.StatusOK, gin.H{
        "job_id": job.JobID,
        "status": job.Status,
        "error":  job.ErrorMsg,
    })
}

// xử lý job xuất dữ liệu
func processExportJob(jobID string) {
    var job models.ExportJob
    if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
        return
    }
    config.DB.Model(&job).Update("status", "processing")

    outDir := "./exports"
    os.MkdirAll(outDir, 0755)

    var sessions []models.QuizSession
    q := config.DB.Preload("Answers").Where("status = ?", "completed")
    if job.RangeFrom != nil {
        q = q.Where("submitted_at >= ?", job.RangeFrom)
    }
    if job.RangeTo != nil {
        q = q.Where("submitted_at <= ?", job.RangeTo)
    }
    if err := q.Order("submitted_at ASC").Find(&sessions).Error; err != nil {
        failExportJob(&job, err)
        return
    }

    var outPath string
    var err error
    if job.Format == "xlsx" {
        outPath = path.Join(outDir, fmt.Sprintf("export_%s.xlsx", job.JobID))
        err = writeExportXLSX(outPath, sessions)
    } else {
        outPath = path.Join(outDir, fmt.Sprintf("export_%s.csv", job.JobID))
        err = writeExportCSV(outPath, sessions)
    }
    if err != nil {
        failExportJob(&job, err)
        return
    }

    config.DB.Model(&job).Updates(map[string]interface{}{"status": "done", "file_path": outPath})
}

func failExportJob(job *models.ExportJob, err error) {
    em := err.Error()
    config.DB.Model(job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
}

func exportRow(s models.QuizSession) []string {
    email, name := "", ""
    if s.Email != nil {
        email = *s.Email
    }
    if s.Name != nil {
        name = *s.Name
    }
    submitted := ""
    if s.SubmittedAt != nil {
        submitted = s.SubmittedAt.Format(time.RFC3339)
    }
    answers := ""
    for _, a := range s.Answers {
        answers += fmt.Sprintf("[%d:%s] ", a.QuestionID, a.Value)
    }
    return []string{
        fmt.Sprintf("%d", s.ID),
        s.Token,
        name,
        email,
        submitted,
        answers,
    }
}

var exportHeader = []string{"session_id", "token", "name", "email", "submitted_at", "answers"}

func writeExportCSV(outPath string, sessions []models.QuizSession) error {
    f, err := os.Create(outPath)
    if err != nil {
        return err
    }
    defer f.Close()

    w := csv.NewWriter(f)
    defer w.Flush()

    w.Write(exportHeader)
    for _, s := range sessions {
        w.Write(exportRow(s))
    }
    return nil
}

func writeExportXLSX(outPath string, sessions []models.QuizSession) error {
    f := excelize.NewFile()
    defer f.Close()

    sheet := "Sessions"
    f.SetSheetName("Sheet1", sheet)

    for col, h := range exportHeader {
        cell, _ := excelize.CoordinatesToCellName(col+1, 1)
        f.SetCellValue(sheet, cell, h)
    }
    for i, s := range sessions {
        for col, v := range exportRow(s) {
            cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
            f.SetCellValue(sheet, cell, v)
        }
    }

    return f.SaveAs(outPath)
}
