package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vnkhanh/survey-link/capture"
	"github.com/vnkhanh/survey-link/config"
	"github.com/vnkhanh/survey-link/generator"
	"github.com/vnkhanh/survey-link/remote"
	"github.com/vnkhanh/survey-link/session"
)

// Dependency dùng chung cho toàn bộ handler, gán một lần từ main
// (cùng kiểu biến package-level như config.DB trước đây).
var (
	Sessions  *session.Manager
	Endpoints config.EndpointStore
	Gen       generator.Generator
	Remote    *remote.Client
	Log       = zap.NewNop()
)

// Init nối các dependency; gen có thể nil khi GENERATOR_URL chưa cấu hình.
func Init(m *session.Manager, store config.EndpointStore, gen generator.Generator, client *remote.Client, log *zap.Logger) {
	Sessions = m
	Endpoints = store
	Gen = gen
	Remote = client
	if log != nil {
		Log = log
	}
}

// sessionByID lấy phiên theo param :id; không có thì trả 404 và abort.
func sessionByID(c *gin.Context) (*session.Session, bool) {
	s, ok := Sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Phiên không tồn tại"})
		return nil, false
	}
	return s, true
}

// abortSessionErr đổi lỗi domain thành status + message thống nhất.
func abortSessionErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrWrongMode),
		errors.Is(err, session.ErrSubmitting),
		errors.Is(err, session.ErrTerminal),
		errors.Is(err, session.ErrNotRetrying),
		errors.Is(err, session.ErrNotIdle),
		errors.Is(err, session.ErrNotPreview):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, capture.ErrUnknownQuestion):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, capture.ErrKindMismatch):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	}
}

/* ========== Vòng đời phiên ========== */

// POST /api/sessions
// Query string của "địa chỉ khởi tạo" được chuyển nguyên vẹn: có cặp
// survey+endpoint giải mã được thì phiên vào chế độ FILL, ngược lại AUTHOR.
func CreateSession(c *gin.Context) {
	s := Sessions.Create(c.Request.URL.Query())
	c.JSON(http.StatusCreated, s.Overview())
}

// GET /api/sessions/:id
func GetSession(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Overview())
}

// DELETE /api/sessions/:id
func DeleteSession(c *gin.Context) {
	if _, ok := sessionByID(c); !ok {
		return
	}
	Sessions.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

/* ========== Sub-state soạn thảo ========== */

type setViewReq struct {
	View session.View `json:"view" binding:"required"`
}

// PUT /api/sessions/:id/view
func SetView(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	var req setViewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	if err := s.SetView(req.View); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated", "view": req.View})
}

type updateSurveyReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// PUT /api/sessions/:id/survey — cập nhật một phần tiêu đề/mô tả
func UpdateSurvey(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	var req updateSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	if req.Title == nil && req.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Không có gì để cập nhật"})
		return
	}
	if err := s.UpdateSurvey(req.Title, req.Description); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

/* ========== Generator (collaborator ngoài) ========== */

type generateReq struct {
	Prompt string `json:"prompt" binding:"required,min=1"`
}

// POST /api/sessions/:id/generate
// Thất bại từ generator chỉ trả thông điệp — khảo sát hiện tại giữ nguyên.
func GenerateSurvey(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	if Gen == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Generator chưa được cấu hình"})
		return
	}
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	survey, err := Gen.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		var genErr *generator.GenerationError
		if errors.As(err, &genErr) {
			c.JSON(http.StatusBadGateway, gin.H{"message": genErr.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"message": "Không tạo được khảo sát từ prompt"})
		return
	}
	if err := s.ReplaceSurvey(survey); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Overview())
}
