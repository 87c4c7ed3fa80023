package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vnkhanh/survey-link/models"
	"github.com/vnkhanh/survey-link/session"
)

/* ========== Nhập câu trả lời ========== */

type setAnswerReq struct {
	Value models.AnswerValue `json:"value"`
}

// PUT /api/sessions/:id/answers/:qid — ghi đè vô điều kiện
func SetAnswer(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	var req setAnswerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	if err := s.SetValue(c.Param("qid"), req.Value); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

type toggleOptionReq struct {
	Option   string `json:"option" binding:"required"`
	Included *bool  `json:"included" binding:"required"`
}

// POST /api/sessions/:id/answers/:qid/toggle — chỉ cho CHECKBOXES
func ToggleOption(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	var req toggleOptionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	if err := s.ToggleOption(c.Param("qid"), req.Option, *req.Included); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// POST /api/sessions/:id/answers/:qid/rows — thêm dòng trống vào bảng
func AddRow(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	if err := s.AddRow(c.Param("qid")); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// DELETE /api/sessions/:id/answers/:qid/rows/:index
// Xoá dòng; dòng cuối cùng được thay bằng dòng trống chứ không xoá hẳn.
func RemoveRow(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Chỉ số dòng không hợp lệ"})
		return
	}
	if err := s.RemoveRow(c.Param("qid"), index); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

type setCellReq struct {
	Column string `json:"column" binding:"required"`
	Value  string `json:"value"`
}

// PUT /api/sessions/:id/answers/:qid/rows/:index — upsert một ô
func SetCell(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Chỉ số dòng không hợp lệ"})
		return
	}
	var req setCellReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	if err := s.SetCell(c.Param("qid"), index, req.Column, req.Value); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

/* ========== Gửi ========== */

// POST /api/sessions/:id/submit
//
// AUTHOR (đang preview): phản hồi được chốt vào bộ sưu tập cục bộ, view
// chuyển sang RESPONSES.
//
// FILL: validate -> idle -> submitting -> gọi RemoteSubmissionClient ->
// success | error. Kết quả chỉ phản ánh tầng transport: request đi được là
// thành công, bất kể phía nhận xử lý ra sao.
func SubmitResponse(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}

	if s.Mode() == session.ModeAuthor {
		failing, err := s.SubmitLocal()
		if err != nil {
			abortSessionErr(c, err)
			return
		}
		if len(failing) > 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"message":           "Vui lòng trả lời các câu hỏi bắt buộc",
				"failing_questions": failing,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cảm ơn bạn đã gửi phản hồi! (Phản hồi này chỉ được lưu cục bộ)"})
		return
	}

	endpoint, survey, response, failing, err := s.BeginSubmit()
	if err != nil {
		abortSessionErr(c, err)
		return
	}
	if len(failing) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message":           "Vui lòng trả lời các câu hỏi bắt buộc",
			"failing_questions": failing,
		})
		return
	}

	submitErr := Remote.Submit(c.Request.Context(), endpoint, survey, response)
	s.FinishSubmit(submitErr)

	if submitErr != nil {
		Log.Warn("gửi phản hồi thất bại",
			zap.String("session_id", s.ID()),
			zap.Error(submitErr),
		)
		c.JSON(http.StatusBadGateway, gin.H{
			"message":      "Đã xảy ra lỗi khi gửi. Vui lòng thử lại.",
			"submit_state": session.SubmitError,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Câu trả lời của bạn đã được ghi nhận.",
		"submit_state": session.SubmitSuccess,
	})
}

// POST /api/sessions/:id/submit/retry — error -> idle, giữ nguyên câu trả lời
func RetrySubmit(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	if err := s.RetrySubmit(); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated", "submit_state": session.SubmitIdle})
}

/* ========== Xem phản hồi cục bộ ========== */

// GET /api/sessions/:id/responses
func GetResponses(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	responses := s.Responses()
	c.JSON(http.StatusOK, gin.H{
		"count":     len(responses),
		"responses": responses,
	})
}
