package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-link/session"
)

/* ========== Thêm câu hỏi ========== */

// POST /api/sessions/:id/questions — câu hỏi trống mặc định, id sinh mới
func AddQuestion(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	q, err := s.AddQuestion()
	if err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"question": q})
}

/* ========== Cập nhật câu hỏi (partial) ========== */

// PUT /api/sessions/:id/questions/:qid
func UpdateQuestion(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	var patch session.QuestionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	q, err := s.UpdateQuestion(c.Param("qid"), patch)
	if err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated", "question": q})
}

/* ========== Xoá câu hỏi ========== */

// DELETE /api/sessions/:id/questions/:qid
func DeleteQuestion(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	if err := s.DeleteQuestion(c.Param("qid")); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

/* ========== Sắp xếp lại câu hỏi ========== */

type reorderReq struct {
	Order []string `json:"order" binding:"required,min=1,dive,required"`
}

// PUT /api/sessions/:id/questions/reorder — order phải là hoán vị đầy đủ
func ReorderQuestions(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	if err := s.ReorderQuestions(req.Order); err != nil {
		abortSessionErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}
