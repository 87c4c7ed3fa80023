package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vnkhanh/survey-link/export"
)

// GET /api/sessions/:id/export?format=csv|xlsx
//
// Kết xuất đồng bộ bộ phản hồi cục bộ của phiên soạn thảo thành file tải về.
// Tên file = tiêu đề khảo sát với whitespace đổi thành '_'.
func ExportResponses(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}

	survey := s.Survey()
	responses := s.Responses()
	if len(responses) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Chưa có câu trả lời nào để kết xuất"})
		return
	}

	format := c.DefaultQuery("format", "csv")
	name := export.Filename(survey.Title)

	switch format {
	case "csv":
		body := export.CSV(survey, responses)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
	case "xlsx":
		f, err := export.XLSX(survey, responses)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không kết xuất được file Excel"})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", name))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			// header đã đi, chỉ còn cách ghi log
			Log.Error("ghi file xlsx thất bại", zap.Error(err))
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Định dạng %q không được hỗ trợ", format)})
	}
}
