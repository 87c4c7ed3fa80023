package controllers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-link/sharelink"
)

/* ========== Link chia sẻ ========== */

type shareReq struct {
	// BaseURL là origin+path mà link sẽ trỏ về (nơi host bản điền form).
	BaseURL string `json:"base_url" binding:"required,url"`
	// Endpoint ghi đè URL đã lưu; bỏ trống thì dùng giá trị trong store.
	Endpoint string `json:"endpoint"`
}

// POST /api/sessions/:id/share
// Link mang toàn bộ khảo sát + endpoint trong query string; người nhận mở
// link là vào thẳng chế độ điền form, không cần server lưu khảo sát.
func ShareSurvey(c *gin.Context) {
	s, ok := sessionByID(c)
	if !ok {
		return
	}
	var req shareReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	endpoint := req.Endpoint
	if endpoint == "" {
		saved, ok := Endpoints.Load()
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Chưa có endpoint nộp bài: truyền endpoint hoặc lưu trước qua /api/settings/endpoint"})
			return
		}
		endpoint = saved
	}

	link, err := sharelink.Encode(s.Survey(), endpoint, req.BaseURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không tạo được link chia sẻ"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"link": link, "endpoint": endpoint})
}

/* ========== Endpoint đã lưu (trạng thái duy nhất sống qua phiên) ========== */

// GET /api/settings/endpoint
func GetEndpoint(c *gin.Context) {
	saved, ok := Endpoints.Load()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Chưa lưu endpoint nào"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"endpoint": saved})
}

type saveEndpointReq struct {
	Endpoint string `json:"endpoint" binding:"required,url"`
}

// PUT /api/settings/endpoint — chỉ ghi khi người dùng chủ động lưu
func SaveEndpoint(c *gin.Context) {
	var req saveEndpointReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	if _, err := url.ParseRequestURI(req.Endpoint); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Endpoint không phải URL hợp lệ"})
		return
	}
	if err := Endpoints.Save(req.Endpoint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lưu endpoint thất bại"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "URL đã được lưu!"})
}
