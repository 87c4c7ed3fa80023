// Package remote gửi phản hồi đã chốt tới endpoint thu thập bên ngoài.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vnkhanh/survey-link/models"
)

// Payload là body POST theo đúng hợp đồng với script ingestion phía
// spreadsheet: {"survey": ..., "response": ...}.
type Payload struct {
	Survey   models.Survey         `json:"survey"`
	Response models.SurveyResponse `json:"response"`
}

// Client gửi kiểu fire-and-forget. Endpoint là cross-origin và không cấp
// quyền đọc response, nên hợp đồng vận chuyển CHỈ báo lỗi tầng transport:
// request rời máy thành công là success, kể cả khi phía nhận từ chối payload.
// Tuyệt đối không thêm bước đọc status/body để "suy ra" kết quả — không có
// nội dung đọc được để suy.
type Client struct {
	hc *http.Client
}

// NewClient dùng http.Client không timeout — bản gốc không giới hạn thời
// gian chờ và điều đó được giữ nguyên; caller muốn deadline thì truyền qua
// context.
func NewClient() *Client {
	return &Client{hc: &http.Client{}}
}

func NewClientWith(hc *http.Client) *Client {
	return &Client{hc: hc}
}

// Submit POST một phản hồi tới endpointURL. Trả lỗi duy nhất khi transport
// thất bại (URL hỏng, mạng đứt...).
func (c *Client) Submit(ctx context.Context, endpointURL string, survey models.Survey, response models.SurveyResponse) error {
	body, err := json.Marshal(Payload{Survey: survey, Response: response})
	if err != nil {
		return fmt.Errorf("không serialize được payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("endpoint không hợp lệ: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("gửi phản hồi thất bại: %w", err)
	}
	// Xả body để tái sử dụng kết nối; nội dung không được diễn giải.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}
