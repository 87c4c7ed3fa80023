// Package generator là cầu nối tới bộ sinh khảo sát từ prompt. Bộ sinh là
// collaborator bên ngoài: nhận một chuỗi mô tả, trả về một khảo sát hoàn
// chỉnh hoặc lỗi kèm thông điệp đọc được. Nội bộ của nó không thuộc phạm vi
// hệ thống này.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vnkhanh/survey-link/models"
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (models.Survey, error)
}

// GenerationError: bộ sinh thất bại. Khảo sát hiện tại của phiên được giữ
// nguyên; thông điệp hiển thị inline cho tác giả.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "không tạo được khảo sát từ prompt"
}

func (e *GenerationError) Unwrap() error { return e.Err }

// HTTPGenerator gọi dịch vụ sinh khảo sát qua HTTP: POST {"prompt": ...},
// nhận về JSON Survey (hoặc {"error": ...}).
type HTTPGenerator struct {
	URL string
	hc  *http.Client
}

func NewHTTPGenerator(url string) *HTTPGenerator {
	return &HTTPGenerator{URL: url, hc: &http.Client{}}
}

func NewHTTPGeneratorWith(url string, hc *http.Client) *HTTPGenerator {
	return &HTTPGenerator{URL: url, hc: hc}
}

func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (models.Survey, error) {
	body, _ := json.Marshal(map[string]string{"prompt": prompt})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return models.Survey{}, &GenerationError{Message: "địa chỉ generator không hợp lệ", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.hc.Do(req)
	if err != nil {
		return models.Survey{}, &GenerationError{Message: "không kết nối được generator", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Survey{}, &GenerationError{Message: "không đọc được kết quả generator", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		var fail struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &fail)
		msg := fail.Error
		if msg == "" {
			msg = fmt.Sprintf("generator trả về mã %d", resp.StatusCode)
		}
		return models.Survey{}, &GenerationError{Message: msg}
	}

	var survey models.Survey
	if err := json.Unmarshal(raw, &survey); err != nil {
		return models.Survey{}, &GenerationError{Message: "kết quả generator không phải JSON khảo sát hợp lệ", Err: err}
	}
	if err := survey.Validate(); err != nil {
		return models.Survey{}, &GenerationError{Message: "khảo sát do generator tạo không hợp lệ: " + err.Error(), Err: err}
	}
	return survey, nil
}
