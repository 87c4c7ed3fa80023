package models

import (
	"errors"
	"fmt"
)

type Survey struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Validate kiểm tra shape tối thiểu: questions khác nil, id không rỗng và
// không trùng, loại câu hỏi được hỗ trợ. Dùng khi decode link chia sẻ và
// khi nhận kết quả từ generator.
func (s Survey) Validate() error {
	if s.Questions == nil {
		return errors.New("thiếu danh sách câu hỏi")
	}
	seen := make(map[string]struct{}, len(s.Questions))
	for i, q := range s.Questions {
		if q.ID == "" {
			return fmt.Errorf("câu hỏi thứ %d thiếu id", i)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("id câu hỏi %q bị trùng", q.ID)
		}
		seen[q.ID] = struct{}{}
		if !q.Type.Valid() {
			return fmt.Errorf("loại câu hỏi %q không được hỗ trợ", q.Type)
		}
	}
	return nil
}

// Question tìm câu hỏi theo id.
func (s Survey) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Clone tạo bản sao sâu. Phiên điền form giữ một snapshot giá trị của khảo
// sát; chỉnh sửa về sau của tác giả không được lọt vào snapshot này.
func (s Survey) Clone() Survey {
	out := Survey{Title: s.Title, Description: s.Description}
	if s.Questions != nil {
		out.Questions = make([]Question, len(s.Questions))
		for i, q := range s.Questions {
			out.Questions[i] = q.clone()
		}
	}
	return out
}

// DefaultSurvey là biểu mẫu khởi tạo khi chưa có link chia sẻ.
// Mỗi lần gọi sinh bộ id mới.
func DefaultSurvey() Survey {
	short := func(title string) Question {
		q := NewQuestion()
		q.Title = title
		q.IsRequired = true
		return q
	}
	choice := func(title string, options ...string) Question {
		q := NewQuestion()
		q.Title = title
		q.Type = MultipleChoice
		q.Options = options
		q.IsRequired = true
		return q
	}
	return Survey{
		Title:       "BIỂU MẪU KHẢO SÁT THÔNG TIN MÔI TRƯỜNG",
		Description: "CHÚNG TÔI CAM KẾT CHỈ SỬ DỤNG THÔNG TIN CHO MỤC ĐÍCH NGHIÊN CỨU KHOA HỌC.",
		Questions: []Question{
			short("Tên doanh nghiệp"),
			short("Địa chỉ"),
			short("Ngành nghề sản xuất chính (VD: Điện tử, may mặc...)"),
			choice("Vốn điều lệ", "Dưới 3 tỷ", "Từ 3 đến dưới 20 tỷ", "Từ 20 đến dưới 100 tỷ", "Trên 100 tỷ"),
			short("Quy mô lao động (Người)"),
			short("Diện tích nhà xưởng sản xuất (m²)"),
			choice("Loại hình doanh nghiệp",
				"Doanh nghiệp nhà nước",
				"Doanh nghiệp FDI",
				"Doanh nghiệp ngoài nhà nước trong nước",
			),
		},
	}
}
