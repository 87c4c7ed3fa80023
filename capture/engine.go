// Package capture giữ bộ câu trả lời đang soạn của một phiên điền form.
package capture

import (
	"errors"
	"fmt"

	"github.com/vnkhanh/survey-link/models"
)

var (
	// ErrUnknownQuestion: id không thuộc khảo sát của phiên.
	ErrUnknownQuestion = errors.New("câu hỏi không tồn tại")
	// ErrKindMismatch: thao tác không áp dụng được cho loại câu hỏi.
	ErrKindMismatch = errors.New("thao tác không hợp lệ cho loại câu hỏi")
)

// Engine gắn với một snapshot khảo sát và giữ đúng một SurveyResponse đang
// được sửa tại chỗ. Mọi thao tác đều đồng bộ; khoá nằm ở tầng session.
type Engine struct {
	survey   models.Survey
	response models.SurveyResponse
}

func NewEngine(survey models.Survey) *Engine {
	return &Engine{
		survey:   survey,
		response: models.SurveyResponse{},
	}
}

func (e *Engine) Survey() models.Survey { return e.survey }

// SetValue ghi đè câu trả lời vô điều kiện (dùng cho các loại một giá trị).
func (e *Engine) SetValue(questionID string, v models.AnswerValue) error {
	if _, ok := e.survey.Question(questionID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	e.response[questionID] = v
	return nil
}

// ToggleOption thêm/bỏ một lựa chọn của câu hỏi CHECKBOXES. Giữ thứ tự chọn,
// không sinh trùng lặp; áp cùng một (option, included) lần thứ hai là no-op.
func (e *Engine) ToggleOption(questionID, option string, included bool) error {
	q, ok := e.survey.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if q.Type != models.Checkboxes {
		return fmt.Errorf("%w: %s không phải CHECKBOXES", ErrKindMismatch, questionID)
	}
	current := e.response.Answer(q).Selection
	if included {
		for _, o := range current {
			if o == option {
				return nil
			}
		}
		current = append(current, option)
	} else {
		kept := current[:0]
		for _, o := range current {
			if o != option {
				kept = append(kept, o)
			}
		}
		current = kept
	}
	e.response[questionID] = models.AnswerValue{Kind: models.AnswerSelection, Selection: current}
	return nil
}

// AddRow nối một dòng trống vào cuối câu trả lời dạng bảng.
func (e *Engine) AddRow(questionID string) error {
	q, ok := e.survey.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if q.Type != models.DynamicTable {
		return fmt.Errorf("%w: %s không phải DYNAMIC_TABLE", ErrKindMismatch, questionID)
	}
	rows := e.response.Answer(q).Table
	rows = append(rows, models.TableRow{})
	e.response[questionID] = models.TableAnswer(rows...)
	return nil
}

// RemoveRow xoá dòng tại index nếu còn hơn một dòng; nếu chỉ còn một dòng thì
// thay bằng dòng trống mới — bảng không bao giờ về không dòng.
func (e *Engine) RemoveRow(questionID string, index int) error {
	q, ok := e.survey.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if q.Type != models.DynamicTable {
		return fmt.Errorf("%w: %s không phải DYNAMIC_TABLE", ErrKindMismatch, questionID)
	}
	rows := e.response.Answer(q).Table
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("dòng %d không tồn tại", index)
	}
	if len(rows) > 1 {
		rows = append(rows[:index], rows[index+1:]...)
	} else {
		rows = []models.TableRow{{}}
	}
	e.response[questionID] = models.TableAnswer(rows...)
	return nil
}

// SetCell upsert một ô (index, column); các ô khác giữ nguyên.
func (e *Engine) SetCell(questionID string, index int, column, value string) error {
	q, ok := e.survey.Question(questionID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if q.Type != models.DynamicTable {
		return fmt.Errorf("%w: %s không phải DYNAMIC_TABLE", ErrKindMismatch, questionID)
	}
	rows := e.response.Answer(q).Table
	if index < 0 || index >= len(rows) {
		return fmt.Errorf("dòng %d không tồn tại", index)
	}
	rows[index][column] = value
	e.response[questionID] = models.TableAnswer(rows...)
	return nil
}

// ValidateForSubmit trả về id các câu hỏi bắt buộc chưa đạt, theo thứ tự
// trong khảo sát; rỗng nghĩa là được phép gửi.
//
// Với DYNAMIC_TABLE chỉ kiểm tra các ô của dòng ĐẦU TIÊN — đây là hành vi
// kế thừa từ bản gốc, giữ nguyên thay vì siết chặt.
func (e *Engine) ValidateForSubmit() []string {
	var failing []string
	for _, q := range e.survey.Questions {
		if !q.IsRequired {
			continue
		}
		v := e.response.Answer(q)
		switch q.Type {
		case models.Checkboxes:
			if len(v.Selection) == 0 {
				failing = append(failing, q.ID)
			}
		case models.DynamicTable:
			first := v.Table[0]
			for _, col := range q.Columns {
				if first[col] == "" {
					failing = append(failing, q.ID)
					break
				}
			}
		default:
			if v.Kind != models.AnswerText || v.Text == "" {
				failing = append(failing, q.ID)
			}
		}
	}
	return failing
}

// Snapshot sao chép sâu bộ câu trả lời hiện tại; dùng khi chốt gửi.
func (e *Engine) Snapshot() models.SurveyResponse {
	return e.response.Clone()
}

// Reset bỏ toàn bộ câu trả lời đã nhập (sau khi gửi cục bộ ở chế độ preview).
func (e *Engine) Reset() {
	e.response = models.SurveyResponse{}
}
