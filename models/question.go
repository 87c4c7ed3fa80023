package models

import "github.com/google/uuid"

// QuestionType là tập đóng các loại câu hỏi được hỗ trợ.
type QuestionType string

const (
	ShortAnswer    QuestionType = "SHORT_ANSWER"
	Paragraph      QuestionType = "PARAGRAPH"
	MultipleChoice QuestionType = "MULTIPLE_CHOICE"
	Checkboxes     QuestionType = "CHECKBOXES"
	Dropdown       QuestionType = "DROPDOWN"
	DynamicTable   QuestionType = "DYNAMIC_TABLE"
)

// AllQuestionTypes giữ đúng thứ tự hiển thị trong editor.
var AllQuestionTypes = []QuestionType{
	ShortAnswer,
	Paragraph,
	MultipleChoice,
	Checkboxes,
	Dropdown,
	DynamicTable,
}

func (t QuestionType) Valid() bool {
	switch t {
	case ShortAnswer, Paragraph, MultipleChoice, Checkboxes, Dropdown, DynamicTable:
		return true
	}
	return false
}

// HasOptions: các loại câu hỏi dạng lựa chọn (options bắt buộc không rỗng).
func (t QuestionType) HasOptions() bool {
	switch t {
	case MultipleChoice, Checkboxes, Dropdown:
		return true
	}
	return false
}

type Question struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        QuestionType `json:"questionType"`
	Options     []string     `json:"options"`
	Columns     []string     `json:"columns,omitempty"`
	IsRequired  bool         `json:"isRequired"`
}

// NewQuestion tạo câu hỏi trống mặc định (SHORT_ANSWER) với id mới.
func NewQuestion() Question {
	return Question{
		ID:      uuid.NewString(),
		Type:    ShortAnswer,
		Options: []string{},
	}
}

func (q Question) clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	if q.Columns != nil {
		out.Columns = append([]string(nil), q.Columns...)
	}
	return out
}
