package models

import "encoding/json"

// AnswerKind phân biệt biến thể của AnswerValue.
type AnswerKind int

const (
	AnswerAbsent AnswerKind = iota
	AnswerText              // SHORT_ANSWER / PARAGRAPH / MULTIPLE_CHOICE / DROPDOWN
	AnswerSelection         // CHECKBOXES, giữ thứ tự chọn, không trùng
	AnswerTable             // DYNAMIC_TABLE
)

// TableRow là một dòng của câu trả lời dạng bảng: tên cột -> giá trị.
type TableRow map[string]string

// AnswerValue là union đóng trên các dạng giá trị câu trả lời. Trên wire nó
// giữ nguyên shape của bản gốc: string, mảng string, hoặc mảng object.
type AnswerValue struct {
	Kind      AnswerKind
	Text      string
	Selection []string
	Table     []TableRow
}

func TextAnswer(s string) AnswerValue {
	return AnswerValue{Kind: AnswerText, Text: s}
}

func SelectionAnswer(options ...string) AnswerValue {
	return AnswerValue{Kind: AnswerSelection, Selection: options}
}

func TableAnswer(rows ...TableRow) AnswerValue {
	return AnswerValue{Kind: AnswerTable, Table: rows}
}

// Matches báo biến thể có khớp loại câu hỏi không.
func (v AnswerValue) Matches(t QuestionType) bool {
	switch v.Kind {
	case AnswerAbsent:
		return true
	case AnswerText:
		return t == ShortAnswer || t == Paragraph || t == MultipleChoice || t == Dropdown
	case AnswerSelection:
		return t == Checkboxes
	case AnswerTable:
		return t == DynamicTable
	}
	return false
}

func (v AnswerValue) Clone() AnswerValue {
	out := v
	if v.Selection != nil {
		out.Selection = append([]string(nil), v.Selection...)
	}
	if v.Table != nil {
		out.Table = make([]TableRow, len(v.Table))
		for i, row := range v.Table {
			nr := make(TableRow, len(row))
			for k, val := range row {
				nr[k] = val
			}
			out.Table[i] = nr
		}
	}
	return out
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerText:
		return json.Marshal(v.Text)
	case AnswerSelection:
		if v.Selection == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.Selection)
	case AnswerTable:
		if v.Table == nil {
			return json.Marshal([]TableRow{})
		}
		return json.Marshal(v.Table)
	}
	return []byte("null"), nil
}

// UnmarshalJSON chấp nhận string, []string hoặc []object. Shape lạ (số,
// object đơn, null...) được coi là chưa trả lời thay vì báo lỗi, để dữ liệu
// hỏng trong link chia sẻ không làm sập phiên.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = TextAnswer(s)
		return nil
	}
	var sel []string
	if err := json.Unmarshal(data, &sel); err == nil {
		*v = AnswerValue{Kind: AnswerSelection, Selection: sel}
		return nil
	}
	var rows []TableRow
	if err := json.Unmarshal(data, &rows); err == nil {
		*v = AnswerValue{Kind: AnswerTable, Table: rows}
		return nil
	}
	*v = AnswerValue{}
	return nil
}
