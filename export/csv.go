// Package export dựng file kết xuất (CSV/XLSX) từ khảo sát và các phản hồi
// đã chốt.
package export

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/vnkhanh/survey-link/models"
)

// DefaultFilename dùng khi tiêu đề khảo sát rỗng sau khi chuẩn hoá.
const DefaultFilename = "survey_responses"

// CSV render khảo sát + danh sách phản hồi thành văn bản CSV.
//
// Quy tắc encode giữ nguyên từ bản gốc (tương thích là ưu tiên, không phải
// độ an toàn tổng quát):
//   - dòng header là tiêu đề câu hỏi theo thứ tự khảo sát, KHÔNG escape;
//   - chưa trả lời -> ô rỗng;
//   - giá trị đơn -> bọc nháy kép, nháy kép bên trong nhân đôi;
//   - checkbox -> bọc nháy kép, nối ", ", không nhân đôi nháy bên trong;
//   - bảng động -> bọc nháy kép, JSON của mảng dòng với mọi nháy kép nhân đôi;
//   - mỗi dòng (kể cả header) kết thúc bằng "\n".
func CSV(survey models.Survey, responses []models.SurveyResponse) string {
	var sb strings.Builder

	headers := make([]string, len(survey.Questions))
	for i, q := range survey.Questions {
		headers[i] = q.Title
	}
	sb.WriteString(strings.Join(headers, ","))
	sb.WriteByte('\n')

	for _, resp := range responses {
		cells := make([]string, len(survey.Questions))
		for i, q := range survey.Questions {
			cells[i] = csvCell(q, resp)
		}
		sb.WriteString(strings.Join(cells, ","))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func csvCell(q models.Question, resp models.SurveyResponse) string {
	v, ok := resp[q.ID]
	if !ok || !v.Matches(q.Type) {
		// biến thể không khớp loại câu hỏi -> coi như chưa trả lời
		return ""
	}
	switch v.Kind {
	case models.AnswerText:
		if v.Text == "" {
			// bản gốc bỏ trống ô, không xuất "" có nháy
			return ""
		}
		return `"` + strings.ReplaceAll(v.Text, `"`, `""`) + `"`
	case models.AnswerSelection:
		return `"` + strings.Join(v.Selection, ", ") + `"`
	case models.AnswerTable:
		raw, err := json.Marshal(v.Table)
		if err != nil {
			return ""
		}
		return `"` + strings.ReplaceAll(string(raw), `"`, `""`) + `"`
	}
	return ""
}

// Filename chuẩn hoá tiêu đề khảo sát thành tên file: mọi ký tự whitespace
// thay bằng '_', rỗng thì dùng tên mặc định. Phần mở rộng do caller nối.
func Filename(title string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, title)
	if name == "" {
		return DefaultFilename
	}
	return name
}
