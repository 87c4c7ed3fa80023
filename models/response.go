package models

// SurveyResponse ánh xạ id câu hỏi -> câu trả lời. Key vắng mặt nghĩa là
// chưa trả lời.
type SurveyResponse map[string]AnswerValue

// Answer trả về giá trị đã chuẩn hoá cho một câu hỏi:
//   - biến thể không khớp loại câu hỏi -> coi như chưa trả lời;
//   - bảng động không dòng nào -> một dòng trống (bảng không bao giờ được
//     hiển thị rỗng).
func (r SurveyResponse) Answer(q Question) AnswerValue {
	v, ok := r[q.ID]
	if !ok || !v.Matches(q.Type) {
		v = AnswerValue{}
	}
	if q.Type == DynamicTable {
		if v.Kind == AnswerAbsent {
			v = AnswerValue{Kind: AnswerTable}
		}
		if len(v.Table) == 0 {
			v.Table = []TableRow{{}}
		}
	}
	return v
}

func (r SurveyResponse) Clone() SurveyResponse {
	out := make(SurveyResponse, len(r))
	for id, v := range r {
		out[id] = v.Clone()
	}
	return out
}
