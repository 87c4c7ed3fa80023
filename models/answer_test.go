package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AnswerValue
	}{
		{name: "string", raw: `"xin chào"`, want: TextAnswer("xin chào")},
		{name: "empty string", raw: `""`, want: TextAnswer("")},
		{name: "string array", raw: `["Red","Blue"]`, want: AnswerValue{Kind: AnswerSelection, Selection: []string{"Red", "Blue"}}},
		{name: "empty array", raw: `[]`, want: AnswerValue{Kind: AnswerSelection, Selection: []string{}}},
		{name: "table rows", raw: `[{"Tên":"A","SĐT":"1"}]`, want: TableAnswer(TableRow{"Tên": "A", "SĐT": "1"})},
		{name: "number treated as absent", raw: `42`, want: AnswerValue{}},
		{name: "null treated as absent", raw: `null`, want: AnswerValue{}},
		{name: "bare object treated as absent", raw: `{"a":"b"}`, want: AnswerValue{}},
		{name: "mixed array treated as absent", raw: `["a",{"b":"c"}]`, want: AnswerValue{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got AnswerValue
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAnswerValueMarshalRoundTrip(t *testing.T) {
	values := []AnswerValue{
		TextAnswer(`He said "hi"`),
		SelectionAnswer("Red", "Blue"),
		TableAnswer(TableRow{"Cột 1": "giá trị"}, TableRow{}),
	}
	for _, v := range values {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		var got AnswerValue
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, v, got)
	}
}

func TestResponseAnswerNormalization(t *testing.T) {
	table := Question{ID: "t1", Type: DynamicTable, Columns: []string{"A", "B"}}
	checkbox := Question{ID: "c1", Type: Checkboxes, Options: []string{"X"}}

	t.Run("mismatched variant is absent", func(t *testing.T) {
		r := SurveyResponse{"c1": TextAnswer("X")}
		assert.Equal(t, AnswerAbsent, r.Answer(checkbox).Kind)
	})

	t.Run("table never reads as zero rows", func(t *testing.T) {
		for _, r := range []SurveyResponse{
			{},
			{"t1": TableAnswer()},
			{"t1": TextAnswer("sai kiểu")},
		} {
			got := r.Answer(table)
			assert.Equal(t, AnswerTable, got.Kind)
			assert.Len(t, got.Table, 1)
			assert.Empty(t, got.Table[0])
		}
	})
}

func TestSurveyValidate(t *testing.T) {
	valid := Survey{Title: "t", Description: "d", Questions: []Question{
		{ID: "a", Type: ShortAnswer},
		{ID: "b", Type: Checkboxes, Options: []string{"1"}},
	}}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Survey)
	}{
		{"nil questions", func(s *Survey) { s.Questions = nil }},
		{"empty id", func(s *Survey) { s.Questions[0].ID = "" }},
		{"duplicate id", func(s *Survey) { s.Questions[1].ID = "a" }},
		{"unknown type", func(s *Survey) { s.Questions[0].Type = "RATING" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := valid.Clone()
			tc.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestSurveyCloneIsDeep(t *testing.T) {
	s := DefaultSurvey()
	c := s.Clone()
	c.Questions[0].Title = "đổi rồi"
	c.Questions[3].Options[0] = "khác"
	assert.NotEqual(t, c.Questions[0].Title, s.Questions[0].Title)
	assert.NotEqual(t, c.Questions[3].Options[0], s.Questions[3].Options[0])
}

func TestDefaultSurveyFreshIDs(t *testing.T) {
	a, b := DefaultSurvey(), DefaultSurvey()
	require.NoError(t, a.Validate())
	assert.NotEqual(t, a.Questions[0].ID, b.Questions[0].ID)
}
