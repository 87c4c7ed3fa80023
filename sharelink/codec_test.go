package sharelink

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/survey-link/models"
)

// khảo sát đủ cả sáu loại câu hỏi + văn bản nhiều byte
func sampleSurvey() models.Survey {
	return models.Survey{
		Title:       "Khảo sát môi trường 🌱",
		Description: "Mô tả có dấu: ăn, ổn, ư",
		Questions: []models.Question{
			{ID: "q1", Title: "Tên doanh nghiệp", Type: models.ShortAnswer, Options: []string{}, IsRequired: true},
			{ID: "q2", Title: "Góp ý", Type: models.Paragraph, Options: []string{}},
			{ID: "q3", Title: "Vốn điều lệ", Type: models.MultipleChoice, Options: []string{"Dưới 3 tỷ", "Trên 100 tỷ"}},
			{ID: "q4", Title: "Màu sắc", Type: models.Checkboxes, Options: []string{"Đỏ", "Xanh"}},
			{ID: "q5", Title: "Khu vực", Type: models.Dropdown, Options: []string{"Bắc", "Nam"}},
			{ID: "q6", Title: "Danh sách xưởng", Type: models.DynamicTable, Options: []string{}, Columns: []string{"Tên xưởng", "Diện tích (m²)"}},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	survey := sampleSurvey()
	endpoint := "https://script.google.com/macros/s/AKfycb.../exec"

	link, err := Encode(survey, endpoint, "https://example.github.io/survey")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "https://example.github.io/survey", u.Scheme+"://"+u.Host+u.Path)

	gotSurvey, gotEndpoint, err := Decode(u.Query())
	require.NoError(t, err)
	assert.Equal(t, endpoint, gotEndpoint)
	if diff := cmp.Diff(survey, gotSurvey); diff != "" {
		t.Errorf("survey round-trip mismatch (-want +got):\n%s", diff)
	}
}

// Payload chỉ chứa ký tự base64 chuẩn nên không bị hỏng khi URL được encode
// lại theo luật mặc định.
func TestEncodePayloadSurvivesURLReencoding(t *testing.T) {
	link, err := Encode(sampleSurvey(), "https://example.com/sink", "https://app.local/")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	reparsed, err := url.ParseQuery(u.Query().Encode())
	require.NoError(t, err)

	_, _, err = Decode(reparsed)
	assert.NoError(t, err)
}

func TestDecodeErrors(t *testing.T) {
	goodSurveyParam := func() string {
		link, err := Encode(sampleSurvey(), "https://example.com", "http://x")
		require.NoError(t, err)
		u, _ := url.Parse(link)
		return u.Query().Get(ParamSurvey)
	}()
	b64 := func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name   string
		params url.Values
		reason DecodeReason
	}{
		{
			name:   "missing both",
			params: url.Values{},
			reason: ReasonMissingParam,
		},
		{
			name:   "missing endpoint",
			params: url.Values{ParamSurvey: {goodSurveyParam}},
			reason: ReasonMissingParam,
		},
		{
			name:   "missing survey",
			params: url.Values{ParamEndpoint: {b64("https://example.com")}},
			reason: ReasonMissingParam,
		},
		{
			name:   "survey not base64",
			params: url.Values{ParamSurvey: {"not-base64!!"}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadBase64,
		},
		{
			name:   "endpoint not base64",
			params: url.Values{ParamSurvey: {goodSurveyParam}, ParamEndpoint: {"%%%"}},
			reason: ReasonBadBase64,
		},
		{
			name:   "survey not json",
			params: url.Values{ParamSurvey: {b64("not json at all")}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadJSON,
		},
		{
			name:   "title wrong type",
			params: url.Values{ParamSurvey: {b64(`{"title":5,"description":"","questions":[]}`)}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadSchema,
		},
		{
			name:   "questions missing",
			params: url.Values{ParamSurvey: {b64(`{"title":"t","description":"d"}`)}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadSchema,
		},
		{
			name:   "title missing",
			params: url.Values{ParamSurvey: {b64(`{"description":"d","questions":[]}`)}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadSchema,
		},
		{
			name:   "description missing",
			params: url.Values{ParamSurvey: {b64(`{"title":"t","questions":[]}`)}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadSchema,
		},
		{
			name:   "only questions present",
			params: url.Values{ParamSurvey: {b64(`{"questions":[]}`)}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadSchema,
		},
		{
			name:   "top-level not an object",
			params: url.Values{ParamSurvey: {b64(`"xin chào"`)}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadSchema,
		},
		{
			name:   "title null",
			params: url.Values{ParamSurvey: {b64(`{"title":null,"description":"d","questions":[]}`)}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadSchema,
		},
		{
			name:   "question without id",
			params: url.Values{ParamSurvey: {b64(`{"title":"t","description":"d","questions":[{"questionType":"SHORT_ANSWER"}]}`)}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadSchema,
		},
		{
			name:   "unrecognized question type",
			params: url.Values{ParamSurvey: {b64(`{"title":"t","description":"d","questions":[{"id":"a","questionType":"RATING"}]}`)}, ParamEndpoint: {b64("abc")}},
			reason: ReasonBadSchema,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Decode(tc.params)
			require.Error(t, err)
			var decodeErr *LinkDecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, tc.reason, decodeErr.Reason)
		})
	}
}

func TestPercentCodec(t *testing.T) {
	tests := []struct {
		in      string
		encoded string
	}{
		{"abc-_.!~*'()", "abc-_.!~*'()"},
		{"a b", "a%20b"},
		{`{"title":"ăn"}`, "%7B%22title%22%3A%22%C4%83n%22%7D"},
		{"🌱", "%F0%9F%8C%B1"},
	}
	for _, tc := range tests {
		got := percentEncode(tc.in)
		assert.Equal(t, tc.encoded, got)
		back, err := percentDecode(got)
		require.NoError(t, err)
		assert.Equal(t, tc.in, back)
	}
}

func TestPercentDecodeRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"%", "%2", "%GG", "abc%"} {
		_, err := percentDecode(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestLinkDecodeErrorMessage(t *testing.T) {
	err := &LinkDecodeError{Reason: ReasonBadBase64, Param: ParamSurvey}
	assert.True(t, strings.Contains(err.Error(), "survey"))
}
