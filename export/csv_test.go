package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/survey-link/models"
)

func exportSurvey() models.Survey {
	return models.Survey{
		Title: "Khảo sát xuất file",
		Questions: []models.Question{
			{ID: "q1", Title: "Họ tên", Type: models.ShortAnswer},
			{ID: "q2", Title: "Màu yêu thích", Type: models.Checkboxes, Options: []string{"Red", "Blue"}},
			{ID: "q3", Title: "Danh sách xưởng", Type: models.DynamicTable, Columns: []string{"Tên"}},
		},
	}
}

func TestCSVHeaderOnly(t *testing.T) {
	got := CSV(exportSurvey(), nil)
	assert.Equal(t, "Họ tên,Màu yêu thích,Danh sách xưởng\n", got)
}

func TestCSVCells(t *testing.T) {
	survey := exportSurvey()
	responses := []models.SurveyResponse{
		{
			"q1": models.TextAnswer(`He said "hi"`),
			"q2": models.SelectionAnswer("Red", "Blue"),
			"q3": models.TableAnswer(models.TableRow{"Tên": "Xưởng A"}),
		},
		{
			// chuỗi rỗng và biến thể sai loại đều ra ô trống
			"q1": models.TextAnswer(""),
			"q2": models.TextAnswer("sai kiểu"),
		},
	}

	got := CSV(survey, responses)
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 4, "mỗi dòng kết thúc bằng newline, kể cả dòng cuối")
	assert.Equal(t, "", lines[3])

	assert.Equal(t, `"He said ""hi""","Red, Blue","[{""Tên"":""Xưởng A""}]"`, lines[1])
	assert.Equal(t, ",,", lines[2])
}

func TestCSVSelectionQuotesNotDoubled(t *testing.T) {
	survey := models.Survey{Questions: []models.Question{
		{ID: "q", Title: "c", Type: models.Checkboxes, Options: []string{`Op "1"`}},
	}}
	got := CSV(survey, []models.SurveyResponse{{"q": models.SelectionAnswer(`Op "1"`)}})
	// lựa chọn checkbox giữ nguyên nháy kép bên trong
	assert.Equal(t, "c\n\"Op \"1\"\"\n", got)
}

func TestCSVHeaderNotEscaped(t *testing.T) {
	survey := models.Survey{Questions: []models.Question{
		{ID: "q", Title: `Tiêu đề, có "nháy"`, Type: models.ShortAnswer},
	}}
	got := CSV(survey, nil)
	assert.Equal(t, `Tiêu đề, có "nháy"`+"\n", got)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Khảo sát môi trường", "Khảo_sát_môi_trường"},
		{"a\tb\nc", "a_b_c"},
		{"", DefaultFilename},
		{"   ", "___"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Filename(tc.title))
	}
}

func TestXLSX(t *testing.T) {
	survey := exportSurvey()
	responses := []models.SurveyResponse{
		{
			"q1": models.TextAnswer(`He said "hi"`),
			"q2": models.SelectionAnswer("Red", "Blue"),
			"q3": models.TableAnswer(models.TableRow{"Tên": "Xưởng A"}),
		},
	}

	f, err := XLSX(survey, responses)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Responses")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Họ tên", "Màu yêu thích", "Danh sách xưởng"}, rows[0])
	assert.Equal(t, []string{`He said "hi"`, "Red, Blue", `[{"Tên":"Xưởng A"}]`}, rows[1])
}
