package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/survey-link/models"
)

func testSurvey() models.Survey {
	return models.Survey{
		Title: "t",
		Questions: []models.Question{
			{ID: "name", Title: "Họ tên", Type: models.ShortAnswer, IsRequired: true},
			{ID: "note", Title: "Ghi chú", Type: models.Paragraph},
			{ID: "colors", Title: "Màu", Type: models.Checkboxes, Options: []string{"Đỏ", "Xanh", "Vàng"}, IsRequired: true},
			{ID: "region", Title: "Khu vực", Type: models.Dropdown, Options: []string{"Bắc", "Nam"}},
			{ID: "plants", Title: "Xưởng", Type: models.DynamicTable, Columns: []string{"Tên", "Diện tích"}, IsRequired: true},
		},
	}
}

func TestSetValueUnknownQuestion(t *testing.T) {
	e := NewEngine(testSurvey())
	err := e.SetValue("nope", models.TextAnswer("x"))
	assert.ErrorIs(t, err, ErrUnknownQuestion)
}

func TestToggleOption(t *testing.T) {
	e := NewEngine(testSurvey())

	require.NoError(t, e.ToggleOption("colors", "Đỏ", true))
	require.NoError(t, e.ToggleOption("colors", "Vàng", true))
	assert.Equal(t, []string{"Đỏ", "Vàng"}, e.Snapshot()["colors"].Selection)

	// áp lại cùng (option, included) lần hai phải là no-op
	require.NoError(t, e.ToggleOption("colors", "Đỏ", true))
	assert.Equal(t, []string{"Đỏ", "Vàng"}, e.Snapshot()["colors"].Selection)

	require.NoError(t, e.ToggleOption("colors", "Đỏ", false))
	require.NoError(t, e.ToggleOption("colors", "Đỏ", false))
	assert.Equal(t, []string{"Vàng"}, e.Snapshot()["colors"].Selection)

	// bỏ chọn option chưa từng được chọn cũng không lỗi
	require.NoError(t, e.ToggleOption("colors", "Xanh", false))
	assert.Equal(t, []string{"Vàng"}, e.Snapshot()["colors"].Selection)

	err := e.ToggleOption("name", "Đỏ", true)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestTableRowFloor(t *testing.T) {
	e := NewEngine(testSurvey())

	// chưa có câu trả lời: AddRow đọc ra một dòng sàn rồi mới nối thêm
	require.NoError(t, e.AddRow("plants"))
	assert.Len(t, e.Snapshot()["plants"].Table, 2)

	require.NoError(t, e.RemoveRow("plants", 1))
	assert.Len(t, e.Snapshot()["plants"].Table, 1)

	// xoá dòng cuối cùng: thay bằng dòng trống, không bao giờ về không dòng
	require.NoError(t, e.SetCell("plants", 0, "Tên", "Xưởng A"))
	require.NoError(t, e.RemoveRow("plants", 0))
	rows := e.Snapshot()["plants"].Table
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0])

	assert.Error(t, e.RemoveRow("plants", 5))
	assert.Error(t, e.SetCell("plants", 3, "Tên", "x"))
	assert.ErrorIs(t, e.AddRow("name"), ErrKindMismatch)
}

func TestSetCellKeepsOtherCells(t *testing.T) {
	e := NewEngine(testSurvey())
	require.NoError(t, e.AddRow("plants"))
	require.NoError(t, e.SetCell("plants", 0, "Tên", "A"))
	require.NoError(t, e.SetCell("plants", 1, "Tên", "B"))
	require.NoError(t, e.SetCell("plants", 0, "Diện tích", "120"))

	rows := e.Snapshot()["plants"].Table
	assert.Equal(t, models.TableRow{"Tên": "A", "Diện tích": "120"}, rows[0])
	assert.Equal(t, models.TableRow{"Tên": "B"}, rows[1])
}

func TestValidateForSubmit(t *testing.T) {
	e := NewEngine(testSurvey())

	// chưa điền gì: cả ba câu bắt buộc rớt, theo thứ tự khảo sát
	assert.Equal(t, []string{"name", "colors", "plants"}, e.ValidateForSubmit())

	require.NoError(t, e.SetValue("name", models.TextAnswer("Nguyễn Văn A")))
	require.NoError(t, e.ToggleOption("colors", "Đỏ", true))
	assert.Equal(t, []string{"plants"}, e.ValidateForSubmit())

	// bảng: chỉ dòng đầu tiên bị kiểm tra
	require.NoError(t, e.SetCell("plants", 0, "Tên", "Xưởng A"))
	assert.Equal(t, []string{"plants"}, e.ValidateForSubmit(), "dòng đầu còn ô trống")
	require.NoError(t, e.SetCell("plants", 0, "Diện tích", "120"))
	assert.Empty(t, e.ValidateForSubmit())

	// dòng thứ hai trống không chặn gửi
	require.NoError(t, e.AddRow("plants"))
	assert.Empty(t, e.ValidateForSubmit())

	// chuỗi rỗng không tính là đã trả lời
	require.NoError(t, e.SetValue("name", models.TextAnswer("")))
	assert.Equal(t, []string{"name"}, e.ValidateForSubmit())

	// bỏ hết lựa chọn: checkbox bắt buộc rớt lại
	require.NoError(t, e.SetValue("name", models.TextAnswer("ok")))
	require.NoError(t, e.ToggleOption("colors", "Đỏ", false))
	assert.Equal(t, []string{"colors"}, e.ValidateForSubmit())
}

func TestSnapshotIsDetached(t *testing.T) {
	e := NewEngine(testSurvey())
	require.NoError(t, e.SetValue("name", models.TextAnswer("A")))
	snap := e.Snapshot()

	require.NoError(t, e.SetValue("name", models.TextAnswer("B")))
	assert.Equal(t, "A", snap["name"].Text)
}

func TestReset(t *testing.T) {
	e := NewEngine(testSurvey())
	require.NoError(t, e.SetValue("name", models.TextAnswer("A")))
	require.NoError(t, e.AddRow("plants"))
	e.Reset()
	assert.Empty(t, e.Snapshot())
}
