package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vnkhanh/survey-link/models"
)

const sheetName = "Responses"

// XLSX dựng workbook Excel cùng thứ tự cột với CSV. Khác CSV, giá trị ghi
// thẳng vào ô (excelize tự lo escape), bảng động ghi dưới dạng JSON text.
func XLSX(survey models.Survey, responses []models.SurveyResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(survey.Questions))
	for i, q := range survey.Questions {
		header[i] = q.Title
	}
	if err := setRow(f, 1, header); err != nil {
		return nil, err
	}

	for r, resp := range responses {
		row := make([]interface{}, len(survey.Questions))
		for i, q := range survey.Questions {
			row[i] = xlsxCell(q, resp)
		}
		if err := setRow(f, r+2, row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func setRow(f *excelize.File, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}

func xlsxCell(q models.Question, resp models.SurveyResponse) string {
	v, ok := resp[q.ID]
	if !ok || !v.Matches(q.Type) {
		return ""
	}
	switch v.Kind {
	case models.AnswerText:
		return v.Text
	case models.AnswerSelection:
		return strings.Join(v.Selection, ", ")
	case models.AnswerTable:
		raw, err := json.Marshal(v.Table)
		if err != nil {
			return fmt.Sprintf("%v", v.Table)
		}
		return string(raw)
	}
	return ""
}
