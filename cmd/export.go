package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vnkhanh/survey-link/export"
	"github.com/vnkhanh/survey-link/models"
)

func exportCmd() *cobra.Command {
	var (
		surveyFile    string
		responsesFile string
		format        string
		outFile       string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Kết xuất phản hồi đã thu thập ra CSV/XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(surveyFile)
			if err != nil {
				return err
			}
			var survey models.Survey
			if err := json.Unmarshal(raw, &survey); err != nil {
				return fmt.Errorf("file khảo sát không phải JSON hợp lệ: %w", err)
			}
			if err := survey.Validate(); err != nil {
				return fmt.Errorf("khảo sát không hợp lệ: %w", err)
			}

			raw, err = os.ReadFile(responsesFile)
			if err != nil {
				return err
			}
			var responses []models.SurveyResponse
			if err := json.Unmarshal(raw, &responses); err != nil {
				return fmt.Errorf("file phản hồi không phải JSON hợp lệ: %w", err)
			}

			if outFile == "" {
				outFile = export.Filename(survey.Title) + "." + format
			}

			switch format {
			case "csv":
				if err := os.WriteFile(outFile, []byte(export.CSV(survey, responses)), 0o644); err != nil {
					return err
				}
			case "xlsx":
				f, err := export.XLSX(survey, responses)
				if err != nil {
					return err
				}
				if err := f.SaveAs(outFile); err != nil {
					return err
				}
			default:
				return fmt.Errorf("định dạng %q không được hỗ trợ", format)
			}

			fmt.Printf("đã ghi %d phản hồi vào %s\n", len(responses), outFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&surveyFile, "survey", "", "file JSON chứa khảo sát")
	cmd.Flags().StringVar(&responsesFile, "responses", "", "file JSON chứa mảng phản hồi")
	cmd.Flags().StringVar(&format, "format", "csv", "csv hoặc xlsx")
	cmd.Flags().StringVar(&outFile, "out", "", "đường dẫn file kết quả (mặc định theo tiêu đề khảo sát)")
	_ = cmd.MarkFlagRequired("survey")
	_ = cmd.MarkFlagRequired("responses")
	return cmd
}
