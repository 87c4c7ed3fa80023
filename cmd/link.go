package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vnkhanh/survey-link/config"
	"github.com/vnkhanh/survey-link/models"
	"github.com/vnkhanh/survey-link/sharelink"
)

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Mã hoá / giải mã link chia sẻ khảo sát",
	}
	cmd.AddCommand(linkEncodeCmd(), linkDecodeCmd())
	return cmd
}

func linkEncodeCmd() *cobra.Command {
	var (
		surveyFile string
		endpoint   string
		baseURL    string
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Tạo link chia sẻ từ file khảo sát JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			var survey models.Survey
			if surveyFile == "" {
				survey = models.DefaultSurvey()
			} else {
				raw, err := os.ReadFile(surveyFile)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(raw, &survey); err != nil {
					return fmt.Errorf("file khảo sát không phải JSON hợp lệ: %w", err)
				}
				if err := survey.Validate(); err != nil {
					return fmt.Errorf("khảo sát không hợp lệ: %w", err)
				}
			}

			if endpoint == "" {
				cfg := config.Load()
				saved, ok := config.NewFileEndpointStore(cfg.EndpointFile).Load()
				if !ok {
					return fmt.Errorf("chưa có endpoint: dùng --endpoint hoặc lưu trước qua server")
				}
				endpoint = saved
			}

			link, err := sharelink.Encode(survey, endpoint, baseURL)
			if err != nil {
				return err
			}
			fmt.Println(link)
			return nil
		},
	}
	cmd.Flags().StringVar(&surveyFile, "survey", "", "file JSON chứa khảo sát (mặc định: biểu mẫu mẫu)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "URL endpoint nộp bài (mặc định: giá trị đã lưu)")
	cmd.Flags().StringVar(&baseURL, "base", "http://localhost:5173", "origin+path nơi host bản điền form")
	return cmd
}

func linkDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <link>",
		Short: "Giải mã link chia sẻ, in khảo sát và endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := args[0]
			var params url.Values
			if u, err := url.Parse(arg); err == nil && u.RawQuery != "" {
				params = u.Query()
			} else {
				// chấp nhận cả query string trần
				params, err = url.ParseQuery(strings.TrimPrefix(arg, "?"))
				if err != nil {
					return fmt.Errorf("không đọc được query string: %w", err)
				}
			}

			survey, endpoint, err := sharelink.Decode(params)
			if err != nil {
				return err
			}

			pretty, err := json.MarshalIndent(survey, "", "  ")
			if err != nil {
				return err
			}
			fmt.Printf("endpoint: %s\n", endpoint)
			fmt.Printf("questions: %d\n", len(survey.Questions))
			fmt.Println(string(pretty))
			return nil
		},
	}
}
