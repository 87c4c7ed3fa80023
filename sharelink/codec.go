// Package sharelink mã hoá/giải mã link chia sẻ khảo sát.
//
// Link mang toàn bộ định nghĩa khảo sát và endpoint nộp bài ngay trong query
// string, nên phân phối form không cần server lưu trữ:
//
//	?survey=base64(percentEncode(JSON(survey)))&endpoint=base64(endpointURL)
package sharelink

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/vnkhanh/survey-link/models"
)

const (
	ParamSurvey   = "survey"
	ParamEndpoint = "endpoint"
)

// DecodeReason phân loại lỗi giải mã link.
type DecodeReason string

const (
	ReasonMissingParam DecodeReason = "missing_param"
	ReasonBadBase64    DecodeReason = "bad_base64"
	ReasonBadJSON      DecodeReason = "bad_json"
	ReasonBadSchema    DecodeReason = "bad_schema"
)

// LinkDecodeError: link hỏng hoặc thiếu tham số. Phiên rơi về chế độ soạn
// thảo với khảo sát mặc định, không bao giờ vào chế độ điền form.
type LinkDecodeError struct {
	Reason DecodeReason
	Param  string
	Err    error
}

func (e *LinkDecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("link chia sẻ không hợp lệ (%s, tham số %q): %v", e.Reason, e.Param, e.Err)
	}
	return fmt.Sprintf("link chia sẻ không hợp lệ (%s, tham số %q)", e.Reason, e.Param)
}

func (e *LinkDecodeError) Unwrap() error { return e.Err }

// Encode tạo link chia sẻ từ (khảo sát, endpoint) trên nền baseURL
// (origin + path của ứng dụng). Payload chỉ chứa ký tự base64 chuẩn nên link
// hợp lệ theo luật encode mặc định của URL.
func Encode(survey models.Survey, endpointURL, baseURL string) (string, error) {
	raw, err := json.Marshal(survey)
	if err != nil {
		return "", fmt.Errorf("không serialize được khảo sát: %w", err)
	}
	surveyParam := base64.StdEncoding.EncodeToString([]byte(percentEncode(string(raw))))
	endpointParam := base64.StdEncoding.EncodeToString([]byte(endpointURL))

	q := url.Values{}
	q.Set(ParamSurvey, surveyParam)
	q.Set(ParamEndpoint, endpointParam)
	return baseURL + "?" + q.Encode(), nil
}

// Decode dựng lại (khảo sát, endpoint) từ query params. Cả hai tham số đều
// bắt buộc; mọi lỗi base64/JSON/schema trả về *LinkDecodeError.
func Decode(params url.Values) (models.Survey, string, error) {
	surveyParam := params.Get(ParamSurvey)
	endpointParam := params.Get(ParamEndpoint)
	if surveyParam == "" || endpointParam == "" {
		missing := ParamSurvey
		if surveyParam != "" {
			missing = ParamEndpoint
		}
		return models.Survey{}, "", &LinkDecodeError{Reason: ReasonMissingParam, Param: missing}
	}

	surveyBytes, err := base64.StdEncoding.DecodeString(surveyParam)
	if err != nil {
		return models.Survey{}, "", &LinkDecodeError{Reason: ReasonBadBase64, Param: ParamSurvey, Err: err}
	}
	endpointBytes, err := base64.StdEncoding.DecodeString(endpointParam)
	if err != nil {
		return models.Survey{}, "", &LinkDecodeError{Reason: ReasonBadBase64, Param: ParamEndpoint, Err: err}
	}

	jsonText, err := percentDecode(string(surveyBytes))
	if err != nil {
		return models.Survey{}, "", &LinkDecodeError{Reason: ReasonBadJSON, Param: ParamSurvey, Err: err}
	}

	// Shape tối thiểu: object có đủ title, description (đều là string) và
	// questions. Key vắng mặt unmarshal thành zero value nên phải dò trên
	// JSON thô trước, không dò được qua struct.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonText), &probe); err != nil {
		reason := ReasonBadJSON
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			reason = ReasonBadSchema
		}
		return models.Survey{}, "", &LinkDecodeError{Reason: reason, Param: ParamSurvey, Err: err}
	}
	for _, key := range []string{"title", "description"} {
		raw, ok := probe[key]
		if !ok {
			return models.Survey{}, "", &LinkDecodeError{
				Reason: ReasonBadSchema,
				Param:  ParamSurvey,
				Err:    fmt.Errorf("thiếu trường %q", key),
			}
		}
		var s string
		// null unmarshal "thành công" vào string mà không đổi giá trị
		if err := json.Unmarshal(raw, &s); err != nil || string(raw) == "null" {
			return models.Survey{}, "", &LinkDecodeError{
				Reason: ReasonBadSchema,
				Param:  ParamSurvey,
				Err:    fmt.Errorf("trường %q phải là string", key),
			}
		}
	}

	var survey models.Survey
	if err := json.Unmarshal([]byte(jsonText), &survey); err != nil {
		reason := ReasonBadJSON
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// JSON hợp lệ nhưng sai kiểu bên trong questions -> lỗi schema
			reason = ReasonBadSchema
		}
		return models.Survey{}, "", &LinkDecodeError{Reason: reason, Param: ParamSurvey, Err: err}
	}
	if err := survey.Validate(); err != nil {
		return models.Survey{}, "", &LinkDecodeError{Reason: ReasonBadSchema, Param: ParamSurvey, Err: err}
	}
	return survey, string(endpointBytes), nil
}
