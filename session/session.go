// Package session là bộ điều khiển trạng thái của một phiên làm việc:
// quyết định phiên ở chế độ soạn thảo (AUTHOR) hay điền form (FILL),
// giữ khảo sát + bộ sưu tập phản hồi cục bộ, và lái quy trình gửi.
package session

import (
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vnkhanh/survey-link/capture"
	"github.com/vnkhanh/survey-link/models"
	"github.com/vnkhanh/survey-link/sharelink"
)

// Mode cố định từ lúc tạo phiên: FILL khi và chỉ khi decode link chia sẻ
// thành công trên query khởi tạo.
type Mode string

const (
	ModeAuthor Mode = "AUTHOR"
	ModeFill   Mode = "FILL"
)

// View là sub-state của chế độ AUTHOR, chuyển tự do theo thao tác người dùng.
type View string

const (
	ViewEdit      View = "EDIT"
	ViewPreview   View = "PREVIEW"
	ViewResponses View = "RESPONSES"
)

// SubmitState là sub-state gửi bài của chế độ FILL.
type SubmitState string

const (
	SubmitIdle       SubmitState = "idle"
	SubmitSubmitting SubmitState = "submitting"
	SubmitSuccess    SubmitState = "success"
	SubmitError      SubmitState = "error"
)

var (
	ErrWrongMode   = errors.New("thao tác không hợp lệ cho chế độ phiên")
	ErrBadView     = errors.New("view không hợp lệ")
	ErrSubmitting  = errors.New("đang gửi, vui lòng chờ")
	ErrTerminal    = errors.New("phiên đã gửi thành công")
	ErrNotRetrying = errors.New("chỉ thử lại được khi lần gửi trước lỗi")
	ErrNotIdle     = errors.New("phiên chưa sẵn sàng gửi")
	ErrNotPreview  = errors.New("chỉ gửi thử được ở chế độ xem trước")
)

// Session sở hữu độc quyền một SurveyResponse đang soạn và (ở chế độ AUTHOR)
// bộ sưu tập phản hồi cục bộ append-only sống theo đời phiên.
type Session struct {
	mu sync.Mutex

	id        string
	mode      Mode
	createdAt time.Time
	lastSeen  time.Time

	// AUTHOR
	view      View
	responses []models.SurveyResponse

	// FILL
	endpoint    string
	submitState SubmitState
	submitError string

	// cả hai chế độ
	survey        models.Survey
	engine        *capture.Engine
	decodeWarning string
}

// New tạo phiên từ query khởi tạo. Decode link thành công -> FILL gắn với
// snapshot khảo sát và endpoint đã giải mã; thiếu tham số -> AUTHOR im lặng
// với khảo sát mặc định; có tham số nhưng hỏng -> AUTHOR kèm thông điệp lỗi
// hiển thị cho người dùng.
func New(params url.Values) *Session {
	now := time.Now()
	s := &Session{
		id:          uuid.NewString(),
		createdAt:   now,
		lastSeen:    now,
		view:        ViewEdit,
		submitState: SubmitIdle,
	}

	survey, endpoint, err := sharelink.Decode(params)
	switch {
	case err == nil:
		s.mode = ModeFill
		s.survey = survey
		s.endpoint = endpoint
	default:
		s.mode = ModeAuthor
		s.survey = models.DefaultSurvey()
		var decodeErr *sharelink.LinkDecodeError
		if errors.As(err, &decodeErr) && decodeErr.Reason != sharelink.ReasonMissingParam {
			s.decodeWarning = "Không thể tải khảo sát từ liên kết. Liên kết có thể bị lỗi."
		}
	}
	s.engine = capture.NewEngine(s.survey.Clone())
	return s
}

func (s *Session) ID() string { return s.id }

func (s *Session) touch() { s.lastSeen = time.Now() }

// Overview là ảnh chụp trạng thái phiên trả về cho client.
type Overview struct {
	ID            string        `json:"id"`
	Mode          Mode          `json:"mode"`
	View          View          `json:"view,omitempty"`
	Survey        models.Survey `json:"survey"`
	Endpoint      string        `json:"endpoint,omitempty"`
	SubmitState   SubmitState   `json:"submit_state,omitempty"`
	SubmitError   string        `json:"submit_error,omitempty"`
	ResponseCount int           `json:"response_count"`
	DecodeWarning string        `json:"decode_warning,omitempty"`
}

func (s *Session) Overview() Overview {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	o := Overview{
		ID:            s.id,
		Mode:          s.mode,
		Survey:        s.survey.Clone(),
		ResponseCount: len(s.responses),
		DecodeWarning: s.decodeWarning,
	}
	if s.mode == ModeAuthor {
		o.View = s.view
	} else {
		o.Endpoint = s.endpoint
		o.SubmitState = s.submitState
		o.SubmitError = s.submitError
	}
	return o
}

/* ========== Chế độ AUTHOR: soạn thảo ========== */

// SetView chuyển sub-state EDIT/PREVIEW/RESPONSES. Không có guard, không mất
// dữ liệu: khảo sát và bộ phản hồi cục bộ dùng chung giữa các view.
func (s *Session) SetView(v View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != ModeAuthor {
		return ErrWrongMode
	}
	switch v {
	case ViewEdit, ViewPreview, ViewResponses:
		s.view = v
		return nil
	}
	return fmt.Errorf("%w: %q", ErrBadView, v)
}

// UpdateSurvey cập nhật một phần tiêu đề/mô tả (field nil giữ nguyên).
func (s *Session) UpdateSurvey(title, description *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != ModeAuthor {
		return ErrWrongMode
	}
	if title != nil {
		s.survey.Title = *title
	}
	if description != nil {
		s.survey.Description = *description
	}
	s.rebindEngine()
	return nil
}

// ReplaceSurvey thay toàn bộ khảo sát (kết quả từ generator). Khi generator
// lỗi thì caller không gọi hàm này — khảo sát hiện tại không bị động tới.
func (s *Session) ReplaceSurvey(survey models.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != ModeAuthor {
		return ErrWrongMode
	}
	s.survey = survey
	s.rebindEngine()
	return nil
}

// rebindEngine gắn engine vào snapshot mới sau mỗi lần sửa khảo sát; câu trả
// lời preview đang dở bị bỏ (tương đương form được dựng lại).
func (s *Session) rebindEngine() {
	s.engine = capture.NewEngine(s.survey.Clone())
}

// AddQuestion nối câu hỏi trống (SHORT_ANSWER, id mới) vào cuối.
func (s *Session) AddQuestion() (models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != ModeAuthor {
		return models.Question{}, ErrWrongMode
	}
	q := models.NewQuestion()
	s.survey.Questions = append(s.survey.Questions, q)
	s.rebindEngine()
	return q, nil
}

// QuestionPatch cập nhật một phần: field nil giữ nguyên (kiểu merge con trỏ
// như updateFormReq).
type QuestionPatch struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Type        *models.QuestionType `json:"questionType"`
	Options     *[]string            `json:"options"`
	Columns     *[]string            `json:"columns"`
	IsRequired  *bool                `json:"isRequired"`
}

// UpdateQuestion vá câu hỏi theo id. Đổi sang loại có lựa chọn khi options
// đang rỗng sẽ seed "Lựa chọn 1" (editor luôn giữ ít nhất một lựa chọn);
// đổi sang loại không có lựa chọn thì options bị dọn rỗng.
func (s *Session) UpdateQuestion(id string, patch QuestionPatch) (models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != ModeAuthor {
		return models.Question{}, ErrWrongMode
	}
	idx := -1
	for i, q := range s.survey.Questions {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Question{}, fmt.Errorf("%w: %s", capture.ErrUnknownQuestion, id)
	}
	q := s.survey.Questions[idx]
	if patch.Title != nil {
		q.Title = *patch.Title
	}
	if patch.Description != nil {
		q.Description = *patch.Description
	}
	if patch.Options != nil {
		q.Options = append([]string(nil), (*patch.Options)...)
	}
	if patch.Columns != nil {
		q.Columns = append([]string(nil), (*patch.Columns)...)
	}
	if patch.IsRequired != nil {
		q.IsRequired = *patch.IsRequired
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return models.Question{}, fmt.Errorf("loại câu hỏi %q không được hỗ trợ", *patch.Type)
		}
		q.Type = *patch.Type
		if q.Type.HasOptions() {
			if len(q.Options) == 0 {
				q.Options = []string{"Lựa chọn 1"}
			}
		} else {
			q.Options = []string{}
		}
	}
	if q.Type.HasOptions() && len(q.Options) == 0 {
		return models.Question{}, errors.New("câu hỏi dạng lựa chọn phải có ít nhất một lựa chọn")
	}
	s.survey.Questions[idx] = q
	s.rebindEngine()
	return q, nil
}

// DeleteQuestion xoá theo id; id đã dùng không bao giờ được cấp lại.
func (s *Session) DeleteQuestion(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != ModeAuthor {
		return ErrWrongMode
	}
	for i, q := range s.survey.Questions {
		if q.ID == id {
			s.survey.Questions = append(s.survey.Questions[:i], s.survey.Questions[i+1:]...)
			s.rebindEngine()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", capture.ErrUnknownQuestion, id)
}

// ReorderQuestions nhận hoán vị đầy đủ của các id hiện có.
func (s *Session) ReorderQuestions(order []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != ModeAuthor {
		return ErrWrongMode
	}
	if len(order) != len(s.survey.Questions) {
		return errors.New("danh sách order phải chứa đủ toàn bộ câu hỏi")
	}
	byID := make(map[string]models.Question, len(s.survey.Questions))
	for _, q := range s.survey.Questions {
		byID[q.ID] = q
	}
	next := make([]models.Question, 0, len(order))
	for _, id := range order {
		q, ok := byID[id]
		if !ok {
			return fmt.Errorf("danh sách order chứa câu hỏi không thuộc khảo sát: %s", id)
		}
		delete(byID, id)
		next = append(next, q)
	}
	s.survey.Questions = next
	s.rebindEngine()
	return nil
}

/* ========== Nhập câu trả lời (cả hai chế độ) ========== */

// captureAllowed chặn sửa câu trả lời khi đang gửi hoặc đã gửi xong.
func (s *Session) captureAllowed() error {
	switch s.submitState {
	case SubmitSubmitting:
		return ErrSubmitting
	case SubmitSuccess:
		return ErrTerminal
	}
	return nil
}

func (s *Session) SetValue(questionID string, v models.AnswerValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.captureAllowed(); err != nil {
		return err
	}
	return s.engine.SetValue(questionID, v)
}

func (s *Session) ToggleOption(questionID, option string, included bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.captureAllowed(); err != nil {
		return err
	}
	return s.engine.ToggleOption(questionID, option, included)
}

func (s *Session) AddRow(questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.captureAllowed(); err != nil {
		return err
	}
	return s.engine.AddRow(questionID)
}

func (s *Session) RemoveRow(questionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.captureAllowed(); err != nil {
		return err
	}
	return s.engine.RemoveRow(questionID, index)
}

func (s *Session) SetCell(questionID string, index int, column, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.captureAllowed(); err != nil {
		return err
	}
	return s.engine.SetCell(questionID, index, column, value)
}

func (s *Session) CurrentResponse() models.SurveyResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

/* ========== Gửi ========== */

// SubmitLocal chốt phản hồi ở chế độ AUTHOR: append vào bộ sưu tập cục bộ
// rồi chuyển view sang RESPONSES. Chỉ chấp nhận khi đang ở view PREVIEW —
// EDIT và RESPONSES không có form để gửi. failing khác rỗng nghĩa là chưa
// gửi được (các câu bắt buộc chưa đạt).
func (s *Session) SubmitLocal() (failing []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != ModeAuthor {
		return nil, ErrWrongMode
	}
	if s.view != ViewPreview {
		return nil, ErrNotPreview
	}
	if failing = s.engine.ValidateForSubmit(); len(failing) > 0 {
		return failing, nil
	}
	s.responses = append(s.responses, s.engine.Snapshot())
	s.engine.Reset()
	s.view = ViewResponses
	return nil, nil
}

// BeginSubmit chuyển idle -> submitting ở chế độ FILL. Chỉ đi tiếp khi
// ValidateForSubmit rỗng; trong khi submitting không nhận lệnh gửi thứ hai
// (tối đa một lần gửi đang bay cho mỗi phiên).
func (s *Session) BeginSubmit() (endpoint string, survey models.Survey, response models.SurveyResponse, failing []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != ModeFill {
		return "", models.Survey{}, nil, nil, ErrWrongMode
	}
	switch s.submitState {
	case SubmitSubmitting:
		return "", models.Survey{}, nil, nil, ErrSubmitting
	case SubmitSuccess:
		return "", models.Survey{}, nil, nil, ErrTerminal
	case SubmitError:
		return "", models.Survey{}, nil, nil, ErrNotIdle
	}
	if failing = s.engine.ValidateForSubmit(); len(failing) > 0 {
		return "", models.Survey{}, nil, failing, nil
	}
	s.submitState = SubmitSubmitting
	s.submitError = ""
	return s.endpoint, s.survey.Clone(), s.engine.Snapshot(), nil, nil
}

// FinishSubmit thoát submitting theo kết quả của RemoteSubmissionClient:
// lỗi transport -> error (được thử lại, câu trả lời giữ nguyên);
// còn lại -> success, trạng thái chốt của phiên.
func (s *Session) FinishSubmit(submitErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.submitState != SubmitSubmitting {
		return
	}
	if submitErr != nil {
		s.submitState = SubmitError
		s.submitError = "Đã xảy ra lỗi khi gửi. Vui lòng thử lại."
		return
	}
	s.submitState = SubmitSuccess
}

// RetrySubmit chuyển error -> idle. success là trạng thái cuối — không có
// đường quay lại idle.
func (s *Session) RetrySubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.mode != ModeFill {
		return ErrWrongMode
	}
	if s.submitState != SubmitError {
		if s.submitState == SubmitSuccess {
			return ErrTerminal
		}
		return ErrNotRetrying
	}
	s.submitState = SubmitIdle
	s.submitError = ""
	return nil
}

/* ========== Truy xuất ========== */

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) Survey() models.Survey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.survey.Clone()
}

func (s *Session) Responses() []models.SurveyResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.SurveyResponse, len(s.responses))
	for i, r := range s.responses {
		out[i] = r.Clone()
	}
	return out
}

func (s *Session) ValidateForSubmit() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ValidateForSubmit()
}
