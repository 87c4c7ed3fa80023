package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// EndpointStore lưu đúng một giá trị: URL endpoint nộp bài đã được tác giả
// lưu lại. Đây là trạng thái duy nhất sống qua nhiều phiên; đọc một lần khi
// mở UI soạn thảo, ghi chỉ khi người dùng bấm lưu. Không có kịch bản ghi
// đồng thời cần phân xử.
type EndpointStore interface {
	Load() (string, bool)
	Save(url string) error
}

// FileEndpointStore ghi URL vào một file văn bản đơn.
type FileEndpointStore struct {
	mu   sync.Mutex
	path string
}

func NewFileEndpointStore(path string) *FileEndpointStore {
	return &FileEndpointStore{path: path}
}

func (s *FileEndpointStore) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	url := strings.TrimSpace(string(raw))
	if url == "" {
		return "", false
	}
	return url, true
}

func (s *FileEndpointStore) Save(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(strings.TrimSpace(url)+"\n"), 0o644)
}
