package session

import (
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager giữ các phiên đang sống trong bộ nhớ tiến trình. Không có
// persistence: phiên chết cùng tiến trình (hoặc khi quá hạn không hoạt động).
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	log      *zap.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func NewManager(ttl time.Duration, log *zap.Logger) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		log:      log,
		done:     make(chan struct{}),
	}
	if ttl > 0 {
		// dọn nền các phiên bỏ hoang, cùng kiểu với limiter theo IP
		go m.sweep()
	}
	return m
}

// Close dừng goroutine dọn nền. Gọi nhiều lần vô hại.
func (m *Manager) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}

// Create dựng phiên mới từ query khởi tạo (có thể rỗng) và đăng ký nó.
func (m *Manager) Create(params url.Values) *Session {
	s := New(params)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	m.log.Info("tạo phiên",
		zap.String("session_id", s.ID()),
		zap.String("mode", string(s.Mode())),
	)
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.mu.Lock()
			for id, s := range m.sessions {
				s.mu.Lock()
				idle := time.Since(s.lastSeen)
				s.mu.Unlock()
				if idle > m.ttl {
					delete(m.sessions, id)
					m.log.Info("dọn phiên quá hạn", zap.String("session_id", id))
				}
			}
			m.mu.Unlock()
		}
	}
}
