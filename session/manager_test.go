package session

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(0, zap.NewNop())

	s := m.Create(url.Values{})
	require.NotEmpty(t, s.ID())
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("missing")
	assert.False(t, ok)

	m.Delete(s.ID())
	assert.Equal(t, 0, m.Count())
	_, ok = m.Get(s.ID())
	assert.False(t, ok)
}

func TestManagerClose(t *testing.T) {
	m := NewManager(time.Minute, zap.NewNop())
	m.Create(url.Values{})

	m.Close()
	m.Close() // idempotent

	// registry vẫn đọc được sau khi dừng sweeper
	assert.Equal(t, 1, m.Count())
}

func TestManagerSessionsAreIndependent(t *testing.T) {
	m := NewManager(0, zap.NewNop())
	a := m.Create(url.Values{})
	b := m.Create(url.Values{})

	assert.NotEqual(t, a.ID(), b.ID())

	title := "chỉ phiên a"
	require.NoError(t, a.UpdateSurvey(&title, nil))
	assert.NotEqual(t, a.Survey().Title, b.Survey().Title)
}
