package console

import (
	"sync"
	"testing"
	"time"

	"hallconsole/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noticeLog struct {
	mu      sync.Mutex
	shown   []Notice
	cleared []Notice
}

func (l *noticeLog) show(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shown = append(l.shown, n)
}

func (l *noticeLog) clear(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleared = append(l.cleared, n)
}

func (l *noticeLog) clearedIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.cleared))
	for _, n := range l.cleared {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestNotifierExpires(t *testing.T) {
	log := &noticeLog{}
	n := NewNotifier(20*time.Millisecond, log.show, log.clear)
	defer n.Close()

	notice := n.Show(models.NoticeOK, "saved")
	current, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, notice, current)

	assert.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{notice.ID}, log.clearedIDs())
}

func TestNotifierReplacesCurrent(t *testing.T) {
	log := &noticeLog{}
	n := NewNotifier(time.Hour, log.show, log.clear)
	defer n.Close()

	first := n.Show(models.NoticeError, "boom")
	second := n.Show(models.NoticeOK, "fine")
	assert.NotEqual(t, first.ID, second.ID)

	current, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "fine", current.Text)
	assert.Len(t, log.shown, 2)
	assert.Equal(t, []string{first.ID}, log.clearedIDs())
}

func TestNotifierOldTimerKeepsNewNotice(t *testing.T) {
	log := &noticeLog{}
	n := NewNotifier(time.Hour, log.show, log.clear)
	defer n.Close()

	first := n.Show(models.NoticeError, "boom")
	second := n.Show(models.NoticeOK, "fine")

	// Simulate the first timer firing after it was replaced.
	n.expire(first.ID)

	current, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)
	assert.Equal(t, []string{first.ID}, log.clearedIDs())

	n.expire(second.ID)
	_, ok = n.Current()
	assert.False(t, ok)
	assert.Equal(t, []string{first.ID, second.ID}, log.clearedIDs())
}

func TestNotifierDefaultTTL(t *testing.T) {
	n := NewNotifier(0, nil, nil)
	assert.Equal(t, models.DefaultNoticeTTL*time.Second, n.ttl)
	n.Show(models.NoticeOK, "x")
	n.Close()
	_, ok := n.Current()
	assert.False(t, ok)
}
