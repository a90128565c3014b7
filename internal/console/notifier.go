package console

import (
	"sync"
	"time"

	"hallconsole/internal/metrics"
	"hallconsole/internal/models"

	"github.com/google/uuid"
)

// Notice is one transient message. Kind is models.NoticeOK or models.NoticeError.
type Notice struct {
	ID   string
	Kind string
	Text string
}

// Notifier keeps at most one notice on screen. A new notice replaces the
// current one immediately, and each expiry timer only clears the notice it
// was started for.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notice
	timer   *time.Timer

	show  func(Notice)
	clear func(Notice)
}

// NewNotifier calls show when a notice appears and clear when it expires or
// is replaced.
// Both run with the notifier locked and must not call back into it.
func NewNotifier(ttl time.Duration, show, clear func(Notice)) *Notifier {
	if ttl <= 0 {
		ttl = models.DefaultNoticeTTL * time.Second
	}
	if show == nil {
		show = func(Notice) {}
	}
	if clear == nil {
		clear = func(Notice) {}
	}
	return &Notifier{ttl: ttl, show: show, clear: clear}
}

func (n *Notifier) Show(kind, text string) Notice {
	notice := Notice{ID: uuid.NewString(), Kind: kind, Text: text}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	if n.current != nil {
		n.clear(*n.current)
	}
	n.current = &notice
	n.show(notice)
	metrics.IncNotice(kind)

	id := notice.ID
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(id) })
	return notice
}

// Current returns the notice on screen, if any.
func (n *Notifier) Current() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notice{}, false
	}
	return *n.current, true
}

// Close stops the pending timer without clearing the screen.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
}

func (n *Notifier) expire(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	// A timer that lost the Stop race must not touch a newer notice.
	if n.current == nil || n.current.ID != id {
		return
	}
	expired := *n.current
	n.current = nil
	n.timer = nil
	n.clear(expired)
}
