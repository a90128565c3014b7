package terminal

import (
	"context"
	"errors"
	"strings"
	"sync"

	"hallconsole/internal/i18n"
)

var errNotArmed = errors.New("terminal: no pending confirmation")

// LineConfirmer answers console confirmations with the next input line.
// The shell arms it before starting an action that will ask, so the line
// typed after the prompt cannot be mistaken for a command.
type LineConfirmer struct {
	mu sync.Mutex
	// pending is taken by the next Confirm; accepting receives the next line.
	// They start as the same channel so the answer may arrive before Confirm runs.
	pending   chan string
	accepting chan string

	presenter *Presenter
	catalog   *i18n.Catalog
}

func NewLineConfirmer(presenter *Presenter, catalog *i18n.Catalog) *LineConfirmer {
	return &LineConfirmer{presenter: presenter, catalog: catalog}
}

func (l *LineConfirmer) arm() {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch := make(chan string, 1)
	l.pending = ch
	l.accepting = ch
}

// answer hands line to the armed prompt. It reports false when nothing is armed.
func (l *LineConfirmer) answer(line string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.accepting == nil {
		return false
	}
	l.accepting <- line
	l.accepting = nil
	return true
}

func (l *LineConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	l.mu.Lock()
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()
	if pending == nil {
		return false, errNotArmed
	}

	l.presenter.Prompt(prompt)
	select {
	case line := <-pending:
		return l.isYes(line), nil
	case <-ctx.Done():
		l.mu.Lock()
		if l.accepting == pending {
			l.accepting = nil
		}
		l.mu.Unlock()
		return false, ctx.Err()
	}
}

func (l *LineConfirmer) isYes(line string) bool {
	line = strings.ToLower(strings.TrimSpace(line))
	switch line {
	case "y", "yes":
		return true
	}
	return line != "" && line == strings.ToLower(l.catalog.Messages.Yes)
}
