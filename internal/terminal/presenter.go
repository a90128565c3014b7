package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"hallconsole/internal/console"
	"hallconsole/internal/i18n"
	"hallconsole/internal/models"
)

// Presenter writes console state to a terminal as plain text.
type Presenter struct {
	mu      sync.Mutex
	out     io.Writer
	catalog *i18n.Catalog
}

func NewPresenter(out io.Writer, catalog *i18n.Catalog) *Presenter {
	return &Presenter{out: out, catalog: catalog}
}

func (p *Presenter) RenderDay(view console.DayView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := p.catalog.Messages
	fmt.Fprintf(p.out, "\n== %s ==\n", view.Heading)

	if view.State == console.StateLoaded || view.State == console.StateEmpty {
		fmt.Fprintf(p.out, "[%s: %s] [%s: %s]\n", msgs.CountLabel, view.Count, msgs.HoursLabel, view.Hours)
	}

	if !view.HasTable() {
		fmt.Fprintf(p.out, "  %s\n", view.Placeholder)
		return
	}

	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", "ID", msgs.ColumnTitle, msgs.ColumnName, msgs.ColumnTime)
	for _, row := range view.Rows {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", row.ID, row.Title, row.Name, row.TimeRange)
	}
	_ = tw.Flush()
}

func (p *Presenter) RenderDraft(draft models.BookingDraft) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := p.catalog.Messages
	fmt.Fprintf(p.out, "-- %s: %s=%q %s=%q %s=%q %s=%s %s=%s\n",
		msgs.NewBooking,
		msgs.FieldTitle, draft.Title,
		msgs.FieldName, draft.Name,
		msgs.FieldEmail, draft.Email,
		msgs.FieldStart, draft.StartAt.Format(models.TimestampLayout),
		msgs.FieldEnd, draft.EndAt.Format(models.TimestampLayout),
	)
}

func (p *Presenter) ShowNotice(notice console.Notice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "[%s] %s\n", strings.ToUpper(notice.Kind), notice.Text)
}

// ClearNotice is a no-op: printed lines stay in the scrollback.
func (p *Presenter) ClearNotice(console.Notice) {}

// Prompt prints a yes/no question.
func (p *Presenter) Prompt(question string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "? %s [%s/%s] ", question, p.catalog.Messages.Yes, p.catalog.Messages.No)
}

// Println prints a plain line such as help text or a parse error.
func (p *Presenter) Println(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, text)
}
