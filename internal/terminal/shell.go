package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"hallconsole/internal/console"
	"hallconsole/internal/export"
	"hallconsole/internal/i18n"
	"hallconsole/internal/models"

	"github.com/rs/zerolog"
)

// Shell is a line-oriented front-end for a Console. Each action runs on its
// own goroutine so input keeps flowing while an API call is outstanding.
type Shell struct {
	in        io.Reader
	console   *console.Console
	presenter *Presenter
	confirmer *LineConfirmer
	catalog   *i18n.Catalog
	loc       *time.Location
	exportDir string
	logger    *zerolog.Logger

	wg sync.WaitGroup
}

type ShellOptions struct {
	Input     io.Reader
	Console   *console.Console
	Presenter *Presenter
	Confirmer *LineConfirmer
	Catalog   *i18n.Catalog
	Location  *time.Location
	ExportDir string
	Logger    *zerolog.Logger
}

func NewShell(opts ShellOptions) *Shell {
	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Shell{
		in:        opts.Input,
		console:   opts.Console,
		presenter: opts.Presenter,
		confirmer: opts.Confirmer,
		catalog:   opts.Catalog,
		loc:       loc,
		exportDir: opts.ExportDir,
		logger:    logger,
	}
}

// Run loads the first day and then reads commands until quit, end of input,
// or ctx is cancelled. Outstanding actions are cancelled and awaited before
// it returns.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.dispatch(ctx, s.console.Start)

	var err error
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case line, ok := <-lines:
			if !ok {
				select {
				case err = <-readErr:
				default:
				}
				break loop
			}
			if !s.handle(ctx, line) {
				break loop
			}
		}
	}

	// Abort outstanding calls and unanswered prompts, then wait for them.
	cancel()
	s.wg.Wait()
	return err
}

// handle executes one input line. It returns false when the shell should stop.
func (s *Shell) handle(ctx context.Context, line string) bool {
	if s.confirmer.answer(line) {
		return true
	}

	cmd, arg := splitCommand(line)
	msgs := s.catalog.Messages

	switch cmd {
	case "":
	case "prev", "previous":
		s.dispatch(ctx, s.console.Previous)
	case "next":
		s.dispatch(ctx, s.console.Next)
	case "today":
		s.dispatch(ctx, s.console.Today)
	case "refresh":
		s.dispatch(ctx, s.console.Refresh)
	case "goto":
		day, err := models.ParseDay(arg)
		if err != nil {
			s.presenter.Println(msgs.InvalidDate)
			return true
		}
		s.dispatch(ctx, func(ctx context.Context) { s.console.GoTo(ctx, day) })
	case "title":
		s.console.UpdateDraft(func(d *models.BookingDraft) { d.Title = arg })
	case "name":
		s.console.UpdateDraft(func(d *models.BookingDraft) { d.Name = arg })
	case "email":
		s.console.UpdateDraft(func(d *models.BookingDraft) { d.Email = arg })
	case "start", "end":
		t, err := parseLocalTime(arg, s.loc)
		if err != nil {
			s.presenter.Println(msgs.InvalidTime)
			return true
		}
		s.console.UpdateDraft(func(d *models.BookingDraft) {
			if cmd == "start" {
				d.StartAt = t
			} else {
				d.EndAt = t
			}
		})
	case "draft":
		s.presenter.RenderDraft(s.console.Draft())
	case "book":
		s.dispatch(ctx, func(ctx context.Context) { s.console.Submit(ctx) })
	case "del", "delete":
		if arg == "" {
			s.presenter.Println(msgs.UnknownCommand)
			return true
		}
		id := models.BookingID(arg)
		s.confirmer.arm()
		s.dispatch(ctx, func(ctx context.Context) { s.console.Delete(ctx, id) })
	case "export":
		s.export(arg)
	case "help":
		s.presenter.Println(msgs.Help)
	case "quit", "exit":
		return false
	default:
		s.presenter.Println(msgs.UnknownCommand)
	}
	return true
}

func (s *Shell) dispatch(ctx context.Context, action func(context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().Interface("panic", r).Msg("recovered from panic in shell action")
			}
		}()
		action(ctx)
	}()
}

func (s *Shell) export(dir string) {
	if dir == "" {
		dir = s.exportDir
	}
	path, err := export.WriteDay(s.console.View(), s.catalog, dir)
	if err != nil {
		s.logger.Warn().Err(err).Str("dir", dir).Msg("export failed")
		s.presenter.Println(s.catalog.Messages.ExportFailed)
		return
	}
	s.logger.Info().Str("path", path).Msg("day exported")
	s.presenter.Println(fmt.Sprintf(s.catalog.Messages.ExportDone, path))
}

func splitCommand(line string) (cmd, arg string) {
	line = strings.TrimSpace(line)
	cmd, arg, _ = strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

// parseLocalTime reads "YYYY-MM-DD HH:MM" (or the T-separated form) as a wall
// clock in loc.
func parseLocalTime(s string, loc *time.Location) (time.Time, error) {
	ts, err := models.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, err
	}
	t := ts.Time
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
