package console

import (
	"strconv"

	"hallconsole/internal/i18n"
	"hallconsole/internal/models"
)

type ViewState string

const (
	StateLoading ViewState = "loading"
	StateLoaded  ViewState = "loaded"
	StateEmpty   ViewState = "empty"
	StateFailed  ViewState = "failed"
)

// Row is one table line. TimeRange is already rendered.
type Row struct {
	ID        models.BookingID
	Title     string
	Name      string
	TimeRange string
}

// DayView is everything a presenter needs to draw one day.
// Rows is nil unless State is StateLoaded; Placeholder is set otherwise.
type DayView struct {
	Day         models.Day
	Heading     string
	State       ViewState
	Placeholder string
	Rows        []Row
	Count       string
	Hours       string
}

// HasTable reports whether the view carries a table rather than a placeholder.
func (v DayView) HasTable() bool {
	return v.State == StateLoaded
}

// BuildDayView projects a fetched day. Rows keep the order the API sent them in.
func BuildDayView(day models.Day, bookings *models.DayBookings, catalog *i18n.Catalog) DayView {
	summary := bookings.Summary()
	view := DayView{
		Day:     day,
		Heading: catalog.FormatLongDate(day),
		Count:   strconv.Itoa(summary.Count),
		Hours:   formatHours(summary.HoursBooked),
	}

	if bookings == nil || len(bookings.Bookings) == 0 {
		view.State = StateEmpty
		view.Placeholder = catalog.Messages.Empty
		return view
	}

	view.State = StateLoaded
	view.Rows = make([]Row, 0, len(bookings.Bookings))
	for _, b := range bookings.Bookings {
		view.Rows = append(view.Rows, Row{
			ID:        b.ID,
			Title:     b.Title,
			Name:      b.Name,
			TimeRange: b.TimeRange(),
		})
	}
	return view
}

func LoadingView(day models.Day, catalog *i18n.Catalog) DayView {
	return DayView{
		Day:         day,
		Heading:     catalog.FormatLongDate(day),
		State:       StateLoading,
		Placeholder: catalog.Messages.Loading,
	}
}

func FailedView(day models.Day, catalog *i18n.Catalog) DayView {
	return DayView{
		Day:         day,
		Heading:     catalog.FormatLongDate(day),
		State:       StateFailed,
		Placeholder: catalog.Messages.LoadFailed,
	}
}

// formatHours prints the shortest decimal form: 1, 1.5, 2.25.
func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
