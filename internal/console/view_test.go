package console

import (
	"encoding/json"
	"testing"
	"time"

	"hallconsole/internal/i18n"
	"hallconsole/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func englishCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	catalog, ok := i18n.Builtin("en")
	require.True(t, ok)
	return catalog
}

func TestBuildDayView(t *testing.T) {
	catalog := englishCatalog(t)
	day := models.Day{Year: 2024, Month: time.March, Day: 1}

	var payload models.DayBookings
	require.NoError(t, json.Unmarshal([]byte(`{
		"bookings": [{"id":1,"title":"Team Sync","name":"Alice","start_at":"2024-03-01 09:00","end_at":"2024-03-01 10:00"}],
		"todays_count": 1,
		"hours_booked": 1
	}`), &payload))

	view := BuildDayView(day, &payload, catalog)
	assert.Equal(t, StateLoaded, view.State)
	assert.True(t, view.HasTable())
	assert.Equal(t, "Friday, 01 March 2024", view.Heading)
	assert.Equal(t, "1", view.Count)
	assert.Equal(t, "1", view.Hours)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, Row{ID: "1", Title: "Team Sync", Name: "Alice", TimeRange: "09:00 - 10:00"}, view.Rows[0])
	assert.Empty(t, view.Placeholder)
}

func TestBuildDayViewKeepsServerOrder(t *testing.T) {
	catalog := englishCatalog(t)
	day := models.Day{Year: 2024, Month: time.March, Day: 1}
	late, _ := models.ParseTimestamp("2024-03-01 15:00")
	early, _ := models.ParseTimestamp("2024-03-01 08:00")

	view := BuildDayView(day, &models.DayBookings{
		Bookings: []models.Booking{
			{ID: "b", Title: "Late", StartAt: late, EndAt: late},
			{ID: "a", Title: "Early", StartAt: early, EndAt: early},
		},
		TodaysCount: 2,
	}, catalog)

	require.Len(t, view.Rows, 2)
	assert.Equal(t, "Late", view.Rows[0].Title)
	assert.Equal(t, "Early", view.Rows[1].Title)
}

func TestBuildDayViewEmpty(t *testing.T) {
	catalog := englishCatalog(t)
	day := models.Day{Year: 2024, Month: time.March, Day: 1}

	for name, payload := range map[string]*models.DayBookings{
		"empty list": {Bookings: []models.Booking{}},
		"no list":    {},
		"nil":        nil,
	} {
		t.Run(name, func(t *testing.T) {
			view := BuildDayView(day, payload, catalog)
			assert.Equal(t, StateEmpty, view.State)
			assert.False(t, view.HasTable())
			assert.Nil(t, view.Rows)
			assert.Equal(t, catalog.Messages.Empty, view.Placeholder)
			assert.Equal(t, "0", view.Count)
			assert.Equal(t, "0", view.Hours)
		})
	}
}

func TestPlaceholderViews(t *testing.T) {
	catalog := englishCatalog(t)
	day := models.Day{Year: 2024, Month: time.March, Day: 1}

	loading := LoadingView(day, catalog)
	assert.Equal(t, StateLoading, loading.State)
	assert.Equal(t, catalog.Messages.Loading, loading.Placeholder)
	assert.False(t, loading.HasTable())

	failed := FailedView(day, catalog)
	assert.Equal(t, StateFailed, failed.State)
	assert.Equal(t, catalog.Messages.LoadFailed, failed.Placeholder)
	assert.Equal(t, "Friday, 01 March 2024", failed.Heading)
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{1.5, "1.5"},
		{2.25, "2.25"},
		{10, "10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatHours(tt.in))
	}
}
