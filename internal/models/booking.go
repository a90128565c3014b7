package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BookingID is opaque: some backends hand out integers, others document keys.
type BookingID string

func (id *BookingID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = BookingID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("booking id: %w", err)
	}
	*id = BookingID(n.String())
	return nil
}

func (id BookingID) String() string {
	return string(id)
}

// Timestamp is a naive wall-clock time as rendered by the booking API.
type Timestamp struct {
	time.Time
}

// ParseTimestamp accepts "YYYY-MM-DD HH:MM" and the datetime-local "YYYY-MM-DDTHH:MM".
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimestampLayout, FormTimestampLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(bytes.TrimSpace(data)))
	if err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimestampLayout))
}

// Clock renders HH:MM.
func (t Timestamp) Clock() string {
	return t.Format(ClockLayout)
}

// Booking is the read-only projection the API returns for a day.
type Booking struct {
	ID      BookingID `json:"id"`
	Title   string    `json:"title"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	StartAt Timestamp `json:"start_at"`
	EndAt   Timestamp `json:"end_at"`
}

// TimeRange renders "HH:MM - HH:MM".
func (b Booking) TimeRange() string {
	return b.StartAt.Clock() + " - " + b.EndAt.Clock()
}

// DayBookings is the payload of GET /bookings.
type DayBookings struct {
	Bookings    []Booking `json:"bookings"`
	TodaysCount int       `json:"todays_count"`
	HoursBooked float64   `json:"hours_booked"`
}

// DailySummary is derived per fetch and never cached across days.
type DailySummary struct {
	Count       int
	HoursBooked float64
}

func (d *DayBookings) Summary() DailySummary {
	if d == nil {
		return DailySummary{}
	}
	return DailySummary{Count: d.TodaysCount, HoursBooked: d.HoursBooked}
}

// MessageResponse is the body of POST /book and DELETE /delete/{id}.
// Some API versions report failures under "error" instead of "message".
type MessageResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (r MessageResponse) Text() string {
	if r.Message != "" {
		return r.Message
	}
	return r.Error
}
