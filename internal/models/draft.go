package models

import (
	"strings"
	"time"
)

// BookingDraft is the not-yet-submitted form state.
type BookingDraft struct {
	Title   string    `json:"title"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// DefaultDraft opens an empty form with a window of length starting at now,
// truncated to the minute.
func DefaultDraft(now time.Time, length time.Duration) BookingDraft {
	var d BookingDraft
	d.ResetTimes(now, length)
	return d
}

// ResetTimes re-anchors the window to now and keeps the text fields.
func (d *BookingDraft) ResetTimes(now time.Time, length time.Duration) {
	if length <= 0 {
		length = DefaultDraftMinutes * time.Minute
	}
	start := now.Truncate(time.Minute)
	d.StartAt = start
	d.EndAt = start.Add(length)
}

// Missing lists the required fields that are empty, in form order.
func (d BookingDraft) Missing() []string {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "name")
	}
	if d.StartAt.IsZero() {
		missing = append(missing, "start_at")
	}
	if d.EndAt.IsZero() {
		missing = append(missing, "end_at")
	}
	return missing
}

// CreateBookingRequest is the JSON body of POST /book.
type CreateBookingRequest struct {
	Title   string `json:"title"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}

// Request serializes the draft the way the booking form submits it.
// Times are wall-clock values; the API interprets them in its own zone.
func (d BookingDraft) Request() CreateBookingRequest {
	return CreateBookingRequest{
		Title:   strings.TrimSpace(d.Title),
		Name:    strings.TrimSpace(d.Name),
		Email:   strings.TrimSpace(d.Email),
		StartAt: d.StartAt.Format(FormTimestampLayout),
		EndAt:   d.EndAt.Format(FormTimestampLayout),
	}
}
