package models

import "time"

// ChatState is what a chat front-end needs to resume a conversation: the
// viewed day, where the booking wizard stands, and the draft typed so far.
// Bookings themselves are never part of it.
type ChatState struct {
	ChatID     int64        `json:"chat_id"`
	ViewedDate string       `json:"viewed_date,omitempty"`
	Step       string       `json:"step,omitempty"`
	Draft      BookingDraft `json:"draft"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// Day parses ViewedDate. ok is false when it is empty or malformed.
func (s *ChatState) Day() (Day, bool) {
	if s == nil || s.ViewedDate == "" {
		return Day{}, false
	}
	d, err := ParseDay(s.ViewedDate)
	if err != nil {
		return Day{}, false
	}
	return d, true
}
