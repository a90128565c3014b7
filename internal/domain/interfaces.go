package domain

import (
	"context"

	"hallconsole/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BookingAPI is the remote booking service as the console sees it.
type BookingAPI interface {
	ListBookings(ctx context.Context, day models.Day) (*models.DayBookings, error)
	CreateBooking(ctx context.Context, draft models.BookingDraft) (string, error)
	DeleteBooking(ctx context.Context, id models.BookingID) (string, error)
}

// StateRepository keeps each chat's console state between updates and
// restarts. GetState returns nil, nil when nothing is stored.
type StateRepository interface {
	GetState(ctx context.Context, chatID int64) (*models.ChatState, error)
	SetState(ctx context.Context, state *models.ChatState) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}
