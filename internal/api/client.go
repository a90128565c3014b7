package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hallconsole/internal/config"
	"hallconsole/internal/metrics"
	"hallconsole/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const maxResponseBody = 1 << 20

const (
	endpointList   = "list"
	endpointCreate = "create"
	endpointDelete = "delete"
)

// Client calls the remote booking API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zerolog.Logger
}

// NewClient constructs a client for cfg.BaseURL.
func NewClient(cfg config.APIConfig, logger *zerolog.Logger) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = models.DefaultAPITimeout * time.Second
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    newLimiter(cfg.RateLimit),
		logger:     logger,
	}
}

// ListBookings fetches the bookings and summary for day. Every call goes to
// the server; nothing about a day outlives the fetch that loaded it.
func (c *Client) ListBookings(ctx context.Context, day models.Day) (*models.DayBookings, error) {
	endpoint := fmt.Sprintf("%s/bookings?date=%s", c.baseURL, url.QueryEscape(day.String()))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp models.DayBookings
	if err := c.do(req, endpointList, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateBooking submits draft and returns the API's confirmation message.
func (c *Client) CreateBooking(ctx context.Context, draft models.BookingDraft) (string, error) {
	data, err := json.Marshal(draft.Request())
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/book", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp models.MessageResponse
	if err := c.do(req, endpointCreate, &resp); err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// DeleteBooking removes the booking with id and returns the API's message.
func (c *Client) DeleteBooking(ctx context.Context, id models.BookingID) (string, error) {
	endpoint := c.baseURL + "/delete/" + url.PathEscape(id.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return "", err
	}

	var resp models.MessageResponse
	if err := c.do(req, endpointDelete, &resp); err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *Client) do(req *http.Request, endpoint string, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveAPI(endpoint, outcome(err), time.Since(start))
		event := c.logger.Debug()
		if err != nil {
			event = c.logger.Warn().Err(err)
		}
		event.Str("endpoint", endpoint).
			Str("method", req.Method).
			Str("url", req.URL.String()).
			Dur("elapsed", time.Since(start)).
			Msg("booking api call")
	}()

	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg models.MessageResponse
		_ = json.Unmarshal(body, &msg)
		return &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(msg.Text())}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return nil
}
