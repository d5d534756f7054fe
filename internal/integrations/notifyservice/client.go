package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrUnavailable возвращается, когда NotifyService недоступен или ответил ошибкой
	ErrUnavailable = errors.New("notifyservice: service unavailable")
)

// Event тип уведомления о событии бронирования
type Event string

const (
	EventReservationCreated     Event = "reservation.created"
	EventReservationCancelled   Event = "reservation.cancelled"
	EventReservationRescheduled Event = "reservation.rescheduled"
)

// Notification уведомление о событии бронирования
type Notification struct {
	Event         Event  `json:"event"`
	ReservationID int64  `json:"reservationId"`
	ClientID      int64  `json:"clientId"`
	TrainerID     int64  `json:"trainerId"`
	Date          string `json:"date"`      // "2026-09-15"
	StartTime     string `json:"startTime"` // "10:00"
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Client HTTP клиент для NotifyService.
// Уведомления отправляются best-effort: недоступность NotifyService не
// влияет на результат операции бронирования, ошибки только логируются.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, timeout time.Duration, logger Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Notify отправляет уведомление о событии бронирования
func (c *Client) Notify(ctx context.Context, n *Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("notifyservice: failed to marshal notification: %w", err)
	}

	url := c.baseURL + "/api/v1/notifications"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notifyservice: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("notifyservice: request failed for reservation id=%d: %v", n.ReservationID, err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.Warn("notifyservice: got status %d for reservation id=%d", resp.StatusCode, n.ReservationID)
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("notifyservice: unexpected status %d", resp.StatusCode)
	}

	return nil
}
