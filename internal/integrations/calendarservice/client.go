package calendarservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент календарного провайдера компании
// Провайдер отвечает за реальную занятость организатора и хранит
// созданные события; этот сервис обращается к нему по внутреннему HTTP API
type Client struct {
	baseURL    string
	calendarID string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента календарного провайдера
func NewClient(baseURL, calendarID string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		calendarID: calendarID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBusyIntervals получает занятые интервалы календаря на указанную дату
func (c *Client) GetBusyIntervals(ctx context.Context, date time.Time) ([]BusyInterval, error) {
	url := fmt.Sprintf("%s/internal/calendars/%s/busy?date=%s",
		c.baseURL, c.calendarID, date.Format(domain.DateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrCalendarNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var busy busyResponse
	if err := json.NewDecoder(resp.Body).Decode(&busy); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return busy.Intervals, nil
}

// GetBusyIntervalsWithGracefulDegradation получает занятые интервалы с graceful degradation
// При недоступности провайдера возвращает ErrServiceDegraded, что позволяет
// проверять доступность слота только по локальным бронированиям
func (c *Client) GetBusyIntervalsWithGracefulDegradation(ctx context.Context, date time.Time) ([]BusyInterval, error) {
	intervals, err := c.GetBusyIntervals(ctx, date)
	if err != nil {
		// Отсутствие календаря - критичная ошибка конфигурации, пробрасываем
		if errors.Is(err, ErrCalendarNotFound) {
			c.log.Error("Calendar %s not found at provider", c.calendarID)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("CalendarService unavailable, applying graceful degradation for date=%s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: date=%s, error=%v", ErrServiceDegraded, date.Format(domain.DateFormat), err)
	}

	return intervals, nil
}

// CreateEvent создает событие в календаре организатора
func (c *Client) CreateEvent(ctx context.Context, event *EventPayload) error {
	url := fmt.Sprintf("%s/internal/calendars/%s/events", c.baseURL, c.calendarID)

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusNotFound:
		return ErrCalendarNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}

// DeleteEvent удаляет событие из календаря организатора (по UID)
// Используется при переносе и отмене консультации
func (c *Client) DeleteEvent(ctx context.Context, uid string) error {
	url := fmt.Sprintf("%s/internal/calendars/%s/events/%s", c.baseURL, c.calendarID, uid)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return ErrEventNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}
