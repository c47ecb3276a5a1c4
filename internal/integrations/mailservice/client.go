package mailservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент транзакционного почтового релея
// Через него доставляются письма-приглашения с ICS вложением
type Client struct {
	baseURL    string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента почтового релея
func NewClient(baseURL, fromEmail, fromName string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		fromEmail: fromEmail,
		fromName:  fromName,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Send отправляет письмо через релей
// Поля From заполняются из конфигурации клиента
func (c *Client) Send(ctx context.Context, msg *Message) error {
	msg.FromEmail = c.fromEmail
	msg.FromName = c.fromName

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	url := c.baseURL + "/internal/mail/send"

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
	case http.StatusOK, http.StatusAccepted:
		c.log.Info("Mail relay accepted message to=%s subject=%q", msg.ToEmail, msg.Subject)
		return nil
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(body))
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}
}
