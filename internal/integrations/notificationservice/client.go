package notificationservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Client клиент для работы с NotificationService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	failures   FailureRecorder
	timeout    time.Duration

	// pending фоновые отправки Notify
	pending sync.WaitGroup
}

// NewClient создает новый экземпляр клиента NotificationService
// failures может быть nil
func NewClient(baseURL string, timeout time.Duration, log Logger, failures FailureRecorder) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:      log,
		failures: failures,
		timeout:  timeout,
	}
}

// Send отправляет уведомление и возвращает ошибку доставки
func (c *Client) Send(ctx context.Context, n Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal notification: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/internal/notifications", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}

// Notify отправка без гарантий доставки в фоне: ошибка логируется и считается, но не возвращается
// Отмена ctx запроса не прерывает отправку, её ограничивает только таймаут клиента
// Вызывать только после коммита транзакции
func (c *Client) Notify(ctx context.Context, userID int64, category string, vars map[string]string) {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		defer cancel()

		err := c.Send(sendCtx, Notification{UserID: userID, Category: category, Variables: vars})
		if err != nil {
			c.log.Error("NotificationService: failed to send %s to user=%d: %v", category, userID, err)
			if c.failures != nil {
				c.failures.IncNotificationFailure(category)
			}
			return
		}

		c.log.Info("NotificationService: sent %s to user=%d", category, userID)
	}()
}

// Wait ждёт завершения фоновых отправок или отмены ctx
func (c *Client) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
