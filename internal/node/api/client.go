// Package api реализует HTTP клиент узла для взаимодействия с hub
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/iudanet/syncpoint/pkg/api"
)

const (
	requestTimeout = 30 * time.Second

	// Транспортные сбои ретраятся на месте с экспоненциальной задержкой;
	// после исчерпания попыток пакет уходит в offline-очередь
	retryAttempts    = 3
	retryBaseBackoff = 500 * time.Millisecond
)

// Client представляет HTTP клиент для взаимодействия с hub
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Push отправляет пакет локальных изменений на hub
func (c *Client) Push(ctx context.Context, req api.PushRequest) (*api.PushResponse, error) {
	var resp api.PushResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/sync/push", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("push request failed: %w", err)
	}
	return &resp, nil
}

// Pull запрашивает у hub изменения модели начиная с версии sinceVersion
func (c *Client) Pull(ctx context.Context, nodeID, modelName string, sinceVersion int64) (*api.PullResponse, error) {
	var resp api.PullResponse
	query := url.Values{
		"node_id": []string{nodeID},
		"model":   []string{modelName},
		"since":   []string{strconv.FormatInt(sinceVersion, 10)},
	}
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/sync/pull?"+query.Encode(), nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность hub
func (c *Client) Health(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, nil)
}

// doRequest выполняет HTTP запрос с ретраями транспортных сбоев.
// Недоступность hub возвращается как api.ErrHubUnavailable, чтобы
// вызывающий мог отличить её от ошибок уровня данных.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyData []byte
	if body != nil {
		var err error
		bodyData, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	backoff := retry.WithMaxRetries(retryAttempts, retry.NewExponential(retryBaseBackoff))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return c.attempt(ctx, method, path, bodyData, result)
	})
	if err != nil {
		return err
	}

	return nil
}

// attempt выполняет одну попытку запроса
func (c *Client) attempt(ctx context.Context, method, path string, bodyData []byte, result interface{}) error {
	var bodyReader io.Reader
	if bodyData != nil {
		bodyReader = bytes.NewReader(bodyData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if bodyData != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевой сбой: ретраим, после исчерпания попыток — ErrHubUnavailable
		return retry.RetryableError(fmt.Errorf("%w: %s", api.ErrHubUnavailable, err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		// 5xx считаем временной недоступностью hub
		return retry.RetryableError(fmt.Errorf("%w: status %d", api.ErrHubUnavailable, resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("hub error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
