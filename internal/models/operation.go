package models

import (
	"encoding/json"
	"time"
)

// OperationType тип отложенной операции
type OperationType string

// Поддерживаемые типы отложенных операций
const (
	OperationTypeSyncPush OperationType = "sync_push" // отправка пакета на hub
	OperationTypeSyncPull OperationType = "sync_pull" // запрос изменений hub
	OperationTypePeerSync OperationType = "peer_sync" // обмен с другим узлом
	OperationTypeWebhook  OperationType = "webhook"   // исходящий HTTP-вызов
)

// OfflineOperation представляет durable-единицу отложенной работы:
// операцию, которую не удалось выполнить синхронно (hub недоступен).
// Payload обязан содержать checksum исходной записи, чтобы принимающая
// сторона могла безопасно отбрасывать дубликаты при повторной доставке.
type OfflineOperation struct {
	CreatedAt    time.Time         `json:"created_at"`
	ScheduledFor time.Time         `json:"scheduled_for"` // всегда >= CreatedAt; сдвигается backoff-политикой
	LastAttempt  *time.Time        `json:"last_attempt,omitempty"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
	ExpiresAt    *time.Time        `json:"expires_at,omitempty"` // после истечения операция отменяется, не доставляется
	Headers      map[string]string `json:"headers,omitempty"`
	ID           string            `json:"id"` // UUID операции
	NodeID       string            `json:"node_id"`
	Module       string            `json:"module"` // логический владелец операции
	TargetURL    string            `json:"target_url,omitempty"`
	Method       string            `json:"method,omitempty"`
	LastError    string            `json:"last_error,omitempty"`
	OperationType OperationType    `json:"operation_type"`
	Status       Status            `json:"status"`
	Payload      json.RawMessage   `json:"payload"`
	// Priority определяет порядок выборки: меньше = срочнее
	Priority          int `json:"priority"`
	RetryCount        int `json:"retry_count"` // инвариант: RetryCount <= MaxRetries
	MaxRetries        int `json:"max_retries"`
	RetryDelaySeconds int `json:"retry_delay_seconds"` // базовая задержка экспоненциального backoff
}

// IsExpired возвращает true, если срок актуальности операции истек
func (o *OfflineOperation) IsExpired(now time.Time) bool {
	return o.ExpiresAt != nil && o.ExpiresAt.Before(now)
}

// Clone создает глубокую копию операции
func (o *OfflineOperation) Clone() *OfflineOperation {
	clone := *o
	clone.Payload = append(json.RawMessage(nil), o.Payload...)
	if o.Headers != nil {
		clone.Headers = make(map[string]string, len(o.Headers))
		for k, v := range o.Headers {
			clone.Headers[k] = v
		}
	}
	for _, pair := range []struct {
		src *time.Time
		dst **time.Time
	}{
		{o.LastAttempt, &clone.LastAttempt},
		{o.CompletedAt, &clone.CompletedAt},
		{o.ExpiresAt, &clone.ExpiresAt},
	} {
		if pair.src != nil {
			t := *pair.src
			*pair.dst = &t
		}
	}
	return &clone
}
