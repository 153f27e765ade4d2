package api

import "errors"

// ErrHubUnavailable транспортная ошибка: hub недоступен.
// Сессия с такой ошибкой безопасна для повторного запуска целиком,
// а невыполненные операции уходят в offline-очередь.
var ErrHubUnavailable = errors.New("hub is unavailable")

// ErrorResponse стандартный формат ошибки hub API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
