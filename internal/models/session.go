package models

import "time"

// Direction направление сессии синхронизации
type Direction string

// Поддерживаемые направления
const (
	DirectionPush          Direction = "push"          // только отправка локальных изменений
	DirectionPull          Direction = "pull"          // только применение изменений hub
	DirectionBidirectional Direction = "bidirectional" // обе стороны с попарной классификацией
)

// IsValid проверяет, что направление входит в множество поддерживаемых
func (d Direction) IsValid() bool {
	switch d {
	case DirectionPush, DirectionPull, DirectionBidirectional:
		return true
	}
	return false
}

// SyncSession представляет один обмен данными между узлом и hub.
// Машина состояний: pending -> in_progress -> {completed, failed,
// cancelled, conflict}. Статус conflict означает, что транспортно сессия
// завершена, но осталось >= 1 неразрешенного конфликта.
type SyncSession struct {
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	ID               string     `json:"id"` // UUID сессии
	NodeID           string     `json:"node_id"`
	LastError        string     `json:"last_error,omitempty"`
	Modules          []string   `json:"modules,omitempty"` // модели в scope сессии; пусто = все
	Direction        Direction  `json:"direction"`
	Status           Status     `json:"status"`
	ProcessedRecords int        `json:"processed_records"`
	AppliedRecords   int        `json:"applied_records"`
	ConflictsCount   int        `json:"conflicts_count"`
	FailedRecords    int        `json:"failed_records"`
	RetryCount       int        `json:"retry_count"`
}

// InScope возвращает true, если модель входит в scope сессии.
// Пустой список Modules означает "все модели".
func (s *SyncSession) InScope(modelName string) bool {
	if len(s.Modules) == 0 {
		return true
	}
	for _, m := range s.Modules {
		if m == modelName {
			return true
		}
	}
	return false
}

// Clone создает копию сессии
func (s *SyncSession) Clone() *SyncSession {
	clone := *s
	clone.Modules = append([]string(nil), s.Modules...)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		clone.CompletedAt = &t
	}
	return &clone
}
