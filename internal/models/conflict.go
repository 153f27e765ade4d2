package models

import (
	"encoding/json"
	"time"
)

// Strategy стратегия разрешения конфликта
type Strategy string

// Поддерживаемые стратегии разрешения
const (
	StrategyNewerWins Strategy = "newer_wins" // побеждает более позднее wall-clock время
	StrategyOlderWins Strategy = "older_wins" // побеждает более раннее wall-clock время
	StrategyHubWins   Strategy = "hub_wins"   // фиксированный приоритет hub
	StrategyNodeWins  Strategy = "node_wins"  // фиксированный приоритет узла
	StrategyManual    Strategy = "manual"     // ожидает внешнего решения
	StrategyMerge     Strategy = "merge"      // пофилдовый merge через зарегистрированную функцию
	StrategyKeepBoth  Strategy = "keep_both"  // обе версии сохраняются под разными record_id
)

// IsValid проверяет, что стратегия входит в множество поддерживаемых
func (s Strategy) IsValid() bool {
	switch s {
	case StrategyNewerWins, StrategyOlderWins, StrategyHubWins,
		StrategyNodeWins, StrategyManual, StrategyMerge, StrategyKeepBoth:
		return true
	}
	return false
}

// SyncConflict представляет обнаруженную дивергенцию локального и удаленного
// состояния одной логической сущности. После resolved=true запись append-only
// и служит audit trail.
type SyncConflict struct {
	DetectedAt       time.Time       `json:"detected_at"`
	LocalModifiedAt  time.Time       `json:"local_modified_at"`
	RemoteModifiedAt time.Time       `json:"remote_modified_at"`
	ResolvedAt       *time.Time      `json:"resolved_at,omitempty"`
	ID               string          `json:"id"`                   // UUID конфликта
	SessionID        string          `json:"session_id,omitempty"` // может быть пустым: конфликт вне сессии
	ModelName        string          `json:"model_name"`
	RecordID         string          `json:"record_id"`
	LocalNodeID      string          `json:"local_node_id"`
	RemoteSource     string          `json:"remote_source"`
	ResolvedBy       string          `json:"resolved_by,omitempty"`
	Strategy         Strategy        `json:"strategy"`
	LocalData        json.RawMessage `json:"local_data"`
	RemoteData       json.RawMessage `json:"remote_data"`
	ResolutionData   json.RawMessage `json:"resolution_data,omitempty"`
	LocalVersion     int64           `json:"local_version"`
	RemoteVersion    int64           `json:"remote_version"`
	Resolved         bool            `json:"resolved"`
}

// Clone создает глубокую копию конфликта
func (c *SyncConflict) Clone() *SyncConflict {
	clone := *c
	clone.LocalData = append(json.RawMessage(nil), c.LocalData...)
	clone.RemoteData = append(json.RawMessage(nil), c.RemoteData...)
	clone.ResolutionData = append(json.RawMessage(nil), c.ResolutionData...)
	if c.ResolvedAt != nil {
		t := *c.ResolvedAt
		clone.ResolvedAt = &t
	}
	return &clone
}
