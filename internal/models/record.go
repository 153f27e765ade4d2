package models

import (
	"encoding/json"
	"time"
)

// Operation тип операции, породившей запись синхронизации
type Operation string

// Поддерживаемые операции
const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// IsValid проверяет, что операция входит в множество поддерживаемых
func (o Operation) IsValid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// Status статус записи синхронизации, сессии или отложенной операции.
// Единый enum для всех трех сущностей.
type Status string

// Статусы жизненного цикла
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusConflict   Status = "conflict"
)

// IsTerminal возвращает true, если из статуса нет дальнейших переходов
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// SyncRecord представляет одно зафиксированное локальное изменение,
// предназначенное для передачи на hub. Запись неизменяема после перехода
// в терминальный статус; checksum защищает целостность payload.
type SyncRecord struct {
	LocalModifiedAt  time.Time       `json:"local_modified_at"`
	RemoteModifiedAt *time.Time      `json:"remote_modified_at,omitempty"` // время изменения на удаленной стороне
	SyncedAt         *time.Time      `json:"synced_at,omitempty"`          // время успешной синхронизации
	ID               string          `json:"id"`                           // UUID записи
	SessionID        string          `json:"session_id,omitempty"`         // сессия, в рамках которой запись передавалась
	NodeID           string          `json:"node_id"`                      // узел, создавший изменение
	ModelName        string          `json:"model_name"`                   // логический тип сущности
	RecordID         string          `json:"record_id"`                    // идентификатор сущности (opaque)
	Checksum         string          `json:"checksum"`                     // SHA-256 канонизированного payload
	ErrorMessage     string          `json:"error_message,omitempty"`
	Operation        Operation       `json:"operation"`
	Status           Status          `json:"status"`
	Data             json.RawMessage `json:"data"`           // payload сущности (tombstone для delete)
	LocalVersion     int64           `json:"local_version"`  // версия из VersionVector на момент записи
	RemoteVersion    int64           `json:"remote_version"` // версия удаленной стороны, известная на момент записи
}

// Clone создает глубокую копию записи
func (r *SyncRecord) Clone() *SyncRecord {
	clone := *r
	clone.Data = append(json.RawMessage(nil), r.Data...)
	if r.RemoteModifiedAt != nil {
		t := *r.RemoteModifiedAt
		clone.RemoteModifiedAt = &t
	}
	if r.SyncedAt != nil {
		t := *r.SyncedAt
		clone.SyncedAt = &t
	}
	return &clone
}
