package api

import (
	"encoding/json"
	"time"
)

// RemoteRecord представляет одну запись изменений в wire-формате.
// Используется в обоих направлениях: node -> hub (push) и hub -> node (pull).
type RemoteRecord struct {
	ModifiedAt    time.Time       `json:"modified_at"`
	ModelName     string          `json:"model_name"`
	RecordID      string          `json:"record_id"`
	Operation     string          `json:"operation"`
	Checksum      string          `json:"checksum"`
	SourceNode    string          `json:"source_node"`
	Data          json.RawMessage `json:"data"`
	SourceVersion int64           `json:"source_version"`
	// BaseVersion версия принимающей стороны, которую источник видел
	// в момент создания изменения. Детектор конфликтов сравнивает её
	// с текущей версией получателя, чтобы определить дивергенцию.
	BaseVersion int64 `json:"base_version"`
}

// PushRequest представляет пакет локальных изменений, отправляемых на hub
type PushRequest struct {
	NodeID  string         `json:"node_id"`
	Records []RemoteRecord `json:"records"`
}

// PushResponse представляет ответ hub на push-пакет
type PushResponse struct {
	// HubVersions текущие версии hub по каждой модели после применения пакета
	HubVersions map[string]int64 `json:"hub_versions"`
	// ConflictRecords текущее состояние hub для записей, которые hub
	// отказался применить из-за дивергенции. Узел создает по ним
	// SyncConflict и запускает разрешение.
	ConflictRecords []RemoteRecord `json:"conflict_records,omitempty"`
	Accepted        int            `json:"accepted"`   // применено записей
	Conflicts       int            `json:"conflicts"`  // отклонено как конфликты
	Duplicates      int            `json:"duplicates"` // отброшено по checksum (идемпотентность)
}

// PullResponse представляет пакет изменений hub для узла
type PullResponse struct {
	HubVersions map[string]int64 `json:"hub_versions"`
	Records     []RemoteRecord   `json:"records"`
}

// SessionProgress отражает прогресс сессии синхронизации.
// Возвращается транспортному слою после обработки каждого пакета.
type SessionProgress struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Processed int    `json:"processed"` // всего обработано записей
	Applied   int    `json:"applied"`   // применено без конфликтов
	Conflicts int    `json:"conflicts"` // зафиксировано конфликтов
	Failed    int    `json:"failed"`    // записей с ошибками целостности
}
