package models

import (
	"encoding/json"
	"time"
)

// HubRecord представляет текущее состояние одной логической сущности
// на hub. Hub хранит последнюю принятую версию каждой пары
// (model_name, record_id); история изменений остается на узлах.
type HubRecord struct {
	ModifiedAt time.Time       `json:"modified_at"` // время изменения на узле-источнике
	AppliedAt  time.Time       `json:"applied_at"`  // время применения на hub
	ModelName  string          `json:"model_name"`
	RecordID   string          `json:"record_id"`
	SourceNode string          `json:"source_node"`
	Checksum   string          `json:"checksum"`
	Operation  Operation       `json:"operation"`
	Data       json.RawMessage `json:"data"`
	// HubVersion версия модели на hub в момент применения записи.
	// Pull отдает записи с HubVersion > since.
	HubVersion int64 `json:"hub_version"`
	// SourceVersion версия узла-источника в момент изменения
	SourceVersion int64 `json:"source_version"`
}

// HubConflict фиксирует отклоненный push: узел прислал изменение
// поверх устаревшей базы. Audit trail со стороны hub; само разрешение
// происходит на узле.
type HubConflict struct {
	DetectedAt  time.Time       `json:"detected_at"`
	ID          string          `json:"id"`
	NodeID      string          `json:"node_id"`
	ModelName   string          `json:"model_name"`
	RecordID    string          `json:"record_id"`
	NodeData    json.RawMessage `json:"node_data"`
	HubData     json.RawMessage `json:"hub_data"`
	NodeVersion int64           `json:"node_version"`
	HubVersion  int64           `json:"hub_version"`
}
