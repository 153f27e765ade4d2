package models

import "time"

// VersionVector представляет монотонный счетчик изменений для пары
// (node_id, model_name). Это часы подсистемы синхронизации: все решения
// о дивергенции принимаются по версиям, а не по wall-clock времени.
type VersionVector struct {
	LastModified time.Time `json:"last_modified"`
	LastSynced   time.Time `json:"last_synced"`
	NodeID       string    `json:"node_id"`
	ModelName    string    `json:"model_name"`
	// Version монотонно возрастает ровно на единицу на каждое
	// зафиксированное локальное изменение модели на узле
	Version int64 `json:"version"`
	// LastSyncedVersion последняя версия, подтвержденная hub.
	// Инвариант: LastSyncedVersion <= Version.
	LastSyncedVersion int64 `json:"last_synced_version"`
	TotalRecords      int64 `json:"total_records"`
	PendingChanges    int64 `json:"pending_changes"`
}

// PendingCount возвращает количество локальных изменений,
// еще не подтвержденных hub. Используется для решения о необходимости sync.
func (v *VersionVector) PendingCount() int64 {
	return v.Version - v.LastSyncedVersion
}

// Clone создает копию вектора
func (v *VersionVector) Clone() *VersionVector {
	clone := *v
	return &clone
}
