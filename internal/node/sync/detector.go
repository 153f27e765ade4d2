package sync

import (
	"encoding/json"
	"time"
)

// Classification результат сравнения локальной и удаленной версии
// одной логической сущности
type Classification string

// Возможные исходы классификации
const (
	// ClassNoConflict стороны уже сошлись (одинаковый checksum
	// или ни одна сторона не менялась)
	ClassNoConflict Classification = "no_conflict"
	// ClassLocalWinsClean локальная сторона изменилась, удаленная нет:
	// локальное изменение распространяется без конфликта
	ClassLocalWinsClean Classification = "local_wins_clean"
	// ClassRemoteWinsClean удаленная сторона изменилась, локальная нет
	ClassRemoteWinsClean Classification = "remote_wins_clean"
	// ClassConflict обе стороны изменились после последней общей
	// синхронизированной версии
	ClassConflict Classification = "conflict"
)

// Side описывает одну сторону сравнения для пары (model_name, record_id)
type Side struct {
	ModifiedAt time.Time
	Checksum   string
	Data       json.RawMessage
	// Version текущая версия этой стороны
	Version int64
	// BaseVersion версия противоположной стороны, которую эта сторона
	// видела при последней синхронизации. Именно по base-версиям
	// определяется дивергенция.
	BaseVersion int64
}

// Classify классифицирует отношение локальной и удаленной версии сущности.
// Чистая функция без I/O.
//
// Дивергенцию определяют version vectors, а не wall-clock время:
// сторона считается изменившейся, если её версия продвинулась дальше того,
// что противоположная сторона видела при последней синхронизации.
// Timestamps участвуют только в стратегиях newer_wins/older_wins.
func Classify(local, remote Side) Classification {
	// Уже сошлись: одинаковое содержимое независимо от версий
	if local.Checksum == remote.Checksum {
		return ClassNoConflict
	}

	localChanged := local.Version > remote.BaseVersion
	remoteChanged := remote.Version > local.BaseVersion

	switch {
	case localChanged && remoteChanged:
		return ClassConflict
	case localChanged:
		return ClassLocalWinsClean
	case remoteChanged:
		return ClassRemoteWinsClean
	default:
		// Версии не продвинулись, но содержимое различается.
		// Такого быть не должно (повреждение или рассинхронизация
		// счетчиков) — никогда не выбираем победителя молча.
		return ClassConflict
	}
}
