package sync

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iudanet/syncpoint/internal/models"
)

// MergeFunc пофилдовый merge для конкретной модели.
// Возвращает объединенный payload либо ошибку, если merge невозможен.
type MergeFunc func(local, remote json.RawMessage) (json.RawMessage, error)

// Resolution результат применения стратегии к конфликту
type Resolution struct {
	// Strategy фактически примененная стратегия (может отличаться от
	// запрошенной: merge без зарегистрированной функции откатывается в manual)
	Strategy models.Strategy `json:"strategy"`
	// Winner сторона-победитель: "local", "remote", "both" или ""
	Winner string `json:"winner"`
	// Data данные победителя; nil для manual и keep_both
	Data json.RawMessage `json:"data,omitempty"`
	// DerivedRecordID новый record_id для проигравшей версии (keep_both)
	DerivedRecordID string `json:"derived_record_id,omitempty"`
	// DerivedData данные, сохраняемые под derived id (keep_both)
	DerivedData json.RawMessage `json:"derived_data,omitempty"`
	// Resolved false, если конфликт остается ждать внешнего решения
	Resolved bool `json:"resolved"`
}

// Resolver применяет стратегии разрешения конфликтов.
// Чистое вычисление над объектом конфликта: каждое разрешение
// воспроизводимо из самого конфликта, без скрытого состояния.
type Resolver struct {
	mergeFuncs map[string]MergeFunc
	defaults   map[string]models.Strategy
}

// NewResolver создает resolver без зарегистрированных merge-функций
func NewResolver() *Resolver {
	return &Resolver{
		mergeFuncs: make(map[string]MergeFunc),
		defaults:   make(map[string]models.Strategy),
	}
}

// RegisterMerge регистрирует merge-функцию для модели
func (r *Resolver) RegisterMerge(modelName string, fn MergeFunc) {
	r.mergeFuncs[modelName] = fn
}

// SetDefaultStrategy задает стратегию по умолчанию для модели
func (r *Resolver) SetDefaultStrategy(modelName string, strategy models.Strategy) {
	r.defaults[modelName] = strategy
}

// DefaultStrategy возвращает стратегию по умолчанию для модели.
// Пока конфигурация явно не задана — manual: данные не отбрасываются молча.
func (r *Resolver) DefaultStrategy(modelName string) models.Strategy {
	if s, ok := r.defaults[modelName]; ok {
		return s
	}
	return models.StrategyManual
}

// DeriveRecordID формирует record_id для проигравшей версии при keep_both.
// Детерминирован: исходный id плюс идентификатор узла-источника.
// Уникальность гарантируется в пределах model_name.
func DeriveRecordID(recordID, source string) string {
	return recordID + "~" + source
}

// Resolve применяет стратегию конфликта и возвращает исход.
// Не выполняет I/O: запись результата — ответственность вызывающего.
func (r *Resolver) Resolve(conflict *models.SyncConflict) (*Resolution, error) {
	strategy := conflict.Strategy
	if strategy == "" {
		strategy = r.DefaultStrategy(conflict.ModelName)
	}
	if !strategy.IsValid() {
		return nil, fmt.Errorf("unknown resolution strategy: %s", strategy)
	}

	switch strategy {
	case models.StrategyNewerWins:
		if remoteNewer(conflict) {
			return winner(strategy, "remote", conflict.RemoteData), nil
		}
		return winner(strategy, "local", conflict.LocalData), nil

	case models.StrategyOlderWins:
		if remoteNewer(conflict) {
			return winner(strategy, "local", conflict.LocalData), nil
		}
		return winner(strategy, "remote", conflict.RemoteData), nil

	case models.StrategyHubWins:
		// Удаленная сторона конфликта — hub
		return winner(strategy, "remote", conflict.RemoteData), nil

	case models.StrategyNodeWins:
		return winner(strategy, "local", conflict.LocalData), nil

	case models.StrategyMerge:
		fn, ok := r.mergeFuncs[conflict.ModelName]
		if !ok {
			// Нет merge-функции для модели — откат в manual
			return &Resolution{Strategy: models.StrategyManual, Resolved: false}, nil
		}
		merged, err := fn(conflict.LocalData, conflict.RemoteData)
		if err != nil {
			return nil, fmt.Errorf("merge function failed for %s: %w", conflict.ModelName, err)
		}
		return winner(strategy, "both", merged), nil

	case models.StrategyKeepBoth:
		// Обе версии сохраняются: локальная под исходным id,
		// удаленная под производным. Данные не теряются.
		return &Resolution{
			Strategy:        strategy,
			Winner:          "both",
			DerivedRecordID: DeriveRecordID(conflict.RecordID, conflict.RemoteSource),
			DerivedData:     conflict.RemoteData,
			Resolved:        true,
		}, nil

	default: // models.StrategyManual
		return &Resolution{Strategy: models.StrategyManual, Resolved: false}, nil
	}
}

// AuditResolution формирует запись audit trail для resolution_data.
// Воспроизводима из конфликта и исхода: фиксирует стратегию и входы.
func AuditResolution(conflict *models.SyncConflict, res *Resolution, resolvedAt time.Time) (json.RawMessage, error) {
	audit := struct {
		ResolvedAt       time.Time       `json:"resolved_at"`
		LocalModifiedAt  time.Time       `json:"local_modified_at"`
		RemoteModifiedAt time.Time       `json:"remote_modified_at"`
		Strategy         models.Strategy `json:"strategy"`
		Winner           string          `json:"winner"`
		DerivedRecordID  string          `json:"derived_record_id,omitempty"`
		Data             json.RawMessage `json:"data,omitempty"`
		LocalVersion     int64           `json:"local_version"`
		RemoteVersion    int64           `json:"remote_version"`
	}{
		ResolvedAt:       resolvedAt,
		LocalModifiedAt:  conflict.LocalModifiedAt,
		RemoteModifiedAt: conflict.RemoteModifiedAt,
		Strategy:         res.Strategy,
		Winner:           res.Winner,
		DerivedRecordID:  res.DerivedRecordID,
		Data:             res.Data,
		LocalVersion:     conflict.LocalVersion,
		RemoteVersion:    conflict.RemoteVersion,
	}

	data, err := json.Marshal(audit)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resolution audit: %w", err)
	}
	return data, nil
}

// remoteNewer сравнивает wall-clock времена сторон конфликта.
// При равенстве побеждает сторона с лексикографически большим
// идентификатором источника (детерминизм, как в LWW).
func remoteNewer(conflict *models.SyncConflict) bool {
	if conflict.RemoteModifiedAt.After(conflict.LocalModifiedAt) {
		return true
	}
	if conflict.RemoteModifiedAt.Before(conflict.LocalModifiedAt) {
		return false
	}
	return conflict.RemoteSource > conflict.LocalNodeID
}

func winner(strategy models.Strategy, side string, data json.RawMessage) *Resolution {
	return &Resolution{
		Strategy: strategy,
		Winner:   side,
		Data:     data,
		Resolved: true,
	}
}
