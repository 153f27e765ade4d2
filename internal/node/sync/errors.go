package sync

import "errors"

// Common sync service errors
var (
	// ErrSessionActive означает, что для узла уже выполняется
	// сессия синхронизации: на узел допускается не более одной
	ErrSessionActive = errors.New("sync session is already active")

	// ErrSessionNotOpen означает, что сессия не принимает пакеты
	// (не находится в статусе in_progress)
	ErrSessionNotOpen = errors.New("sync session is not open")

	// ErrSessionFinished означает попытку отменить сессию,
	// уже достигшую терминального статуса
	ErrSessionFinished = errors.New("sync session is already finished")

	// ErrEmptyResolution означает ручное разрешение конфликта
	// без итоговых данных
	ErrEmptyResolution = errors.New("manual resolution requires data")
)
