package storage

import "errors"

// Common node storage errors
var (
	// ErrVectorNotFound означает, что version vector для пары
	// (node_id, model_name) еще не создан
	ErrVectorNotFound = errors.New("version vector not found")

	// ErrRecordNotFound означает, что запись синхронизации не найдена
	ErrRecordNotFound = errors.New("sync record not found")

	// ErrConflictNotFound означает, что конфликт не найден
	ErrConflictNotFound = errors.New("sync conflict not found")

	// ErrConflictResolved означает попытку изменить уже разрешенный
	// конфликт: после resolved=true запись append-only
	ErrConflictResolved = errors.New("sync conflict is already resolved")

	// ErrSessionNotFound означает, что сессия синхронизации не найдена
	ErrSessionNotFound = errors.New("sync session not found")

	// ErrOperationNotFound означает, что отложенная операция не найдена
	ErrOperationNotFound = errors.New("offline operation not found")

	// ErrStorageClosed означает, что хранилище закрыто
	ErrStorageClosed = errors.New("storage is closed")
)
