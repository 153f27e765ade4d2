// Package queue реализует durable-очередь отложенных операций узла:
// постановку, выборку с учетом приоритета и exponential backoff при сбоях.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/internal/node/storage"
	"github.com/iudanet/syncpoint/internal/validation"
)

// Дефолты новых операций
const (
	DefaultPriority          = 100
	DefaultMaxRetries        = 5
	DefaultRetryDelaySeconds = 30

	// maxBackoff верхняя граница задержки между попытками
	maxBackoff = time.Hour
)

// Handler выполняет операцию конкретного типа. Ошибка означает
// неудачную попытку: операция вернется в очередь с backoff-задержкой.
type Handler func(ctx context.Context, op *models.OfflineOperation) error

// DrainResult итог одного прохода по due-операциям
type DrainResult struct {
	Completed int // доставлено
	Retried   int // вернулось в очередь с задержкой
	Cancelled int // отменено по истечении срока
	Failed    int // исчерпало попытки
}

//go:generate moq -out service_mock.go . Service

// Service очередь отложенных операций
type Service interface {
	// Enqueue ставит операцию в очередь, заполняя незаданные поля
	// дефолтами. Payload обязан быть валидным JSON.
	Enqueue(ctx context.Context, op *models.OfflineOperation) (*models.OfflineOperation, error)

	// Drain выполняет до limit готовых операций: истекшие отменяет,
	// остальные передает зарегистрированным обработчикам.
	// limit <= 0 означает "все готовые".
	Drain(ctx context.Context, limit int) (*DrainResult, error)

	// ReportResult фиксирует исход операции, выполненной вне очереди
	// (например, внешним процессом, забравшим её из List). Применяет те же
	// переходы, что и Drain: успех завершает операцию, сбой увеличивает
	// retry_count и возвращает её в очередь с backoff-задержкой либо
	// переводит в терминальный failed после max_retries.
	ReportResult(ctx context.Context, opID string, success bool, opErr error) (*models.OfflineOperation, error)

	// Get возвращает операцию по ID
	Get(ctx context.Context, id string) (*models.OfflineOperation, error)

	// List возвращает операции в указанном статусе
	List(ctx context.Context, status models.Status) ([]*models.OfflineOperation, error)
}

// Config зависимости очереди
type Config struct {
	NodeID   string
	Storage  storage.QueueStorage
	Handlers map[models.OperationType]Handler
	Logger   *slog.Logger
}

type service struct {
	nodeID   string
	storage  storage.QueueStorage
	handlers map[models.OperationType]Handler
	logger   *slog.Logger
}

// NewService создает сервис очереди
func NewService(cfg Config) Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	handlers := cfg.Handlers
	if handlers == nil {
		handlers = make(map[models.OperationType]Handler)
	}
	return &service{
		nodeID:   cfg.NodeID,
		storage:  cfg.Storage,
		handlers: handlers,
		logger:   logger,
	}
}

func (s *service) Enqueue(ctx context.Context, op *models.OfflineOperation) (*models.OfflineOperation, error) {
	if op == nil {
		return nil, fmt.Errorf("operation cannot be nil")
	}
	if len(op.Payload) > 0 && !json.Valid(op.Payload) {
		return nil, fmt.Errorf("operation payload must be valid json")
	}

	queued := op.Clone()
	if queued.ID == "" {
		queued.ID = uuid.NewString()
	}
	if queued.NodeID == "" {
		queued.NodeID = s.nodeID
	}
	if err := validation.ValidateNodeID(queued.NodeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	queued.Status = models.StatusPending
	queued.RetryCount = 0
	if queued.CreatedAt.IsZero() {
		queued.CreatedAt = now
	}
	if queued.ScheduledFor.IsZero() {
		queued.ScheduledFor = queued.CreatedAt
	}
	if queued.Priority == 0 {
		queued.Priority = DefaultPriority
	}
	if queued.MaxRetries == 0 {
		queued.MaxRetries = DefaultMaxRetries
	}
	if queued.RetryDelaySeconds == 0 {
		queued.RetryDelaySeconds = DefaultRetryDelaySeconds
	}

	if err := s.storage.SaveOperation(ctx, queued); err != nil {
		return nil, fmt.Errorf("failed to enqueue operation: %w", err)
	}

	s.logger.Debug("operation enqueued",
		"operation_id", queued.ID, "type", queued.OperationType, "priority", queued.Priority)

	return queued, nil
}

func (s *service) Drain(ctx context.Context, limit int) (*DrainResult, error) {
	now := time.Now().UTC()
	due, err := s.storage.ListDue(ctx, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due operations: %w", err)
	}

	result := &DrainResult{}
	for _, op := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		// Истечение срока — отмена, не сбой: операция стала неактуальной
		if op.IsExpired(now) {
			op.Status = models.StatusCancelled
			op.LastError = "operation expired"
			completedAt := now
			op.CompletedAt = &completedAt
			if err := s.storage.SaveOperation(ctx, op); err != nil {
				return result, fmt.Errorf("failed to cancel expired operation: %w", err)
			}
			result.Cancelled++
			s.logger.Info("expired operation cancelled",
				"operation_id", op.ID, "type", op.OperationType)
			continue
		}

		if err := s.attempt(ctx, op, now, result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// attempt выполняет одну попытку доставки операции
func (s *service) attempt(ctx context.Context, op *models.OfflineOperation, now time.Time, result *DrainResult) error {
	attemptAt := now
	op.Status = models.StatusInProgress
	op.LastAttempt = &attemptAt
	if err := s.storage.SaveOperation(ctx, op); err != nil {
		return fmt.Errorf("failed to mark operation in progress: %w", err)
	}

	handler, ok := s.handlers[op.OperationType]
	var execErr error
	if !ok {
		execErr = fmt.Errorf("no handler registered for %s", op.OperationType)
	} else {
		execErr = handler(ctx, op)
	}

	if err := s.finish(ctx, op, execErr, now); err != nil {
		return err
	}

	switch op.Status {
	case models.StatusCompleted:
		result.Completed++
	case models.StatusFailed:
		result.Failed++
	default:
		result.Retried++
	}

	return nil
}

func (s *service) ReportResult(ctx context.Context, opID string, success bool, opErr error) (*models.OfflineOperation, error) {
	op, err := s.storage.GetOperation(ctx, opID)
	if err != nil {
		return nil, err
	}
	if op.Status.IsTerminal() {
		return nil, fmt.Errorf("operation %s already finished with status %s", op.ID, op.Status)
	}

	var execErr error
	if !success {
		execErr = opErr
		if execErr == nil {
			execErr = fmt.Errorf("operation failed")
		}
	}

	if err := s.finish(ctx, op, execErr, time.Now().UTC()); err != nil {
		return nil, err
	}

	return op, nil
}

// finish применяет исход попытки: завершение, reschedule с backoff
// или терминальный failed после исчерпания попыток
func (s *service) finish(ctx context.Context, op *models.OfflineOperation, execErr error, now time.Time) error {
	if execErr == nil {
		op.Status = models.StatusCompleted
		op.LastError = ""
		completedAt := time.Now().UTC()
		op.CompletedAt = &completedAt
		if err := s.storage.SaveOperation(ctx, op); err != nil {
			return fmt.Errorf("failed to complete operation: %w", err)
		}
		s.logger.Info("operation delivered",
			"operation_id", op.ID, "type", op.OperationType, "attempts", op.RetryCount+1)
		return nil
	}

	op.RetryCount++
	op.LastError = execErr.Error()

	if op.RetryCount >= op.MaxRetries {
		// Попытки исчерпаны: терминальный сбой, требуется вмешательство
		op.Status = models.StatusFailed
		completedAt := time.Now().UTC()
		op.CompletedAt = &completedAt
		if err := s.storage.SaveOperation(ctx, op); err != nil {
			return fmt.Errorf("failed to mark operation failed: %w", err)
		}
		s.logger.Error("operation failed permanently",
			"operation_id", op.ID, "type", op.OperationType,
			"attempts", op.RetryCount, "error", execErr)
		return nil
	}

	op.Status = models.StatusPending
	op.ScheduledFor = now.Add(Backoff(op.RetryDelaySeconds, op.RetryCount))
	if err := s.storage.SaveOperation(ctx, op); err != nil {
		return fmt.Errorf("failed to reschedule operation: %w", err)
	}
	s.logger.Warn("operation attempt failed, rescheduled",
		"operation_id", op.ID, "type", op.OperationType,
		"attempt", op.RetryCount, "next_attempt", op.ScheduledFor, "error", execErr)

	return nil
}

func (s *service) Get(ctx context.Context, id string) (*models.OfflineOperation, error) {
	return s.storage.GetOperation(ctx, id)
}

func (s *service) List(ctx context.Context, status models.Status) ([]*models.OfflineOperation, error) {
	return s.storage.ListByStatus(ctx, status)
}

// Backoff возвращает задержку перед попыткой retryCount+1:
// базовая задержка удваивается с каждой неудачей, но не превышает maxBackoff.
func Backoff(retryDelaySeconds, retryCount int) time.Duration {
	if retryDelaySeconds <= 0 {
		retryDelaySeconds = DefaultRetryDelaySeconds
	}
	delay := time.Duration(retryDelaySeconds) * time.Second
	for i := 1; i < retryCount; i++ {
		delay *= 2
		if delay >= maxBackoff {
			return maxBackoff
		}
	}
	if delay > maxBackoff {
		return maxBackoff
	}
	return delay
}
