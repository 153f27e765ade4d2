package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/iudanet/syncpoint/internal/models"
	nodeapi "github.com/iudanet/syncpoint/internal/node/api"
	"github.com/iudanet/syncpoint/internal/node/cli"
	"github.com/iudanet/syncpoint/internal/node/iocli"
	"github.com/iudanet/syncpoint/internal/node/queue"
	"github.com/iudanet/syncpoint/internal/node/storage/boltdb"
	nodesync "github.com/iudanet/syncpoint/internal/node/sync"
	"github.com/iudanet/syncpoint/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	hubURL := flag.String("hub", "http://localhost:8080", "Hub URL")
	dbPath := flag.String("db", "syncpoint-node.db", "Path to local database")
	nodeIDFlag := flag.String("node-id", "", "Node identifier (generated on first run if empty)")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	logger := newLogger(*logLevel)

	// Агент работает до сигнала завершения
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Открываем локальное хранилище узла
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	nodeID, err := resolveNodeID(ctx, boltStorage, *nodeIDFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve node id: %v\n", err)
		os.Exit(1)
	}

	hubClient := nodeapi.NewClient(*hubURL)

	// Очередь и движок ссылаются друг на друга: движок ставит
	// недоставленные пакеты через Enqueue, очередь доставляет их
	// сессиями движка. Map обработчиков заполняется после создания
	// движка, до первого Drain.
	handlers := map[models.OperationType]queue.Handler{}
	queueService := queue.NewService(queue.Config{
		NodeID:   nodeID,
		Storage:  boltStorage,
		Handlers: handlers,
		Logger:   logger,
	})

	syncService := nodesync.NewService(nodesync.Config{
		NodeID:    nodeID,
		Hub:       hubClient,
		Vectors:   boltStorage,
		Records:   boltStorage,
		Conflicts: boltStorage,
		Sessions:  boltStorage,
		Queue:     queueService,
		Metadata:  boltStorage,
		Logger:    logger,
	})

	for opType, handler := range queueHandlers(syncService, logger) {
		handlers[opType] = handler
	}

	c := cli.New(nodeID, syncService, queueService, iocli.NewStdio())
	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveNodeID возвращает идентификатор узла: флаг, сохраненное
// значение или новый uuid, который сохраняется для следующих запусков
func resolveNodeID(ctx context.Context, meta *boltdb.Storage, override string) (string, error) {
	if override != "" {
		if err := validation.ValidateNodeID(override); err != nil {
			return "", err
		}
		if err := meta.SaveNodeID(ctx, override); err != nil {
			return "", err
		}
		return override, nil
	}

	nodeID, err := meta.GetNodeID(ctx)
	if err != nil {
		return "", err
	}
	if nodeID != "" {
		return nodeID, nil
	}

	nodeID = uuid.NewString()
	if err := meta.SaveNodeID(ctx, nodeID); err != nil {
		return "", err
	}
	return nodeID, nil
}

// queueHandlers связывает типы отложенных операций с их выполнением.
// Недоставленные push/pull заменяются свежей сессией соответствующего
// направления: она сама собирает актуальный пакет из pending-записей.
func queueHandlers(syncService nodesync.Service, logger *slog.Logger) map[models.OperationType]queue.Handler {
	return map[models.OperationType]queue.Handler{
		models.OperationTypeSyncPush: func(ctx context.Context, op *models.OfflineOperation) error {
			session, err := syncService.StartSession(ctx, models.DirectionPush, nil)
			if err != nil {
				return err
			}
			if session.Status == models.StatusFailed {
				return fmt.Errorf("push session %s failed: %s", session.ID, session.LastError)
			}
			logger.Info("queued push delivered", "operation_id", op.ID, "session_id", session.ID)
			return nil
		},
		models.OperationTypeSyncPull: func(ctx context.Context, op *models.OfflineOperation) error {
			var payload struct {
				ModelName string `json:"model_name"`
			}
			if err := json.Unmarshal(op.Payload, &payload); err != nil {
				return fmt.Errorf("invalid pull payload: %w", err)
			}

			var modules []string
			if payload.ModelName != "" {
				modules = []string{payload.ModelName}
			}

			session, err := syncService.StartSession(ctx, models.DirectionPull, modules)
			if err != nil {
				return err
			}
			if session.Status == models.StatusFailed {
				return fmt.Errorf("pull session %s failed: %s", session.ID, session.LastError)
			}
			logger.Info("queued pull delivered", "operation_id", op.ID, "session_id", session.ID)
			return nil
		},
	}
}

func newLogger(level string) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "error":
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel,
	}))
}

func printVersion() {
	fmt.Printf("Syncpoint Node\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
