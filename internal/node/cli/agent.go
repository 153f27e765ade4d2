package cli

import (
	"context"
	"errors"
	"flag"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/internal/node/sync"
)

// passTimeout ограничивает один проход агента
const passTimeout = 10 * time.Minute

// runAgent запускает периодическую синхронизацию в foreground:
// по расписанию выполняется drain offline-очереди и полная сессия обмена
func (c *Cli) runAgent(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("agent", flag.ContinueOnError)
	schedule := fs.String("schedule", "@every 5m", "cron schedule of sync passes")
	modulesFlag := fs.String("modules", "", "comma-separated model names; empty means all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var modules []string
	if *modulesFlag != "" {
		modules = strings.Split(*modulesFlag, ",")
	}

	runner := cron.New()
	if _, err := runner.AddFunc(*schedule, func() {
		c.agentPass(modules)
	}); err != nil {
		return err
	}

	c.io.Printf("Agent started, schedule: %s\n", *schedule)

	// Первый проход сразу, не дожидаясь расписания
	c.agentPass(modules)

	runner.Start()
	<-ctx.Done()

	// Дожидаемся завершения текущего прохода
	stopCtx := runner.Stop()
	<-stopCtx.Done()

	c.io.Println("Agent stopped.")

	return nil
}

func (c *Cli) agentPass(modules []string) {
	ctx, cancel := context.WithTimeout(context.Background(), passTimeout)
	defer cancel()

	// Сначала доставляем накопившиеся offline-операции
	result, err := c.queueService.Drain(ctx, 0)
	if err != nil {
		c.io.Printf("queue drain failed: %v\n", err)
	} else if result.Completed+result.Retried+result.Cancelled+result.Failed > 0 {
		c.io.Printf("queue drain: delivered=%d rescheduled=%d expired=%d failed=%d\n",
			result.Completed, result.Retried, result.Cancelled, result.Failed)
	}

	session, err := c.syncService.StartSession(ctx, models.DirectionBidirectional, modules)
	if err != nil {
		if errors.Is(err, sync.ErrSessionActive) {
			// Предыдущий проход еще не закончился
			return
		}
		c.io.Printf("sync pass failed: %v\n", err)
		return
	}

	c.io.Printf("sync pass %s: %s processed=%d applied=%d conflicts=%d\n",
		session.ID, session.Status, session.ProcessedRecords,
		session.AppliedRecords, session.ConflictsCount)
}
