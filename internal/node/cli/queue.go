package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/iudanet/syncpoint/internal/models"
)

func (c *Cli) runQueue(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("queue requires a subcommand: list or drain")
	}

	switch args[0] {
	case "list":
		return c.runQueueList(ctx, args[1:])
	case "drain":
		return c.runQueueDrain(ctx, args[1:])
	default:
		return fmt.Errorf("unknown queue subcommand: %s", args[0])
	}
}

func (c *Cli) runQueueList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("queue list", flag.ContinueOnError)
	status := fs.String("status", string(models.StatusPending), "operation status filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ops, err := c.queueService.List(ctx, models.Status(*status))
	if err != nil {
		return fmt.Errorf("failed to list operations: %w", err)
	}

	if len(ops) == 0 {
		c.io.Printf("No %s operations.\n", *status)
		return nil
	}

	c.io.Printf("%d %s operation(s):\n", len(ops), *status)
	for _, op := range ops {
		c.io.Printf("  %s  %-10s prio=%-4d retries=%d/%d scheduled=%s\n",
			op.ID, op.OperationType, op.Priority,
			op.RetryCount, op.MaxRetries,
			op.ScheduledFor.Format(time.RFC3339))
		if op.LastError != "" {
			c.io.Printf("      last error: %s\n", op.LastError)
		}
	}

	return nil
}

func (c *Cli) runQueueDrain(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("queue drain", flag.ContinueOnError)
	limit := fs.Int("limit", 0, "max operations per drain; 0 means all due")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, err := c.queueService.Drain(ctx, *limit)
	if err != nil {
		return fmt.Errorf("drain failed: %w", err)
	}

	c.io.Printf("Delivered: %d\n", result.Completed)
	if result.Retried > 0 {
		c.io.Printf("Rescheduled: %d\n", result.Retried)
	}
	if result.Cancelled > 0 {
		c.io.Printf("Expired: %d\n", result.Cancelled)
	}
	if result.Failed > 0 {
		c.io.Printf("Failed permanently: %d\n", result.Failed)
	}

	return nil
}
