package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/syncpoint/internal/models"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Printf("Node: %s\n", c.nodeID)
	c.io.Println()

	vectors, err := c.syncService.PendingChanges(ctx)
	if err != nil {
		return fmt.Errorf("failed to get version vectors: %w", err)
	}

	if len(vectors) == 0 {
		c.io.Println("No local changes recorded yet.")
	} else {
		c.io.Println("Version vectors:")
		totalPending := int64(0)
		for _, v := range vectors {
			c.io.Printf("  %-24s version=%-6d synced=%-6d pending=%d\n",
				v.ModelName, v.Version, v.LastSyncedVersion, v.PendingCount())
			totalPending += v.PendingCount()
		}
		c.io.Println()
		if totalPending > 0 {
			c.io.Printf("%d change(s) waiting for push. Run 'syncpoint-node sync'.\n", totalPending)
		} else {
			c.io.Println("All local changes confirmed by hub.")
		}
	}

	conflicts, err := c.syncService.ListUnresolvedConflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conflicts: %w", err)
	}
	if len(conflicts) > 0 {
		c.io.Println()
		c.io.Printf("%d unresolved conflict(s). Run 'syncpoint-node conflicts'.\n", len(conflicts))
	}

	pendingOps, err := c.queueService.List(ctx, models.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to list queued operations: %w", err)
	}
	if len(pendingOps) > 0 {
		c.io.Println()
		c.io.Printf("%d operation(s) in the offline queue.\n", len(pendingOps))
	}

	return nil
}
