package cli

import (
	"context"
	"fmt"
	"time"
)

func (c *Cli) runConflicts(ctx context.Context) error {
	conflicts, err := c.syncService.ListUnresolvedConflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list conflicts: %w", err)
	}

	if len(conflicts) == 0 {
		c.io.Println("No unresolved conflicts.")
		return nil
	}

	c.io.Printf("%d unresolved conflict(s):\n", len(conflicts))
	for _, conflict := range conflicts {
		c.io.Println()
		c.io.Printf("ID:       %s\n", conflict.ID)
		c.io.Printf("Entity:   %s/%s\n", conflict.ModelName, conflict.RecordID)
		c.io.Printf("Detected: %s\n", conflict.DetectedAt.Format(time.RFC3339))
		c.io.Printf("Local  (v%d, %s): %s\n",
			conflict.LocalVersion, conflict.LocalModifiedAt.Format(time.RFC3339), conflict.LocalData)
		c.io.Printf("Remote (v%d, %s, from %s): %s\n",
			conflict.RemoteVersion, conflict.RemoteModifiedAt.Format(time.RFC3339),
			conflict.RemoteSource, conflict.RemoteData)
	}

	c.io.Println()
	c.io.Println("Resolve with: syncpoint-node resolve -id <conflict-id> -data '<json>'")

	return nil
}
