package cli

import (
	"context"
	"flag"
	"strings"

	"github.com/iudanet/syncpoint/internal/models"
)

func (c *Cli) runSync(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)
	direction := fs.String("direction", string(models.DirectionBidirectional), "push, pull or bidirectional")
	modulesFlag := fs.String("modules", "", "comma-separated model names; empty means all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var modules []string
	if *modulesFlag != "" {
		modules = strings.Split(*modulesFlag, ",")
	}

	c.io.Println("Starting synchronization with hub...")

	session, err := c.syncService.StartSession(ctx, models.Direction(*direction), modules)
	if err != nil {
		if session != nil && session.Status == models.StatusFailed {
			c.io.Println("Synchronization failed; undelivered work is kept in the offline queue.")
			c.io.Println("Run 'syncpoint-node queue drain' once the hub is reachable.")
		}
		return err
	}

	c.io.Println()
	c.io.Printf("Session %s finished: %s\n", session.ID, session.Status)
	c.io.Printf("Processed: %d\n", session.ProcessedRecords)
	c.io.Printf("Applied:   %d\n", session.AppliedRecords)
	if session.ConflictsCount > 0 {
		c.io.Printf("Conflicts: %d\n", session.ConflictsCount)
	}
	if session.FailedRecords > 0 {
		c.io.Printf("Failed:    %d\n", session.FailedRecords)
	}

	if session.Status == models.StatusConflict {
		c.io.Println()
		c.io.Println("Unresolved conflicts remain. Run 'syncpoint-node conflicts' to inspect them.")
	}

	return nil
}
