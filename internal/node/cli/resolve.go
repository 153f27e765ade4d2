package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
)

func (c *Cli) runResolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	conflictID := fs.String("id", "", "conflict id (required)")
	data := fs.String("data", "", "resolution json payload; prompted interactively when omitted")
	resolvedBy := fs.String("by", "", "who makes the decision; recorded in the audit trail")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *conflictID == "" {
		return fmt.Errorf("conflict id is required")
	}

	payload := *data
	if payload == "" {
		input, err := c.io.ReadInput("Resolution JSON: ")
		if err != nil {
			return fmt.Errorf("failed to read resolution: %w", err)
		}
		payload = input
	}

	conflict, err := c.syncService.ApplyManualResolution(ctx, *conflictID, json.RawMessage(payload), *resolvedBy)
	if err != nil {
		return err
	}

	c.io.Printf("Conflict %s resolved for %s/%s.\n",
		conflict.ID, conflict.ModelName, conflict.RecordID)
	c.io.Println("The decision is recorded as a local change and will propagate on the next sync.")

	return nil
}
