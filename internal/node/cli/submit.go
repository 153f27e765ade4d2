package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/iudanet/syncpoint/internal/models"
)

func (c *Cli) runSubmit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	modelName := fs.String("model", "", "model name (required)")
	recordID := fs.String("record", "", "record id (required)")
	operation := fs.String("op", "update", "operation: create, update or delete")
	data := fs.String("data", "", "json payload; prompted interactively when omitted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	payload := *data
	if payload == "" && *operation != string(models.OperationDelete) {
		input, err := c.io.ReadInput("Payload JSON: ")
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		payload = input
	}

	var raw json.RawMessage
	if payload != "" {
		raw = json.RawMessage(payload)
	}

	record, err := c.syncService.SubmitLocalChange(ctx, *modelName, *recordID, models.Operation(*operation), raw)
	if err != nil {
		return err
	}

	c.io.Printf("Change recorded: %s %s/%s (version %d)\n",
		record.Operation, record.ModelName, record.RecordID, record.LocalVersion)

	return nil
}
