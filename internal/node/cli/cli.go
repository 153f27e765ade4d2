// Package cli реализует команды узла синхронизации
package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/syncpoint/internal/node/iocli"
	"github.com/iudanet/syncpoint/internal/node/queue"
	"github.com/iudanet/syncpoint/internal/node/sync"
)

type Cli struct {
	syncService  sync.Service
	queueService queue.Service
	io           iocli.IO
	nodeID       string
}

func New(nodeID string, syncService sync.Service, queueService queue.Service, io iocli.IO) *Cli {
	return &Cli{
		nodeID:       nodeID,
		syncService:  syncService,
		queueService: queueService,
		io:           io,
	}
}

// Run выполняет команду. Ошибку печатает вызывающий.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "submit":
		return c.runSubmit(ctx, args)
	case "sync":
		return c.runSync(ctx, args)
	case "status":
		return c.runStatus(ctx)
	case "conflicts":
		return c.runConflicts(ctx)
	case "resolve":
		return c.runResolve(ctx, args)
	case "queue":
		return c.runQueue(ctx, args)
	case "agent":
		return c.runAgent(ctx, args)
	case "help", "":
		c.PrintUsage()
		return nil
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

const usageText = `syncpoint-node - node side of the sync engine

Usage:
  syncpoint-node [flags] <command> [command flags]

Commands:
  submit     record a local change for synchronization
  sync       run a sync session with the hub
  status     show version vectors, pending changes and conflicts
  conflicts  list unresolved conflicts
  resolve    resolve a conflict with externally provided data
  queue      inspect or drain the offline operation queue
  agent      run periodic synchronization in foreground
  help       show this message

Run 'syncpoint-node <command> -h' for command flags.
`

func (c *Cli) PrintUsage() {
	c.io.Printf("%s", usageText)
}

// PrintUsage печатает справку до того, как собраны зависимости Cli
func PrintUsage() {
	fmt.Print(usageText)
}
