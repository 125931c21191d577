package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ScanDirectoryTask scans the data directory so first-seen times are
// recorded even when nobody requests the feed
type ScanDirectoryTask struct {
	Task
	scanner ScannerInterface
}

func NewScanDirectoryTask(scanner ScannerInterface) *ScanDirectoryTask {
	return &ScanDirectoryTask{
		Task:    NewTask(TaskTypeScanDirectory, scanner.Dir()),
		scanner: scanner,
	}
}

func (t *ScanDirectoryTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	started := time.Now()

	docs, err := t.scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan data directory: %w", err)
	}

	slog.Debug("Task completed",
		"type", string(t.Type),
		"dir", t.Target,
		"files", len(docs),
		"duration", time.Since(started))

	return nil
}
