package tasks

import (
	"context"

	"github.com/lysyi3m/dirfeed/app/library"
)

// TaskSchedulerInterface is used by the main application to run background
// directory scans.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

type ScannerInterface interface {
	Scan(ctx context.Context) ([]library.Document, error)
	Dir() string
}

var _ ScannerInterface = (*library.Scanner)(nil)
