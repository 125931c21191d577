package tasks

import (
	"context"
	"time"
)

type TaskType string

const (
	TaskTypeScanDirectory TaskType = "scan_directory"
)

const (
	DefaultMaxRetries = 3
	maxRetryDelay     = 30 * time.Second
)

type TaskInterface interface {
	Execute(ctx context.Context) error
	GetType() TaskType
	GetTarget() string
	RetryAfter(base time.Duration) (time.Duration, bool)
}

// Task holds what a queued job works on and how often it has been retried
type Task struct {
	Type       TaskType
	Target     string
	RetryCount int
	MaxRetries int
}

func NewTask(taskType TaskType, target string) Task {
	return Task{
		Type:       taskType,
		Target:     target,
		MaxRetries: DefaultMaxRetries,
	}
}

func (t *Task) GetType() TaskType {
	return t.Type
}

func (t *Task) GetTarget() string {
	return t.Target
}

// RetryAfter counts a failed attempt and returns the backoff before the next
// one, doubling base per retry up to maxRetryDelay. It returns false once
// the task has used up its retries.
func (t *Task) RetryAfter(base time.Duration) (time.Duration, bool) {
	if t.RetryCount >= t.MaxRetries {
		return 0, false
	}
	t.RetryCount++
	return min(base<<(t.RetryCount-1), maxRetryDelay), true
}
