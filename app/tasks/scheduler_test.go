package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lysyi3m/dirfeed/app/library"
)

// MockScanner counts scans and fails the first failures calls
type MockScanner struct {
	calls    atomic.Int32
	failures int32
}

func (m *MockScanner) Scan(ctx context.Context) ([]library.Document, error) {
	n := m.calls.Add(1)
	if n <= m.failures {
		return nil, errors.New("scan failed")
	}
	return []library.Document{{Name: "a.txt"}}, nil
}

func (m *MockScanner) Dir() string {
	return "/data"
}

func waitForCalls(t *testing.T, scanner *MockScanner, want int32) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if scanner.calls.Load() >= want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Expected at least %d scans, got %d", want, scanner.calls.Load())
}

func TestSchedulerScansAtStartAndOnInterval(t *testing.T) {
	scanner := &MockScanner{}
	scheduler := NewScheduler(scanner, 20*time.Millisecond)

	scheduler.Start()
	waitForCalls(t, scanner, 3)
	scheduler.Stop()

	stopped := scanner.calls.Load()
	time.Sleep(60 * time.Millisecond)
	if scanner.calls.Load() != stopped {
		t.Error("Expected no scans after Stop")
	}
}

func TestSchedulerRetriesFailedTasks(t *testing.T) {
	scanner := &MockScanner{failures: 1}
	scheduler := NewScheduler(scanner, time.Hour)
	scheduler.retryDelay = 10 * time.Millisecond

	scheduler.Start()
	defer scheduler.Stop()

	waitForCalls(t, scanner, 2)
}

func TestScanDirectoryTask(t *testing.T) {
	scanner := &MockScanner{}
	task := NewScanDirectoryTask(scanner)

	if task.GetType() != TaskTypeScanDirectory {
		t.Errorf("Expected type %s, got %s", TaskTypeScanDirectory, task.GetType())
	}
	if task.GetTarget() != "/data" {
		t.Errorf("Expected target '/data', got '%s'", task.GetTarget())
	}

	if err := task.Execute(context.Background()); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := task.Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}

func TestTaskRetryAfter(t *testing.T) {
	task := NewTask(TaskTypeScanDirectory, "/data")

	expected := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	for i, want := range expected {
		delay, ok := task.RetryAfter(time.Second)
		if !ok {
			t.Fatalf("Expected task to be retryable after %d retries", i)
		}
		if delay != want {
			t.Errorf("Expected retry %d after %v, got %v", i+1, want, delay)
		}
	}

	if _, ok := task.RetryAfter(time.Second); ok {
		t.Error("Expected task to stop retrying after max retries")
	}
	if task.RetryCount != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.RetryCount)
	}
}

func TestTaskRetryAfterIsCapped(t *testing.T) {
	task := NewTask(TaskTypeScanDirectory, "/data")
	task.MaxRetries = 10

	var delay time.Duration
	for range 8 {
		delay, _ = task.RetryAfter(time.Second)
	}
	if delay != maxRetryDelay {
		t.Errorf("Expected delay capped at %v, got %v", maxRetryDelay, delay)
	}
}

func TestEnqueueTaskQueueFull(t *testing.T) {
	scheduler := NewScheduler(&MockScanner{}, time.Hour)
	defer scheduler.cancel()

	for i := 0; i < cap(scheduler.taskQueue); i++ {
		if err := scheduler.EnqueueTask(NewScanDirectoryTask(&MockScanner{})); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}

	if err := scheduler.EnqueueTask(NewScanDirectoryTask(&MockScanner{})); err == nil {
		t.Error("Expected error when queue is full")
	}
}
