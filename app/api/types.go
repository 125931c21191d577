package api

import (
	"context"
	"time"

	"github.com/lysyi3m/dirfeed/app/database"
	"github.com/lysyi3m/dirfeed/app/library"
)

type ScannerInterface interface {
	Scan(ctx context.Context) ([]library.Document, error)
	Open(name string) (string, error)
}

var _ ScannerInterface = (*library.Scanner)(nil)

type FileCounterInterface interface {
	GetFileCount(ctx context.Context) (int, error)
}

var _ FileCounterInterface = (*database.FileRepository)(nil)

type Options struct {
	BaseUrl    string // xml:base for feeds whose preset sets none
	MaxEntries int    // applies when the preset sets no limit
	Version    string
	Now        func() time.Time

	CacheTTL   time.Duration // 0 renders every request
	RenderRate float64       // requests per second for /api/render, 0 for no limit
}
