// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package backfill

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/banquet/ai"
	"github.com/poiesic/banquet/core"
	"github.com/poiesic/banquet/storage"
	"golang.org/x/time/rate"
)

// Config holds configuration for the backfill operation.
type Config struct {
	// BatchSize is the number of packages to embed in each batch
	BatchSize int

	// BatchDelay is the minimum spacing between batch embedding calls,
	// to avoid saturating the embedding endpoint
	BatchDelay time.Duration

	// ReportInterval is how often to report progress (number of packages)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed batches
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// OnlyMissing restricts the backfill to packages without a vector
	OnlyMissing bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		BatchDelay:     500 * time.Millisecond,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// BatchError records the failure of one batch.
type BatchError struct {
	// Batch is the zero-based index of the failed batch
	Batch int

	// Ids lists the packages in the failed batch
	Ids []core.ID

	// Err is the underlying failure
	Err error
}

func (e BatchError) Error() string {
	return fmt.Sprintf("batch %d (%d packages): %v", e.Batch, len(e.Ids), e.Err)
}

func (e BatchError) Unwrap() error {
	return e.Err
}

// Report summarizes a backfill run. A run with failed batches is still a
// partial success; callers decide whether to rerun.
type Report struct {
	Total     int
	Succeeded int
	Failed    int
	Errors    []BatchError
}

// Backfiller embeds every package in the catalog, batch by batch.
type Backfiller struct {
	catalog   storage.CatalogRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	limiter   *rate.Limiter
}

// NewBackfiller creates a new backfiller.
// progress: where to write progress output (typically os.Stderr)
func NewBackfiller(catalog storage.CatalogRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Backfiller, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	processor := NewBatchProcessor(catalog, embedder, config.MaxRetries, config.RetryDelay)

	// One token per BatchDelay keeps batches evenly spaced; the first
	// batch runs immediately
	limiter := rate.NewLimiter(rate.Every(config.BatchDelay), 1)

	return &Backfiller{
		catalog:   catalog,
		config:    config,
		progress:  progress,
		processor: processor,
		limiter:   limiter,
	}, nil
}

// Run executes the backfill and returns a per-batch report. A batch failure
// is recorded and processing continues with the next batch; Run only returns
// an error when the catalog itself cannot be read or the context ends.
func (b *Backfiller) Run(ctx context.Context) (*Report, error) {
	pkgs, err := b.catalog.ListPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	if b.config.OnlyMissing {
		missing := pkgs[:0]
		for _, pkg := range pkgs {
			if len(pkg.Vector) == 0 {
				missing = append(missing, pkg)
			}
		}
		pkgs = missing
	}

	report := &Report{Total: len(pkgs)}
	if len(pkgs) == 0 {
		fmt.Fprintf(b.progress, "No packages to embed (0 packages)\n")
		return report, nil
	}

	fmt.Fprintf(b.progress, "Starting embedding backfill of %d packages (batch size: %d)\n",
		report.Total, b.config.BatchSize)

	tracker := NewProgressTracker(b.progress, report.Total, b.config.ReportInterval)
	tracker.Start()

	processed := 0
	for batchIdx := 0; processed < len(pkgs); batchIdx++ {
		end := processed + b.config.BatchSize
		if end > len(pkgs) {
			end = len(pkgs)
		}
		batch := pkgs[processed:end]

		if err := b.limiter.Wait(ctx); err != nil {
			return report, err
		}

		if err := b.processor.Process(ctx, batch); err != nil {
			ids := make([]core.ID, len(batch))
			for i, pkg := range batch {
				ids[i] = pkg.Id
			}
			report.Failed += len(batch)
			report.Errors = append(report.Errors, BatchError{Batch: batchIdx, Ids: ids, Err: err})
			fmt.Fprintf(b.progress, "\nBatch %d failed: %v\n", batchIdx, err)
		} else {
			report.Succeeded += len(batch)
		}

		processed = end
		tracker.Update(processed)
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(b.progress, "Backfill complete. %d embedded, %d failed in %v (%.1f packages/sec)\n",
		report.Succeeded, report.Failed, elapsed.Round(time.Second), float64(report.Total)/elapsed.Seconds())

	return report, nil
}
