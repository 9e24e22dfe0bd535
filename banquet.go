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


package banquet

import (
	"io"
	"log/slog"

	"github.com/poiesic/banquet/ai"
	"github.com/poiesic/banquet/ai/openai"
	"github.com/poiesic/banquet/backfill"
	"github.com/poiesic/banquet/ingest"
	"github.com/poiesic/banquet/search"
	"github.com/poiesic/banquet/storage"
	"github.com/poiesic/banquet/storage/badger"
)

// Marketplace bundles the catalog store and AI provider behind one handle
// and hands out the pipeline components wired to them.
type Marketplace struct {
	catalog  storage.CatalogRepository
	provider ai.AIProvider
	logger   *slog.Logger
}

// MarketplaceOption configures a Marketplace.
type MarketplaceOption func(*marketplaceOptions)

type marketplaceOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) MarketplaceOption {
	return func(o *marketplaceOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithInMemoryCatalog keeps the catalog in memory instead of on disk.
func WithInMemoryCatalog() MarketplaceOption {
	return func(o *marketplaceOptions) {
		o.inMemory = true
	}
}

// NewMarketplace opens the catalog at filePath and connects the AI provider.
func NewMarketplace(filePath string, opts ...MarketplaceOption) (*Marketplace, error) {
	// Apply options
	options := &marketplaceOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create catalog repository
	catalog, err := badger.NewCatalogRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		catalog.Close()
		return nil, err
	}

	return &Marketplace{
		catalog:  catalog,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider and the catalog, including its backend.
func (m *Marketplace) Close() error {
	// Close AI provider first
	if err := m.provider.Close(); err != nil {
		m.logger.Error("error closing AI provider", "err", err)
	}

	if err := m.catalog.Close(); err != nil {
		m.logger.Error("error closing catalog", "err", err)
		return err
	}
	return nil
}

// Catalog returns the package catalog repository.
func (m *Marketplace) Catalog() storage.CatalogRepository {
	return m.catalog
}

// NewSearcher creates a searcher over the catalog.
func (m *Marketplace) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	provider, err := search.NewCatalogProvider(m.catalog, m.provider.Embedder())
	if err != nil {
		return nil, err
	}
	return search.NewSearcher(provider, m.provider, opts...)
}

// NewIngestPipeline creates an ingestion pipeline feeding the catalog.
func (m *Marketplace) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(m.catalog, m.provider, opts...)
}

// NewBackfiller creates an embedding backfiller over the catalog.
// progress may be nil to suppress output.
func (m *Marketplace) NewBackfiller(config *backfill.Config, progress io.Writer) (*backfill.Backfiller, error) {
	return backfill.NewBackfiller(m.catalog, m.provider.Embedder(), config, progress)
}
