package cli

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/orderform-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driven/config/memory"
	pdfrender "github.com/custodia-labs/orderform-cli/internal/adapters/driven/render/pdf"
	textrender "github.com/custodia-labs/orderform-cli/internal/adapters/driven/render/text"
	memstore "github.com/custodia-labs/orderform-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/orderform-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/orderform-cli/internal/core/domain"
	"github.com/custodia-labs/orderform-cli/internal/core/ports/driven"
	"github.com/custodia-labs/orderform-cli/internal/core/services"
	"github.com/custodia-labs/orderform-cli/internal/logger"
	"github.com/custodia-labs/orderform-cli/internal/normalisers"
	"github.com/custodia-labs/orderform-cli/internal/postprocessors"
)

// Options controls how services are wired.
type Options struct {
	// ConfigDir holds config.toml. Empty means ~/.orderform.
	ConfigDir string

	// Ephemeral keeps settings and history in memory instead of on disk.
	Ephemeral bool
}

// Services bundles the core services shared by the CLI, TUI and MCP server.
type Services struct {
	Schema     *domain.FieldSchema
	Extraction *services.ExtractionService
	Settings   *services.SettingsService
	Sessions   *services.SessionFactory
	History    *services.HistoryService

	closers []func() error
}

// Close releases the storage held by the services.
func (s *Services) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}

// NewServices wires the driven adapters into the core services.
func NewServices(opts Options) (*Services, error) {
	var store driven.ConfigStore
	var history driven.HistoryStore
	var closers []func() error
	if opts.Ephemeral {
		history = memstore.NewHistoryStore()
		store = memory.NewConfigStore()
	} else {
		fileStore, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("open settings: %w", err)
		}
		logger.Debug("settings: %s", fileStore.Path())
		store = fileStore

		dataDir := ""
		if opts.ConfigDir != "" {
			dataDir = filepath.Join(opts.ConfigDir, "data")
		}
		db, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		logger.Debug("history: %s", db.Path())
		history = db.HistoryStore()
		closers = append(closers, db.Close)
	}
	settings := services.NewSettingsService(store)

	current, err := settings.Get()
	if err != nil {
		for _, c := range closers {
			_ = c()
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	registry := normalisers.NewRegistry()
	normalisers.RegisterDefaults(registry)

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)
	pipeline := postprocessors.BuildPipeline(processors, current.Pipeline)
	logger.Debug("text pipeline: %v", pipeline.Names())

	schema := domain.DefaultSchema()
	extraction := services.NewExtractionService(services.NewFieldExtractor(schema), registry, pipeline)

	return &Services{
		Schema:     schema,
		Extraction: extraction,
		Settings:   settings,
		Sessions:   services.NewSessionFactory(schema, extraction, settings, pdfrender.New(), textrender.New()),
		History:    services.NewHistoryService(history),
		closers:    closers,
	}, nil
}
