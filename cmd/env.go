package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aisurvival/internal/config"
	"github.com/abhisek/aisurvival/internal/course"
	"github.com/abhisek/aisurvival/internal/llm"
	"github.com/abhisek/aisurvival/internal/logging"
	"github.com/abhisek/aisurvival/internal/pipeline"
	"github.com/abhisek/aisurvival/internal/refdoc"
	"github.com/abhisek/aisurvival/internal/store"
)

// loadConfig reads the config file named by --config and applies the
// --db and --log overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.DB = p
	}
	if m, _ := cmd.Flags().GetString("log"); m != "" {
		cfg.Log.Mode = m
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, falling back to
// AISURVIVAL_DB and then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.Store.DB != "" {
		return cfg.Store.DB, store.EnsureDir(cfg.Store.DB)
	}
	return store.DefaultDBPath()
}

// openStore loads the config and opens the database, for commands that
// only read or clear persisted data.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// runtime holds everything a pipeline run needs.
type runtime struct {
	cfg      config.Config
	log      *logging.Logger
	store    *store.Store
	provider llm.Provider
	resolver *course.Resolver
}

func newRuntime(ctx context.Context, cmd *cobra.Command) (*runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log.Mode)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		st.Close()
		return nil, err
	}

	log.Debug("runtime ready",
		"provider", cfg.LLM.Provider,
		"model", provider.ModelID(),
		"document", cfg.Document.Path,
		"db", dbPath)

	return &runtime{
		cfg:      cfg,
		log:      log,
		store:    st,
		provider: provider,
		resolver: course.NewResolver(cfg.Assets.Dir),
	}, nil
}

// newSession starts a session with a fresh reference cache.
func (r *runtime) newSession() *pipeline.Session {
	return pipeline.NewSession(newReferenceCache(r.cfg, r.log))
}

// newReferenceCache builds the reference document cache from the document
// settings.
func newReferenceCache(cfg config.Config, log *logging.Logger) *refdoc.Cache {
	src := refdoc.NewPDFSource()
	if cfg.Document.Pdftoppm != "" {
		src.PdftoppmPath = cfg.Document.Pdftoppm
	}
	if cfg.Document.MaxImageEdge > 0 {
		src.MaxImageEdge = cfg.Document.MaxImageEdge
	}
	return refdoc.NewCache(src, cfg.Document.Path, cfg.Document.DPI, log)
}

// orchestrator builds an Orchestrator that logs and records every run.
func (r *runtime) orchestrator(opts ...pipeline.Option) *pipeline.Orchestrator {
	base := []pipeline.Option{
		pipeline.WithLogger(r.log),
		pipeline.WithRecorder(pipeline.NewStoreRecorder(r.store.RunRepo())),
	}
	return pipeline.New(r.provider, r.cfg.Report, r.resolver, append(base, opts...)...)
}

func (r *runtime) Close() {
	r.log.Sync()
	r.store.Close()
}
