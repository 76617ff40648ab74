package cli

import (
	"fmt"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/auth"
	"github.com/glorpus-work/kitctl/pkg/command"
	"github.com/glorpus-work/kitctl/pkg/config"
	"github.com/glorpus-work/kitctl/pkg/hooks"
	"github.com/glorpus-work/kitctl/pkg/launcher"
	"github.com/glorpus-work/kitctl/pkg/manifest"
	"github.com/glorpus-work/kitctl/pkg/orchestrator"
	"github.com/glorpus-work/kitctl/pkg/packages"
	"github.com/glorpus-work/kitctl/pkg/registry"
	"github.com/glorpus-work/kitctl/pkg/restart"
	"github.com/glorpus-work/kitctl/pkg/state"
	"github.com/glorpus-work/kitctl/pkg/status"
	"github.com/prometheus/client_golang/prometheus"
)

// app holds the components one kitctl invocation works with.
type app struct {
	cfg        *config.Config
	manifest   *manifest.FileReader
	registry   *registry.HTTPClient
	packages   *packages.Resolver
	commands   *command.Resolver
	journal    *state.FileJournal
	launcher   *launcher.Launcher
	reconciler *status.Reconciler
	orch       *orchestrator.Orchestrator
}

// appOptions carries what differs between the console and one-shot commands.
type appOptions struct {
	signal  *restart.Signal
	metrics prometheus.Registerer
	onExit  func(launcher.Exit)
	onEvent func(orchestrator.Event)
}

func newApp(cfg *config.Config, opts appOptions) (*app, error) {
	if opts.signal == nil {
		opts.signal = restart.Process
	}

	a := &app{cfg: cfg, manifest: manifest.NewFileReader(cfg.ManifestPath())}
	a.registry = registry.NewHTTPClient(registry.Options{
		URL:      cfg.Registry.URL,
		Timeout:  cfg.Registry.Timeout,
		Retries:  cfg.RegistryRetries(),
		CacheDir: cfg.RegistryCacheDir(),
		CacheTTL: cfg.Registry.CacheTTL,
		Auth:     auth.New(cfg.RegistryCredentials()),
	})
	a.packages = packages.NewResolver(a.manifest, a.registry, packages.Options{
		ProjectDir:       cfg.Project.Dir,
		ModulesDir:       cfg.ModulesDir(),
		CatalogPath:      cfg.KnownPluginsPath(),
		PluginConfigFile: cfg.Project.PluginConfigFile,
	})
	a.commands = command.NewResolver(cfg.Project.PackageManager, cfg.Project.Dir)

	journal, err := state.NewFileJournal(cfg.JournalPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open operation journal: %w", err)
	}
	a.journal = journal
	a.reconciler = status.NewReconciler(a.manifest, a.packages, opts.signal, journal).WithLiveness(launcher.Alive)

	lifecycle := hooks.NewHookManager()
	if err := hooks.LoadHooksFromDir(lifecycle, cfg.HooksDir()); err != nil {
		return nil, err
	}

	a.orch = &orchestrator.Orchestrator{
		Packages:   a.packages,
		Commands:   a.commands,
		Reconciler: a.reconciler,
		Journal:    journal,
		Lifecycle:  lifecycle,
		ProjectDir: cfg.Project.Dir,
		Hooks:      orchestrator.Hooks{OnEvent: opts.onEvent},
	}
	if opts.metrics != nil {
		a.orch.Metrics = orchestrator.NewMetrics(opts.metrics)
	}

	l, err := launcher.New(launcher.ExecRunner{}, launcher.Options{
		PoolSize: cfg.Settings.MaxConcurrentLaunches,
		LogDir:   cfg.LogsDir(),
		OnExit: func(exit launcher.Exit) {
			a.orch.HandleExit(exit)
			if opts.onExit != nil {
				opts.onExit(exit)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	a.launcher = l
	a.orch.Launcher = l

	logger.Debug("Initialized kitctl", logger.Fields{
		"project":         cfg.Project.Dir,
		"package_manager": cfg.Project.PackageManager,
		"registry":        cfg.Registry.URL,
	})
	return a, nil
}

func (a *app) Close() {
	a.launcher.Close()
}
