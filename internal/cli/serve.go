package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/glorpus-work/kitctl/internal/logger"
	"github.com/glorpus-work/kitctl/pkg/console"
	"github.com/glorpus-work/kitctl/pkg/restart"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long serve waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	listen    string
	restarted bool
	noWatch   bool
}

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the management console API",
		Long: `Serve the management console's plugin API for the prototype project.

The console reports operations as completed once it has been restarted after
the package manager changed the project. Pass --restarted (or set
KITCTL_RESTARTED=1) when a supervisor restarts it for that reason. Unless
--no-watch is given, a change to the manifest that settles counts as a
restart too.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(commandContext(cmd), opts)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", "", "Address to listen on (defaults to config)")
	cmd.Flags().BoolVar(&opts.restarted, "restarted", false, "Start as restarted after a dependency change")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false, "Do not watch the manifest for changes")

	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	signal := restart.Process
	if opts.restarted {
		restart.SetRestarted()
	}
	restart.FromEnv(signal, os.Getenv)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := newApp(cfg, appOptions{signal: signal, metrics: reg})
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if !opts.noWatch {
		w := restart.NewWatcher(cfg.ManifestPath(), cfg.Settings.WatchInterval, cfg.Settings.WatchSettle, signal)
		go w.Run(ctx)
	}

	srv := console.New(console.Options{
		Prefix:     cfg.Console.PathPrefix,
		Operations: a.orch,
		Packages:   a.packages,
		Commands:   a.commands,
		ViewsDir:   cfg.ViewsDir(),
		Gatherer:   reg,
		Ready: func() error {
			_, err := a.manifest.Read()
			return err
		},
	})

	listen := opts.listen
	if listen == "" {
		listen = cfg.Console.Listen
	}
	httpServer := &http.Server{
		Addr:              listen,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Console listening", logger.Fields{
			"address":   listen,
			"prefix":    cfg.Console.PathPrefix,
			"project":   cfg.Project.Dir,
			"restarted": restart.HasRestarted(),
		})
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Console stopped", logger.Fields{"running_operations": a.launcher.Running()})
	return nil
}
