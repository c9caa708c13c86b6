package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"discord-mcp/internal/app"
	"discord-mcp/internal/domain"
)

type cliOptions struct {
	configPath  string
	logLevel    string
	metricsAddr string

	cfg    app.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := cliOptions{
		logLevel:    domain.DefaultLogLevel,
		metricsAddr: domain.DefaultObservabilityListenAddress,
		logger:      zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "discord-mcp",
		Short:         "MCP server exposing the Discord REST API as tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to an optional YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-addr", opts.metricsAddr, "serve /metrics on this address")

	root.AddCommand(
		newServeCmd(&opts),
		newToolsCmd(&opts),
		newVersionCmd(),
	)

	return root
}

func (o *cliOptions) load(cmd *cobra.Command) error {
	cfg, err := app.LoadConfig(app.LoadOptions{
		Path:  o.configPath,
		Flags: cmd.Flags(),
	})
	if err != nil {
		return exitWithCode(2, err.Error())
	}
	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		return exitWithCode(2, err.Error())
	}
	o.cfg = cfg
	o.logger = logger
	return nil
}

func newServeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool catalog over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(parent context.Context, opts *cliOptions) error {
	ctx, cancel := signalAwareContext(parent)
	defer cancel()

	application, err := app.InitializeApplication(opts.cfg, opts.logger)
	if err != nil {
		return err
	}
	if err := application.Run(ctx); err != nil {
		opts.logger.Error("server stopped", zap.Error(err))
		return err
	}
	return nil
}

func newToolsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "Print the tool catalog as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.WriteCatalog(cmd.OutOrStdout(), app.NewToolRegistry(opts.cfg))
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Printing the version needs no configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "discord-mcp %s (%s)\n", app.Version, app.Build)
		},
	}
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
