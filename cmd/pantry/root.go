package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/pantry-api/internal/config"
	"github.com/phrazzld/pantry-api/internal/platform/logger"
	"github.com/phrazzld/pantry-api/internal/service"
	"github.com/spf13/cobra"
)

// appFactory builds the application once configuration and logging are ready.
type appFactory func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error)

// cli carries state shared by every command of one invocation.
type cli struct {
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer

	cfg    *config.Config
	logger *slog.Logger

	newApp appFactory
	app    *application
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "pantry",
		Short: "Score how ready recipes are to cook against a pantry",
		Long: `pantry keeps recipes and pantries as documents and compares them.

Readiness is the mean, over a recipe's ingredients, of available / required.
Over-supply is not capped, so a score above 1 means more than enough stock.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default ./config.yaml)")

	root.AddCommand(
		newClassifyCmd(c),
		newEvaluateCmd(c),
		newMigrateCmd(c),
		newRecipeCmd(c),
		newPantryCmd(c),
		newReadinessCmd(c),
		newRankCmd(c),
	)
	return root
}

// execute runs the CLI and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr, newApp: newApplication}
	return c.run(context.Background(), args)
}

func (c *cli) run(ctx context.Context, args []string) int {
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(c.stderr, "Error:", err)
		return 1
	}
	return 0
}

// setup loads configuration and installs the structured logger.
func (c *cli) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if c.cfgFile != "" {
		cfg, err = config.LoadFile(c.cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel, Output: c.stderr})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	c.cfg = cfg
	c.logger = l
	l.Debug("configuration loaded",
		"log_level", cfg.Server.LogLevel,
		"store", storeKind(cfg),
		"collection", cfg.Store.Collection)
	return nil
}

// service returns the readiness service, building the application on first use.
func (c *cli) service(ctx context.Context) (service.ReadinessService, error) {
	if c.app == nil {
		app, err := c.newApp(ctx, c.cfg, c.logger)
		if err != nil {
			return nil, err
		}
		c.app = app
	}
	return c.app.service, nil
}

// withService runs fn with the service and releases the application afterwards.
func (c *cli) withService(cmd *cobra.Command, fn func(ctx context.Context, svc service.ReadinessService) error) error {
	ctx := logger.WithLogger(cmd.Context(), c.logger.With("command", cmd.CommandPath()))
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if c.app.release != nil {
			if err := c.app.release(); err != nil {
				c.logger.Error("failed to release application", "error", err)
			}
			c.app = nil
		}
	}()
	return fn(ctx, svc)
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func storeKind(cfg *config.Config) string {
	if cfg.UsesPostgres() {
		return "postgres"
	}
	return "memory"
}
