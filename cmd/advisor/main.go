package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/campusworks/advisor-agent/internal/advising"
	"github.com/campusworks/advisor-agent/internal/config"
	"github.com/campusworks/advisor-agent/internal/provider"
	"github.com/campusworks/advisor-agent/internal/runner"
	"github.com/campusworks/advisor-agent/internal/telemetry"
	"github.com/campusworks/advisor-agent/internal/transcript"
	"github.com/campusworks/advisor-agent/tools"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type cliOptions struct {
	configPath     string
	model          string
	maxIterations  int
	transcriptPath string
	verbose        bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	cmd := &cobra.Command{
		Use:           "advisor \"question\"",
		Short:         "Course-scheduling agent backed by the Anthropic Messages API",
		Long:          "advisor answers course-scheduling questions by letting the model call enrollment tools in a bounded loop.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runAdvise(cmd.Context(), opts, args[0]); err != nil {
				fmt.Fprintf(os.Stderr, "advisor: %v\n", err)
				return err
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "advisor.yaml", "configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging to stderr")
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "model identifier (overrides config)")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "model invocation bound (overrides config)")
	cmd.Flags().StringVar(&opts.transcriptPath, "transcript", "", "write the full conversation record to this JSON file")
	cmd.AddCommand(newToolsCmd(opts))
	return cmd
}

func runAdvise(ctx context.Context, opts *cliOptions, question string) error {
	setupLogging(opts.verbose)

	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		return errors.New("ANTHROPIC_API_KEY is not set")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.model != "" {
		cfg.Model = opts.model
	}
	if opts.maxIterations > 0 {
		cfg.MaxIterations = opts.maxIterations
	}

	planner, cleanup, err := buildPlanner(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	dispatcher, err := buildDispatcher(planner)
	if err != nil {
		return err
	}

	client := provider.NewAnthropicClient(anthropic.Model(cfg.Model))
	ctrl := runner.New(client, dispatcher, cfg.SystemPrompt,
		runner.WithMaxIterations(cfg.MaxIterations),
		runner.WithSink(telemetry.EventSink{}),
		runner.WithLogger(slog.Default()),
	)

	result, runErr := ctrl.Run(ctx, question)

	if opts.transcriptPath != "" && result.Log != nil {
		rec := transcript.Record{
			RunID:      result.RunID,
			Outcome:    result.Outcome.String(),
			Iterations: result.Iterations,
			Turns:      result.Log.Turns(),
		}
		if err := transcript.Save(opts.transcriptPath, rec); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	switch result.Outcome {
	case runner.OutcomeFinalAnswer:
		fmt.Println(result.Answer)
		return nil
	case runner.OutcomeIterationLimit:
		fmt.Printf("No final answer after %d iterations; giving up.\n", result.Iterations)
		return nil
	default:
		return runErr
	}
}

func newToolsCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools advertised to the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			planner := advising.NewPlanner(advising.NewMemoryStore(cfg.Catalog), cfg.CreditLimit)
			registry, err := tools.CourseRegistry(planner)
			if err != nil {
				return err
			}
			for _, def := range registry.Schemas() {
				fmt.Printf("%-18s %s\n", def.Name, def.Description)
			}
			return nil
		},
	}
}

// buildPlanner wires the configured store behind a Planner. The cleanup
// closes whatever the store holds open.
func buildPlanner(ctx context.Context, cfg config.Config) (*advising.Planner, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		store, err := advising.OpenSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Seed(ctx, cfg.Catalog); err != nil {
			store.Close()
			return nil, nil, err
		}
		return advising.NewPlanner(store, cfg.CreditLimit), func() { store.Close() }, nil
	default:
		store := advising.NewMemoryStore(cfg.Catalog)
		return advising.NewPlanner(store, cfg.CreditLimit), func() {}, nil
	}
}

func buildDispatcher(planner *advising.Planner) (*runner.Dispatcher, error) {
	registry, err := tools.CourseRegistry(planner)
	if err != nil {
		return nil, err
	}
	return runner.NewDispatcher(registry, nil)
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
