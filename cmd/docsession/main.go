// Command docsession inspects and maintains a session store kept in a MongoDB
// collection or under a Redis key prefix.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/docsession/core/health"
	"github.com/dmitrymomot/docsession/core/logger"
	"github.com/dmitrymomot/docsession/core/session"
)

var (
	// errConfirmationRequired is returned by clear when --yes is missing.
	errConfirmationRequired = errors.New("refusing to clear sessions without --yes")
	errUnknownBackend       = errors.New("unknown backend")
)

const (
	backendMongo = "mongo"
	backendRedis = "redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openers := map[string]opener{
		backendMongo: openMongo,
		backendRedis: openRedis,
	}
	if err := newRootCmd(openers).ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	backend       string
	database      string
	collection    string
	keyPrefix     string
	sessionConfig string
	logLevel      string
	logFormat     string
}

func newRootCmd(openers map[string]opener) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "docsession",
		Short:         "Inspect and maintain a MongoDB or Redis session store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.backend, "backend", backendMongo, "session backend: mongo|redis")
	pf.StringVar(&flags.database, "database", "", "database name (overrides DOCSESSION_DATABASE)")
	pf.StringVar(&flags.collection, "collection", "", "collection name (overrides DOCSESSION_COLLECTION)")
	pf.StringVar(&flags.keyPrefix, "key-prefix", "", "redis key prefix (overrides DOCSESSION_KEY_PREFIX)")
	pf.StringVar(&flags.sessionConfig, "session-config", "", "YAML file with session field mapping and expiration")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	pf.StringVar(&flags.logFormat, "log-format", string(logger.FormatText), "log format: text|json")

	// withApp opens the backend, runs fn and releases the backend afterwards.
	withApp := func(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
		level, err := logger.ParseLevel(flags.logLevel)
		if err != nil {
			return err
		}
		format, err := logger.ParseFormat(flags.logFormat)
		if err != nil {
			return err
		}
		open, ok := openers[flags.backend]
		if !ok {
			return fmt.Errorf("%w: %q", errUnknownBackend, flags.backend)
		}

		log := logger.New(
			logger.WithLevel(level),
			logger.WithFormat(format),
			logger.WithOutput(cmd.ErrOrStderr()),
		)
		ctx := cmd.Context()

		a, err := open(ctx, flags, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.close(context.WithoutCancel(ctx)); err != nil {
				log.WarnContext(ctx, "Failed to close backend", logger.Error(err))
			}
		}()

		a.store = session.WithLogging(a.store, log)
		a.log = log
		return fn(ctx, a)
	}

	root.AddCommand(
		newLengthCmd(withApp),
		newClearCmd(withApp),
		newGetCmd(withApp),
		newDestroyCmd(withApp),
		newHealthCmd(withApp),
	)
	return root
}

type runner func(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error

func newLengthCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "length",
		Short: "Print the number of stored sessions, expired ones included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, a *app) error {
				n, err := a.store.Length(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
}

func newClearCmd(run runner) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every session record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errConfirmationRequired
			}
			return run(cmd, func(ctx context.Context, a *app) error {
				if err := a.store.Clear(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cleared")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion of all sessions")
	return cmd
}

func newGetCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "get <sid>",
		Short: "Print the data of a live session as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app) error {
				data, err := a.store.Get(ctx, args[0])
				if errors.Is(err, session.ErrNotFound) {
					return fmt.Errorf("session %q: %w", args[0], err)
				}
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			})
		},
	}
}

func newDestroyCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <sid>",
		Short: "Delete a single session; succeeds when it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, a *app) error {
				if err := a.store.Destroy(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "destroyed")
				return nil
			})
		},
	}
}

func newHealthCmd(run runner) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Ping the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(ctx context.Context, a *app) error {
				status, err := health.Readiness(ctx, a.log, a.checks...)
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), status)
				return err
			})
		},
	}
}

// app is what every subcommand operates on.
type app struct {
	store  session.Store[map[string]any]
	checks []health.Check
	close  func(context.Context) error
	log    *slog.Logger
}

// opener builds an app from flags and environment.
type opener func(ctx context.Context, flags *rootFlags, log *slog.Logger) (*app, error)
