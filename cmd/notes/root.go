package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes"
	"github.com/aretw0/notes/internal/config"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose     bool
	file        string
	adapter     string
	strict      bool
	lock        bool
	lockTimeout time.Duration
	readOnly    bool
}

// newRootCmd builds the command tree. A fresh tree per invocation keeps flag
// state from leaking between runs.
func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "notes",
		Short: "Create, list, read and remove short text notes",
		Long: `notes keeps short text notes, each identified by a unique title,
in a single file (notes.json in the current directory by default).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(logger)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVarP(&g.file, "file", "f", "", "Store file (default notes.json, or the file named in .notes.yaml)")
	pf.StringVar(&g.adapter, "adapter", "", "Storage adapter: fs or sqlite (default: by file extension)")
	pf.BoolVar(&g.strict, "strict", false, "Fail on corrupt or unreadable store instead of treating it as empty")
	pf.BoolVar(&g.lock, "lock", false, "Guard add/remove with a lock file")
	pf.DurationVar(&g.lockTimeout, "lock-timeout", config.DefaultLockTimeout, "How long to wait for the lock")
	pf.BoolVar(&g.readOnly, "read-only", false, "Reject add and remove")

	rootCmd.AddCommand(
		newAddCmd(g),
		newRemoveCmd(g),
		newListCmd(g),
		newReadCmd(g),
		newWatchCmd(g),
		newInfoCmd(g),
		newVersionCmd(),
	)
	return rootCmd
}

// resolve merges .notes.yaml, .env, the environment and any flags the user
// set explicitly. Flags win.
func (g *globalFlags) resolve(cmd *cobra.Command) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(wd)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		// Flag paths are relative to where the user is, not to .notes.yaml.
		cfg.File = g.file
		cfg.Dir = wd
	}
	if flags.Changed("adapter") {
		cfg.Adapter = g.adapter
	}
	if flags.Changed("strict") {
		cfg.Strict = g.strict
	}
	if flags.Changed("lock") {
		cfg.Lock = g.lock
	}
	if flags.Changed("lock-timeout") {
		cfg.LockTimeout = g.lockTimeout
	}
	if flags.Changed("read-only") {
		cfg.ReadOnly = g.readOnly
	}
	return cfg, nil
}

// service builds the note service for this invocation.
func (g *globalFlags) service(cmd *cobra.Command) (*notes.Service, config.Config, error) {
	cfg, err := g.resolve(cmd)
	if err != nil {
		return nil, cfg, configError(err)
	}

	path := cfg.StorePath()
	slog.Debug("opening store", "path", path, "adapter", cfg.Adapter, "config", cfg.Source)

	svc, err := notes.New(path,
		notes.WithAdapter(cfg.Adapter),
		notes.WithStrict(cfg.Strict),
		notes.WithLocking(cfg.Lock),
		notes.WithLockTimeout(cfg.LockTimeout),
		notes.WithReadOnly(cfg.ReadOnly),
		notes.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, cfg, configError(err)
	}
	return svc, cfg, nil
}
