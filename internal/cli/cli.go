package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"propsync/internal/config"
	"propsync/internal/propsync"
	"propsync/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	cfg     *config.Config
	verbose bool
	quiet   bool
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{cfg: config.Load()}

	rootCmd := &cobra.Command{
		Use:           "propsync",
		Short:         "Keep message bundle translations in sync with the base bundle",
		Long:          "Adds the keys of a base messages_*.properties file to every sibling translation, marking untranslated entries with a TODO block.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case opts.verbose:
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			case opts.quiet:
				zerolog.SetGlobalLevel(zerolog.WarnLevel)
			default:
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfg.BaseFile, "base", opts.cfg.BaseFile, "Base properties file name")
	flags.StringVar(&opts.cfg.FilePrefix, "prefix", opts.cfg.FilePrefix, "File name prefix of translation files")
	flags.StringVar(&opts.cfg.FileSuffix, "suffix", opts.cfg.FileSuffix, "File name suffix of translation files")
	flags.StringSliceVar(&opts.cfg.CommentPrefixes, "comment-prefix", opts.cfg.CommentPrefixes, "Line prefixes that mark comments")
	flags.IntVar(&opts.cfg.WorkerCount, "workers", opts.cfg.WorkerCount, "Directories processed in parallel")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Only log warnings and errors")

	rootCmd.AddCommand(syncCmd(opts))
	rootCmd.AddCommand(checkCmd(opts))

	return rootCmd
}

func syncCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync [directory...]",
		Short: "Add missing keys to every translation file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), opts.cfg, dirsOrDefault(args, opts.cfg), dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing files")
	return cmd
}

func checkCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check [directory...]",
		Short: "Report missing and obsolete keys without modifying files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), opts.cfg, dirsOrDefault(args, opts.cfg), asJSON, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func dirsOrDefault(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return uniqueDirs(args)
	}
	return []string{cfg.Dir}
}

// uniqueDirs drops arguments naming a directory already listed, so no two
// workers rewrite the same files.
func uniqueDirs(dirs []string) []string {
	seen := make(map[string]struct{}, len(dirs))
	unique := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		key, err := filepath.Abs(dir)
		if err != nil {
			key = filepath.Clean(dir)
		}
		if resolved, err := filepath.EvalSymlinks(key); err == nil {
			key = resolved
		}
		if _, ok := seen[key]; ok {
			log.Debug().Str("dir", dir).Msg("Ignoring repeated directory")
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, dir)
	}
	return unique
}

// setupContext creates a cancellable context with signal handling.
func setupContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func newProcessor(cfg *config.Config, dryRun bool) *propsync.Processor {
	return propsync.NewProcessor(propsync.Options{
		Prefix:          cfg.FilePrefix,
		Suffix:          cfg.FileSuffix,
		CommentPrefixes: cfg.CommentPrefixes,
		DryRun:          dryRun,
	})
}

// runDirs runs fn for every directory on the worker pool and returns the
// reports in argument order. The first error in argument order wins.
func runDirs(ctx context.Context, cfg *config.Config, dirs []string,
	fn func(ctx context.Context, dir string) (*propsync.Report, error)) ([]*propsync.Report, error) {

	pool := worker.NewPool[string, *propsync.Report](cfg.WorkerCount, fn)
	tasks := pool.Execute(ctx, dirs)

	reports := make([]*propsync.Report, 0, len(tasks))
	var firstErr error
	for _, t := range tasks {
		if t.Result != nil {
			reports = append(reports, t.Result)
		}
		if t.Err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", t.Input, t.Err)
		}
	}
	return reports, firstErr
}

// runSync handles the `sync` command.
func runSync(parent context.Context, cfg *config.Config, dirs []string, dryRun bool) error {
	ctx, cancel := setupContext(parent)
	defer cancel()

	proc := newProcessor(cfg, dryRun)
	reports, err := runDirs(ctx, cfg, dirs, func(ctx context.Context, dir string) (*propsync.Report, error) {
		return proc.Process(ctx, dir, cfg.BaseFile)
	})

	for _, r := range reports {
		counts := make(map[propsync.Status]int)
		for _, f := range r.Files {
			counts[f.Status]++
		}
		log.Info().
			Str("dir", r.Dir).
			Int("synced", counts[propsync.StatusSynced]).
			Int("unchanged", counts[propsync.StatusUnchanged]).
			Int("would_change", counts[propsync.StatusWouldChange]).
			Int("skipped", counts[propsync.StatusSkipped]).
			Bool("dry_run", dryRun).
			Msg("Synchronization complete")
	}

	if err != nil {
		log.Error().Err(err).Msg("Synchronization failed")
	}
	return err
}

// runCheck handles the `check` command.
func runCheck(parent context.Context, cfg *config.Config, dirs []string, asJSON bool, out io.Writer) error {
	ctx, cancel := setupContext(parent)
	defer cancel()

	proc := newProcessor(cfg, true)
	reports, err := runDirs(ctx, cfg, dirs, func(ctx context.Context, dir string) (*propsync.Report, error) {
		report, err := proc.Check(ctx, dir, cfg.BaseFile)
		if errors.Is(err, propsync.ErrOutOfSync) {
			return report, nil
		}
		return report, err
	})
	if err != nil {
		log.Error().Err(err).Msg("Check failed")
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(reports); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	} else {
		writeText(out, reports)
	}

	for _, r := range reports {
		if r.OutOfSync() {
			return propsync.ErrOutOfSync
		}
	}
	return nil
}

func writeText(out io.Writer, reports []*propsync.Report) {
	for _, r := range reports {
		for _, f := range r.Files {
			if f.Status == propsync.StatusSkipped {
				fmt.Fprintf(out, "%s: skipped (%s)\n", f.Path, f.Reason)
				continue
			}
			if len(f.Missing) == 0 && len(f.Obsolete) == 0 {
				fmt.Fprintf(out, "%s: in sync\n", f.Path)
				continue
			}
			fmt.Fprintf(out, "%s: %d missing, %d obsolete\n", f.Path, len(f.Missing), len(f.Obsolete))
			for _, key := range f.Missing {
				fmt.Fprintf(out, "  + %s\n", key)
			}
			for _, key := range f.Obsolete {
				fmt.Fprintf(out, "  - %s\n", key)
			}
		}
	}
}
