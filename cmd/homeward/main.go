package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/time/rate"

	"github.com/bamsammich/homeward/internal/config"
	"github.com/bamsammich/homeward/internal/engine"
	"github.com/bamsammich/homeward/internal/event"
	"github.com/bamsammich/homeward/internal/filter"
	"github.com/bamsammich/homeward/internal/plan"
	"github.com/bamsammich/homeward/internal/scan"
	"github.com/bamsammich/homeward/internal/stats"
	"github.com/bamsammich/homeward/internal/stddir"
	"github.com/bamsammich/homeward/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

// filterFlag is a repeatable pflag.Value that preserves the command-line
// order of --exclude and --include rules by appending to a shared chain.
type filterFlag struct {
	chain   *filter.Chain
	include bool
}

func (*filterFlag) String() string { return "" }
func (*filterFlag) Type() string   { return "pattern" }

func (f *filterFlag) Set(val string) error {
	if f.include {
		return f.chain.AddInclude(val)
	}
	return f.chain.AddExclude(val)
}

// options holds the parsed command line.
type options struct {
	jobs          int
	home          string
	dryRun        bool
	yes           bool
	onConflict    string
	dropIdentical bool
	bwLimit       string
	deleteSource  bool
	logFile       string
	verbose       bool
	quiet         bool
	noProgress    bool
	showVersion   bool
	excludeFrom   string
	filters       *filter.Chain
}

func run() int {
	opts := options{filters: filter.NewChain()}

	rootCmd := &cobra.Command{
		Use:   "homeward [flags] <backup-dir>",
		Short: "Restore Desktop, Documents, Pictures and friends from a backup into your home",
		Long: `homeward searches a backup tree for the standard home folders (Desktop,
Documents, Downloads, Music, Pictures, Public, Templates, Videos) and copies
their contents into your home directory. Existing files are never overwritten:
a clashing file is saved next to the original with a .restore name, and you
choose afterwards which version to keep.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(os.Stdout, "homeward %s\n", version)
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := applyConfigDefaults(cmd.Flags(), cfg.Defaults, &opts); err != nil {
				return err
			}
			ui.ApplyTheme(cfg.Theme)

			closeLog, err := setupLogging(opts)
			if err != nil {
				return err
			}
			defer closeLog()

			return restore(cmd.Context(), args[0], opts)
		},
	}

	f := rootCmd.Flags()
	f.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	f.IntVarP(&opts.jobs, "jobs", "j", engine.DefaultWorkers, "number of parallel copy workers")
	f.StringVar(&opts.home, "home", "", "restore into `DIR`/<Folder> instead of the XDG user directories")
	f.BoolVarP(&opts.dryRun, "dry-run", "n", false, "show what would be restored without writing")
	f.BoolVarP(&opts.yes, "yes", "y", false, "never prompt; pick the shallowest duplicate and proceed")
	f.StringVar(&opts.onConflict, "on-conflict", "ask",
		"what to do with conflicts: ask, adopt-new, keep-original or leave-both")
	f.BoolVar(&opts.dropIdentical, "drop-identical", false,
		"discard restored copies that are byte-identical to the existing file")
	f.Var(&filterFlag{chain: opts.filters}, "exclude", "skip paths matching `PATTERN` (repeatable)")
	f.Var(&filterFlag{chain: opts.filters, include: true}, "include",
		"keep paths matching `PATTERN` even if a later --exclude matches (repeatable)")
	f.StringVar(&opts.excludeFrom, "exclude-from", "", "read filter rules from `FILE`")
	f.StringVar(&opts.bwLimit, "bwlimit", "", "bandwidth limit (e.g. 50M, 1G)")
	f.BoolVar(&opts.deleteSource, "delete-source", false,
		"delete the restored folders from the backup when everything copied")
	f.StringVar(&opts.logFile, "log", "", "write structured JSON log to `FILE`")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except errors")
	f.BoolVar(&opts.noProgress, "no-progress", false, "disable the progress display")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.AddCommand(newDocsCmd())

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly
// set on the command line.
func applyConfigDefaults(flags *pflag.FlagSet, d config.DefaultsConfig, opts *options) error {
	if !flags.Changed("jobs") && d.Jobs != nil {
		opts.jobs = *d.Jobs
	}
	if !flags.Changed("home") && d.Home != nil {
		opts.home = *d.Home
	}
	if !flags.Changed("on-conflict") && d.OnConflict != nil {
		opts.onConflict = *d.OnConflict
	}
	if !flags.Changed("bwlimit") && d.BWLimit != nil {
		opts.bwLimit = *d.BWLimit
	}
	if !flags.Changed("drop-identical") && d.DropIdentical != nil {
		opts.dropIdentical = *d.DropIdentical
	}
	if !flags.Changed("exclude") && !flags.Changed("include") {
		for _, p := range d.Exclude {
			if err := opts.filters.AddExclude(p); err != nil {
				return fmt.Errorf("config exclude %q: %w", p, err)
			}
		}
	}
	if opts.excludeFrom != "" {
		if err := opts.filters.LoadFile(opts.excludeFrom); err != nil {
			return err
		}
	}
	return nil
}

// setupLogging installs the default slog logger: text on stderr, plus a
// JSON file with --log. Every record carries the run ID.
func setupLogging(opts options) (func(), error) {
	level := slog.LevelInfo
	switch {
	case opts.verbose:
		level = slog.LevelDebug
	case opts.quiet:
		level = slog.LevelError
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	closeFn := func() {}
	if opts.logFile != "" {
		lf, err := os.Create(opts.logFile)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		closeFn = func() { _ = lf.Close() }
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		handler = ui.NewMultiHandler(handler, jsonHandler)
	}

	slog.SetDefault(slog.New(handler).With("run_id", uuid.NewString()))
	return closeFn, nil
}

//nolint:gocyclo,revive // the restore flow is a straight sequence of steps
func restore(ctx context.Context, backupDir string, opts options) error {
	info, err := os.Stat(backupDir)
	if err != nil {
		return fmt.Errorf("backup directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("backup directory %s is not a directory", backupDir)
	}

	var limiter *rate.Limiter
	if opts.bwLimit != "" {
		n, err := filter.ParseSize(opts.bwLimit)
		if err != nil {
			return fmt.Errorf("invalid --bwlimit: %w", err)
		}
		if n > 0 {
			limiter = engine.NewBWLimiter(n)
		}
	}
	strat, err := parseStrategy(opts.onConflict)
	if err != nil {
		return err
	}

	interactive := !opts.yes && ui.IsTTY(os.Stdin.Fd()) && ui.IsTTY(os.Stdout.Fd())
	var ask prompter = huhPrompter{}
	out := io.Writer(os.Stdout)
	if opts.quiet {
		out = io.Discard
	}

	resolver, homeRoot := scan.XDGResolver(), xdg.Home
	if opts.home != "" {
		resolver, homeRoot = scan.HomeResolver(opts.home), opts.home
	}

	slog.Debug("scanning backup", "dir", backupDir, "home", homeRoot)
	found := scan.Scan(backupDir, resolver)
	for _, w := range found.Warnings {
		slog.Warn("scan", "error", w)
	}
	if len(found.Mappings) == 0 {
		fmt.Fprintf(out, "No standard folders found under %s.\n", backupDir)
		return nil
	}

	mappings, err := scan.Unique(found.Mappings, func(d stddir.Dir, candidates []scan.Mapping) (scan.Mapping, error) {
		if !interactive {
			choice := scan.Shallowest(candidates)
			slog.Info("several candidates found, using the shallowest", "dir", d, "path", choice.Src)
			return choice, nil
		}
		return ask.ChooseMapping(d, candidates)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s\n%s", ui.Header("Folders to restore"), ui.FormatMappings(mappings))

	if !opts.dryRun && !opts.yes {
		if !interactive {
			return errors.New("not a terminal; pass --yes to restore without confirmation")
		}
		ok, err := ask.Confirm("Restore these folders?", "Existing files are kept; clashes get a .restore name.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Nothing restored.")
			return nil
		}
	}

	var exclude *filter.Chain
	if !opts.filters.Empty() {
		exclude = opts.filters
		slog.Debug("filtering plan", "rules", opts.filters.Len())
	}
	p, err := plan.Build(mappings, plan.Options{Exclude: exclude})
	if err != nil {
		return fmt.Errorf("planning: %w", err)
	}

	if opts.dryRun {
		fmt.Fprint(out, "\n"+ui.FormatDryRun(p))
		return nil
	}

	res, elapsed, err := copyWithProgress(ctx, p, opts, limiter, homeRoot)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "\n"+ui.FormatReport(res, elapsed))

	resolveFailures := handleConflicts(out, res.Conflicts, strat, opts.dropIdentical, interactive, ask)

	if opts.deleteSource {
		if err := deleteSources(out, mappings, res, interactive, opts.yes, ask); err != nil {
			slog.Error("deleting backup folders", "error", err)
			return &exitError{code: 1}
		}
	}

	if res.HasFailures() || resolveFailures > 0 {
		for _, f := range res.Failures {
			slog.Error("not restored", "src", f.Src, "error", f.Err)
		}
		return &exitError{code: 1}
	}
	return nil
}

// copyWithProgress runs the engine with a presenter attached. An interrupt
// removes half-written files before exiting.
func copyWithProgress(
	ctx context.Context,
	p plan.Plan,
	opts options,
	limiter *rate.Limiter,
	homeRoot string,
) (*engine.Result, time.Duration, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case s := <-sigs:
			cancel()
			removed := engine.CleanupInFlight()
			slog.Warn("interrupted", "signal", s.String(), "partial_files_removed", len(removed))
			os.Exit(2)
		case <-done:
		}
	}()

	collector := stats.NewCollector()
	events := make(chan event.Event, 256)

	presenterEvents := (<-chan event.Event)(events)
	if opts.logFile != "" {
		teed := make(chan event.Event, 256)
		go func() {
			for ev := range events {
				ui.LogEvent(slog.Default(), ev)
				teed <- ev
			}
			close(teed)
		}()
		presenterEvents = teed
	}

	presenter := ui.NewPresenter(ui.Config{
		Writer:     os.Stdout,
		ErrWriter:  os.Stderr,
		Stats:      collector,
		HomeRoot:   homeRoot,
		IsTTY:      ui.IsTTY(os.Stderr.Fd()),
		Width:      ui.TermWidth(os.Stderr.Fd()),
		Quiet:      opts.quiet,
		Verbose:    opts.verbose,
		NoProgress: opts.noProgress,
	})

	var presenterErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		presenterErr = presenter.Run(presenterEvents)
	}()

	slog.Debug("starting restore", "files", len(p.Files), "bytes", p.TotalBytes, "jobs", opts.jobs)
	start := time.Now()
	res, err := engine.Run(ctx, p, engine.Config{
		Workers: opts.jobs,
		Stats:   collector,
		Events:  events,
		Limiter: limiter,
	})
	elapsed := time.Since(start)
	close(events)
	wg.Wait()

	if presenterErr != nil {
		fmt.Fprintf(os.Stderr, "presenter: %v\n", presenterErr)
	}
	if err != nil {
		return nil, elapsed, err
	}
	if !opts.quiet {
		if summary := presenter.Summary(); summary != "" {
			fmt.Fprintln(os.Stderr, summary)
		}
	}
	slog.Info("restore finished", "stats", collector.Snapshot().String(), "elapsed", elapsed)
	return res, elapsed, nil
}

// deleteSources removes the backup folders that were restored, but only
// when every file made it across.
func deleteSources(
	out io.Writer,
	mappings []scan.Mapping,
	res *engine.Result,
	interactive, yes bool,
	ask prompter,
) error {
	if res.HasFailures() {
		slog.Warn("keeping backup folders because some files failed to restore", "failed", len(res.Failures))
		return nil
	}
	if !yes {
		if !interactive {
			slog.Warn("not deleting backup folders without confirmation; pass --yes")
			return nil
		}
		ok, err := ask.Confirm("Delete the restored folders from the backup?", ui.FormatMappings(mappings))
		if err != nil || !ok {
			return err
		}
	}

	var errs []error
	for _, m := range mappings {
		if !m.SourceExists() {
			continue
		}
		if err := os.RemoveAll(m.Src); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", m.Src, err))
			continue
		}
		fmt.Fprintf(out, "deleted %s\n", m.Src)
	}
	return errors.Join(errs...)
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
