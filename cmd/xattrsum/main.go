// xattrsum maintains a SHA-256 content-integrity marker in an extended
// file attribute and verifies files against it.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	internal "github.com/ZanzyTHEbar/xattrsum/xsum"
	"github.com/ZanzyTHEbar/xattrsum/xsum/config"
	"github.com/ZanzyTHEbar/xattrsum/xsum/digest"
	"github.com/ZanzyTHEbar/xattrsum/xsum/engine"
	"github.com/ZanzyTHEbar/xattrsum/xsum/runner"
	"github.com/ZanzyTHEbar/xattrsum/xsum/selector"
	"github.com/ZanzyTHEbar/xattrsum/xsum/store"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := internal.GetLogger()

	flags := flag.NewFlagSet(internal.DefaultAppName, flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		addFlag     = flags.Bool("add", false, "add a checksum attribute to files that do not have one")
		checkFlag   = flags.Bool("check", false, "verify file content against the stored checksum")
		removeFlag  = flags.Bool("remove", false, "remove the checksum attribute")
		updateFlag  = flags.Bool("update", false, "recompute the checksum for files whose content changed")
		printFlag   = flags.Bool("print", false, "print stored checksums in sha256sum format")
		showVersion = flags.Bool("version", false, "print version and exit")
		configPath  = flags.String("config", "", "path to config file")
	)
	flags.BoolP("verbose", "v", false, "print notices for add/remove/update writes")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s (--add|--check|--remove|--update|--print) [-v] <path>\n\n", internal.DefaultAppName)
		fmt.Fprintln(stderr, "Maintains a SHA-256 checksum of each file's content in the extended")
		fmt.Fprintf(stderr, "attribute %q and verifies files against it.\n", internal.DefaultAttrName)
		fmt.Fprintln(stderr, "A directory path is processed recursively, staying on one filesystem")
		fmt.Fprintln(stderr, "and skipping empty files.")
		fmt.Fprintln(stderr, "\nExit status: 0 ok, 1 attribute missing, 2 path not found, 3 checksum mismatch.")
		fmt.Fprintln(stderr, "\nFlags:")
		fmt.Fprint(stderr, flags.FlagUsages())
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return runner.ExitOK
		}
		fmt.Fprintln(stderr, err)
		return runner.ExitUsage
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", internal.DefaultAppName, version)
		return runner.ExitOK
	}

	if err := viper.BindPFlag("xattrsum.verbose", flags.Lookup("verbose")); err != nil {
		logger.Error().Err(err).Msg("failed to bind flags")
		return runner.ExitUsage
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		return runner.ExitUsage
	}

	selected := make([]engine.Action, 0, 1)
	for _, a := range []struct {
		set    bool
		action engine.Action
	}{
		{*addFlag, engine.ActionAdd},
		{*checkFlag, engine.ActionCheck},
		{*removeFlag, engine.ActionRemove},
		{*updateFlag, engine.ActionUpdate},
		{*printFlag, engine.ActionPrint},
	} {
		if a.set {
			selected = append(selected, a.action)
		}
	}
	if len(selected) != 1 {
		fmt.Fprintln(stderr, "exactly one of --add, --check, --remove, --update, --print is required")
		flags.Usage()
		return runner.ExitUsage
	}
	if flags.NArg() > 1 {
		fmt.Fprintln(stderr, "supply a single path")
		return runner.ExitUsage
	}

	// Contractual diagnostics are plain stderr lines; structured logs only
	// surface at error level unless verbose is set.
	level := slog.LevelError
	if cfg.Xattrsum.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	sel := selector.New(selector.Options{
		SameDevice: cfg.Xattrsum.OneFilesystem,
		IgnoreFile: cfg.Xattrsum.IgnoreFile,
	})
	eng := engine.New(
		store.NewXattrStore(cfg.Xattrsum.AttrName),
		digest.NewSHA256Provider(),
		cfg.Xattrsum.Verbose,
		stdout,
		stderr,
	)

	return runner.New(sel, eng, stderr).Run(context.Background(), selected[0], flags.Arg(0))
}
