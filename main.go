package main

import (
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"lukechampine.com/oqlseq/evaluator"
	"lukechampine.com/oqlseq/goexpr"
	"lukechampine.com/oqlseq/seq"
)

type options struct {
	configPath string
	lang       string
	profile    string
	debug      bool
	noColor    bool
}

// stopProfile flushes the profile started by --profile, if any.
var stopProfile = func() {}

func main() {
	err := newRootCmd().Execute()
	stopProfile()
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	var cfg Config

	root := &cobra.Command{
		Use:   "oqlseq",
		Short: "Evaluate heap query sequence expressions",
		Long: `oqlseq evaluates expressions over the heap query sequence functions
(concat, contains, count, filter, length, map, max, min, sort, sum, toArray,
unique). Without a subcommand it starts an interactive prompt.

  oql> sum(filter(range(10), "it % 2 == 0"))
  20`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.debug)
			var err error
			if cfg, err = loadConfig(opts.configPath); err != nil {
				return err
			}
			if opts.lang != "" {
				cfg.Lang = opts.lang
			}
			if opts.noColor {
				cfg.Color = false
			}
			applyColor(cfg.Color)
			if err := useCompiler(cfg.Lang); err != nil {
				return err
			}
			var mode func(*profile.Profile)
			switch opts.profile {
			case "":
				return nil
			case "cpu":
				mode = profile.CPUProfile
			case "mem":
				mode = profile.MemProfile
			default:
				return errors.Errorf("unknown profile mode %q (want cpu or mem)", opts.profile)
			}
			stopProfile = profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook).Stop
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cfg)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/oqlseq/config.toml)")
	flags.StringVar(&opts.lang, "lang", "", "language of textual callbacks: expr or go")
	flags.StringVar(&opts.profile, "profile", "", "write a cpu or mem profile to the current directory")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(&cobra.Command{
		Use:   "run FILE",
		Short: "Evaluate each line of FILE and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return runScript(f, newPrinter(os.Stdout, true))
		},
	})
	return root
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// useCompiler selects the compiler for textual callbacks.
func useCompiler(lang string) error {
	switch lang {
	case "", "expr":
		seq.SetCompiler(evaluator.Compiler{})
	case "go":
		c, err := goexpr.New()
		if err != nil {
			return err
		}
		seq.SetCompiler(c)
	default:
		return errors.Errorf("unknown callback language %q (want expr or go)", lang)
	}
	slog.Debug("callback compiler selected", "lang", lang)
	return nil
}
