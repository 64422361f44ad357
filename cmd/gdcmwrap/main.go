package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/dcmtools/gdcmwrap/internal/config"
	"github.com/dcmtools/gdcmwrap/pkg/gdcm"
	"github.com/dcmtools/gdcmwrap/pkg/logging"
	"github.com/dcmtools/gdcmwrap/pkg/utils/argsplit"
)

const version = "0.1.0"

var (
	configPath string
	logLevel   string
	timeout    time.Duration
	noWhiny    bool
	noValidate bool
	extraArgs  string
	inPlace    bool
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:     "gdcmwrap",
		Short:   "Drive the GDCM DICOM toolkit binaries",
		Long:    `Drive the GDCM DICOM toolkit binaries (gdcmconv, gdcminfo, gdcmdump) from one front end`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to gdcmwrap.toml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-invocation timeout (0 = unbounded)")
	rootCmd.PersistentFlags().BoolVar(&noWhiny, "no-whiny", false, "Do not fail on non-zero toolkit exit")
	rootCmd.PersistentFlags().BoolVar(&noValidate, "no-validate", false, "Skip gdcminfo validation on open")

	convertCmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a DICOM file with gdcmconv",
		Args:  cobra.ExactArgs(2),
		Run:   runConvert,
	}
	convertCmd.Flags().StringVar(&extraArgs, "args", "", `Extra gdcmconv flags, e.g. --args "--raw --force"`)
	convertCmd.Flags().BoolVar(&inPlace, "in-place", false, "Convert the input file itself instead of a temporary copy")

	infoCmd := &cobra.Command{
		Use:   "info <input>",
		Short: "Print scraped gdcminfo metadata as key: value lines",
		Args:  cobra.ExactArgs(1),
		Run:   runInfo,
	}

	validateCmd := &cobra.Command{
		Use:   "validate <input>",
		Short: "Check whether the toolkit accepts a file",
		Args:  cobra.ExactArgs(1),
		Run:   runValidate,
	}

	dumpCmd := &cobra.Command{
		Use:   "dump <input>",
		Short: "Print the raw gdcmdump output",
		Args:  cobra.ExactArgs(1),
		Run:   runDump,
	}

	rootCmd.AddCommand(convertCmd, infoCmd, validateCmd, dumpCmd)
}

// buildConfig layers file config under command-line flags.
func buildConfig(logger hclog.Logger) *gdcm.Config {
	cfg := gdcm.DefaultConfig()
	cfg.Logger = logger

	path := configPath
	if path == "" {
		path = os.Getenv("GDCMWRAP_CONFIG")
	}
	if path != "" {
		file, err := config.Load(path)
		if err != nil {
			fatal(logger, err)
		}
		if err := file.Apply(cfg); err != nil {
			fatal(logger, err)
		}
		if logLevel == "" && file.LogLevel != "" {
			cfg.Logger = logging.NewLogger("gdcmwrap", file.LogLevel, nil)
		}
	}

	if timeout > 0 {
		cfg.Timeout = timeout
	}
	if noWhiny {
		cfg.Whiny = false
	}
	if noValidate {
		cfg.ValidateOnOpen = false
	}
	return cfg
}

func newLogger() hclog.Logger {
	level := logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	return logging.NewLogger("gdcmwrap", level, nil)
}

func fatal(logger hclog.Logger, err error) {
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func runConvert(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := buildConfig(logger)

	tokens, err := argsplit.Split(extraArgs)
	if err != nil {
		fatal(logger, err)
	}

	build := func(t *gdcm.Tool) {
		for _, tok := range tokens {
			t.AppendRaw(tok)
		}
	}

	if inPlace {
		p := gdcm.NewPackage(cfg, args[0])
		if err := p.Convert(build); err != nil {
			fatal(logger, err)
		}
		if err := p.Write(args[1]); err != nil {
			fatal(logger, err)
		}
		return
	}

	p, err := gdcm.Open(cfg, args[0])
	if err != nil {
		fatal(logger, err)
	}
	defer p.Destroy()

	if err := p.Convert(build); err != nil {
		fatal(logger, err)
	}
	if err := p.Write(args[1]); err != nil {
		fatal(logger, err)
	}
}

func runInfo(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := buildConfig(logger)

	p := gdcm.NewPackage(cfg, args[0])
	info, err := p.Info()
	if err != nil {
		fatal(logger, err)
	}

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s: %s\n", k, info[k])
	}
}

func runValidate(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := buildConfig(logger)

	p := gdcm.NewPackage(cfg, args[0])
	if err := p.Validate(); err != nil {
		fatal(logger, err)
	}
	fmt.Printf("✓ %s\n", args[0])
}

func runDump(cmd *cobra.Command, args []string) {
	logger := newLogger()
	cfg := buildConfig(logger)

	out, err := gdcm.RunDump(cfg, func(t *gdcm.Tool) {
		t.AppendRaw(args[0])
	})
	if err != nil {
		fatal(logger, err)
	}
	fmt.Println(out)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
