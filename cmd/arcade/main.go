package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/arcade/internal/config"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:   "arcade",
		Short: "Pooled asteroid shooter for the terminal",
		Long: `arcade is a small asteroid shooter built on fixed-capacity entity pools.
Asteroids, explosions and projectiles are allocated once at startup and reused.

Run it interactively with "arcade play" or headless with "arcade sim".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultConfig := "config/arcade.toml"
	if p := os.Getenv("ARCADE_CONFIG"); p != "" {
		defaultConfig = p
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", defaultConfig, "Path to the TOML config file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override logging.level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "arcade v%s\n", version)
		},
	})
	root.AddCommand(newPlayCmd(flags))
	root.AddCommand(newSimCmd(flags))
	root.AddCommand(newScoresCmd(flags))
	root.AddCommand(newMigrateCmd(flags))
	return root
}

// setup loads the config (defaults when the file is missing) and builds the
// logger.
func setup(flags *globalFlags) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadOrDefault(flags.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	// stdout belongs to the terminal UI and the sim summary
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}

// ── Console display helpers ───────────────────────────────────────

func printBanner(w io.Writer, mode string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Fprintf(w, "\033[36;1m  │\033[0m               arcade  v%s               \033[36;1m│\033[0m\n", version)
	fmt.Fprintln(w, "\033[36;1m  │\033[0m        pooled asteroids · terminal        \033[36;1m│\033[0m")
	fmt.Fprintln(w, "\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  \033[1mmode:\033[0m %s\n\n", mode)
}

func printSection(w io.Writer, title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Fprintf(w, "  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(w io.Writer, label string, value any) {
	valStr := fmt.Sprint(value)
	dotsLen := 42 - len(label) - len(valStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Fprintf(w, "  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), valStr)
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintf(w, "  \033[32m✓\033[0m %s\n", msg)
}

func printReady(w io.Writer, msg string) {
	fmt.Fprintf(w, "  \033[32m▶\033[0m %s\n", msg)
}
