package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"chainkit/internal/bootstrap"
	"chainkit/internal/config"
	"chainkit/internal/logger"
)

// Version is the CLI version.
const Version = "1.0.0"

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type rootOptions struct {
	configPath string
	verbose    bool
	format     string
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand builds the chainkit command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "chainkit",
		Short: "Address classification, fiat rates and cold-staking checks",
		Long: `chainkit identifies which chain and network an address or payment URI
belongs to, converts between satoshis and fiat using live exchange rates, and
validates cold-staking pool credentials.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "configs", "directory containing config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging on stderr")
	rootCmd.PersistentFlags().StringVarP(&opts.format, "format", "o", formatText, "output format (text, json, yaml)")

	rootCmd.AddCommand(
		newClassifyCommand(opts),
		newNetworkCommand(opts),
		newMatchCommand(opts),
		newColdStakingCommand(opts),
		newRatesCommand(opts),
		newConvertCommand(opts),
		newAlternativesCommand(opts),
		newWatchCommand(opts),
		newConfigCommand(opts),
	)
	return rootCmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

// newLogger logs to stderr; warnings only unless --verbose.
func (o *rootOptions) newLogger(cfg *config.Config) (*zap.Logger, error) {
	logCfg := config.LoggerConfig{Level: "warn", Encoding: "console"}
	if o.verbose {
		logCfg.Level = "debug"
	}
	if cfg.Logger.Encoding != "" {
		logCfg.Encoding = cfg.Logger.Encoding
	}
	return logger.NewLoggerTo(logCfg, os.Stderr)
}

// loadApp wires the core for a command. The periodic refresher is never started
// by the CLI.
func (o *rootOptions) loadApp(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg.Rates.RefreshInterval = 0

	appLogger, err := o.newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, appLogger)
}

// render writes v in the selected format; text output is produced by text.
func (o *rootOptions) render(w io.Writer, v any, text func(io.Writer) error) error {
	switch o.format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case formatText, "":
		return text(w)
	default:
		return fmt.Errorf("unknown output format %q", o.format)
	}
}
