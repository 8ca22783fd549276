package main

import (
	"fmt"
	"strings"

	"github.com/danmuck/kproto/internal/config"
	"github.com/danmuck/kproto/internal/logging"
	"github.com/danmuck/kproto/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app is the state shared by every subcommand after PersistentPreRunE.
type app struct {
	cfgFile      string
	outputFormat string
	logLevel     string

	cfg     config.Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "kproto",
		Short: "Compose and inspect kiq IPC frame messages",
		Long: `kproto builds the multi-frame IPC messages exchanged between the kiq host
and its platform workers, and extracts or decodes received frames.

Frames are printed and read as comma-separated hex; frame 0 is the empty
delimiter and frame 1 the one-byte type code.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is "+config.DefaultPath()+")")
	root.PersistentFlags().StringVarP(&a.outputFormat, "output", "o", "", "output format: text, hex, json, yaml")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override: trace, debug, info, warn, error, off")

	root.AddCommand(
		a.newComposeCmd(),
		a.newExtractCmd(),
		a.newDecodeCmd(),
		a.newKindsCmd(),
		a.newTypesCmd(),
		a.newConfigCmd(),
	)
	return root
}

// setupLogging applies the runtime log profile and the --log-level flag.
func (a *app) setupLogging() error {
	observability.InitLogger("kproto")
	if a.logLevel != "" && !logging.SetLevel(a.logLevel) {
		return fmt.Errorf("invalid --log-level %q", a.logLevel)
	}
	return nil
}

func (a *app) setup() error {
	if err := a.setupLogging(); err != nil {
		return err
	}

	cfg, path, err := resolveConfig(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.outputFormat != "" {
		cfg.Output = strings.ToLower(strings.TrimSpace(a.outputFormat))
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	// an unset level leaves the profile and KPROTO_LOG_LEVEL in charge
	if cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}

	a.cfg = cfg
	a.cfgPath = path
	log.Debug().Str("path", path).Str("output", cfg.Output).Msg("kproto config resolved")
	return nil
}
