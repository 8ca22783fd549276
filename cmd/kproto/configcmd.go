package main

import (
	"fmt"

	"github.com/danmuck/kproto/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the kproto config file",
	}

	var initPath string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config template",
		Args:  cobra.NoArgs,
		// no config resolution: init replaces broken configs
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := initPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("wrote config template")
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}
	initCmd.Flags().StringVar(&initPath, "path", "", "output path (default is the --config default)")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	var validatePath string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Strictly validate a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := validatePath
			if path == "" {
				path = a.cfgPath
			}
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := config.Load(path); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "validated %s\n", path)
			return err
		},
	}
	validateCmd.Flags().StringVar(&validatePath, "path", "", "config path (default is the loaded config)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(a.cfg)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), a.cfg.Output, string(data), a.cfg)
		},
	}

	cmd.AddCommand(initCmd, validateCmd, showCmd)
	return cmd
}
