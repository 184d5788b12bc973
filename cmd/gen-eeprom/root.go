package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/awantoch/eepromgen/blob"
	"github.com/awantoch/eepromgen/config"
	"github.com/awantoch/eepromgen/constants"
	"github.com/awantoch/eepromgen/emitter"
	"github.com/awantoch/eepromgen/logger"
)

var (
	exit       = os.Exit
	configPath string
	prefix     string
	debug      bool
)

// NewRootCmd creates the 'gen-eeprom' command. Positional arguments are the
// files to convert; declarations go to stdout in argument order.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.UseGenerate,
		Short: constants.DescGenerate,
		Long: `Convert binary files into C byte array declarations.

Each file becomes
  static const uint8_t <PREFIX><name>[] = { ... };
where <name> is the file's base name up to its first dot. The PREFIX
environment variable (or --prefix) is prepended to every name.`,
		Args: cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if err := generate(cmd, args); err != nil {
				logger.Error(constants.ErrGenerateFailed, err)
				exit(1)
			}
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", constants.DefaultConfigPath, "Path to gen-eeprom config YAML")
	rootCmd.Flags().StringVar(&prefix, "prefix", "", "Identifier prefix (overrides $"+constants.EnvPrefix+")")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable debug logs")
	return rootCmd
}

func generate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if debug {
		logger.SetMode("debug")
	}

	cfg, err := config.LoadConfig(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return fmt.Errorf(constants.ErrConfigLoadFailed, configPath, err)
	}
	if !debug {
		logger.SetMode(cfg.Log.Level)
	}
	cfg.ApplyEnv()
	// CLI flag overrides env and config file
	if cmd.Flags().Changed("prefix") {
		cfg.Prefix = prefix
	}
	tmplSrc, err := cfg.TemplateSource()
	if err != nil {
		return err
	}

	store := blob.NewDefaultStore(&blob.Config{Region: cfg.S3.Region})
	em, err := emitter.New(store, emitter.Options{
		Prefix:       cfg.Prefix,
		Qualifier:    cfg.Qualifier,
		BytesPerLine: cfg.BytesPerLine,
		Template:     tmplSrc,
	})
	if err != nil {
		return fmt.Errorf(constants.ErrEmitterFailed, err)
	}
	logger.Debug("generating %d declaration(s) with prefix %q", len(args), cfg.Prefix)
	return em.Emit(cmd.Context(), cmd.OutOrStdout(), args)
}
