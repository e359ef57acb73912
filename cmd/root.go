// -- cmd/root.go --
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jbro885/kosmonaut/internal/config"
	"github.com/jbro885/kosmonaut/internal/observability"
)

var (
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
// Given an HTML file it runs the full style and layout pipeline against the
// configured window; the box-level output lives behind `dump-layout`.
var rootCmd = &cobra.Command{
	Use:   "kosmonaut [html-file]",
	Short: "Kosmonaut is a web browser engine.",
	Args:  cobra.MaximumNArgs(1),
	// Version is dynamically set at build time. See cmd/version.go.
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Runs before any command, setting up config and logging.
		if err := initializeConfig(cmd); err != nil {
			return err
		}

		var cfg config.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			// Initialize a fallback logger if config unmarshal fails.
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "kosmonaut"})
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}
		if err := cfg.Window.Validate(); err != nil {
			observability.InitializeLogger(cfg.Logger)
			return err
		}

		observability.InitializeLogger(cfg.Logger)
		observability.GetLogger().Debug("Starting kosmonaut",
			zap.String("version", Version),
			zap.Float64("width", cfg.Window.Width),
			zap.Float64("height", cfg.Window.Height),
			zap.Float64("scale_factor", cfg.Window.ScaleFactor))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runRender(args[0])
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	defer observability.Sync()
	if err := rootCmd.Execute(); err != nil {
		// GetLogger falls back to a usable logger even before Initialize.
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Float64P("width", "w", 1920, "inner window width in CSS pixels")
	rootCmd.PersistentFlags().Float64("height", 1080, "inner window height in CSS pixels")
	rootCmd.PersistentFlags().Float64P("scale-factor", "s", 1.0, "device scale factor (CSS px to device px)")

	rootCmd.AddCommand(newDumpLayoutCmd())

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// initializeConfig reads in the config file and ENV variables if set, and
// binds the window flags so command-line values override both.
func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("KOSMONAUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	if err := viper.BindPFlag("window.width", cmd.Flags().Lookup("width")); err != nil {
		return err
	}
	if err := viper.BindPFlag("window.height", cmd.Flags().Lookup("height")); err != nil {
		return err
	}
	if err := viper.BindPFlag("window.scale_factor", cmd.Flags().Lookup("scale-factor")); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars.
	}
	return nil
}
