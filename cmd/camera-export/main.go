// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the camera-export CLI. It converts
// camera poses exported as XML by the photogrammetry tool into the JSON
// document read by the web 3D viewer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/camera-export/internal/export"
	"github.com/pdiddy/camera-export/internal/logger"
	"github.com/pdiddy/camera-export/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg holds the configuration resolved for the current invocation:
// flags, then CAMERA_EXPORT_* environment variables, then the config file.
var cfg *viper.Viper

// rootCmd converts a camera document. Subcommands cover inspection and
// version output.
var rootCmd = &cobra.Command{
	Use:   "camera-export <input-path> [output-path]",
	Short: "Convert photogrammetry camera poses to viewer JSON",
	Long: `camera-export reads the camera XML exported by the photogrammetry tool,
derives each enabled camera's world-space center from its transform, and
writes the cameras plus metadata as JSON for the web 3D viewer.

Cameras that are disabled, lack a transform, or cannot be parsed are
skipped and reported. The output path defaults to cameras.json.`,
	Args:              inputArgs(2),
	SilenceUsage:      true,
	PersistentPreRunE: applyLogging,
	RunE:              runExport,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./camera-export.yaml or ~/.config/camera-export/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print diagnostics to stderr")

	rootCmd.Flags().StringP("output", "o", "", "output path when not given as an argument (default cameras.json)")
	rootCmd.Flags().String("format", "", "output format: json or yaml (default: from output extension, else json)")
	rootCmd.Flags().Bool("no-stats", false, "do not print the camera statistics block")
}

func initConfig() {
	cfg = viper.New()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		cfg.SetConfigFile(cfgFile)
	} else {
		cfg.SetConfigName("camera-export")
		cfg.SetConfigType("yaml")
		cfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			cfg.AddConfigPath(filepath.Join(home, ".config", "camera-export"))
		}
	}

	cfg.SetEnvPrefix("CAMERA_EXPORT")
	cfg.AutomaticEnv()

	cfg.SetDefault("output", types.DefaultOutputPath)
	cfg.SetDefault("format", "")
	cfg.SetDefault("stats", true)
	cfg.SetDefault("verbose", false)

	_ = cfg.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = cfg.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	_ = cfg.BindPFlag("format", rootCmd.Flags().Lookup("format"))

	if err := cfg.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", cfg.ConfigFileUsed())
	}
}

// inputArgs requires the input path and accepts at most n arguments.
func inputArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("missing input path\nUsage: %s", cmd.UseLine())
		}
		return cobra.MaximumNArgs(n)(cmd, args)
	}
}

func applyLogging(cmd *cobra.Command, args []string) error {
	logger.SetVerbose(cfg.GetBool("verbose"))
	return nil
}

// exportConfig resolves the run settings. A positional output path wins
// over the output flag and configuration.
func exportConfig(cmd *cobra.Command, args []string) types.ExportConfig {
	noStats, _ := cmd.Flags().GetBool("no-stats")

	ec := types.ExportConfig{
		InputPath:  args[0],
		OutputPath: cfg.GetString("output"),
		Format:     types.OutputFormat(cfg.GetString("format")),
		PrintStats: cfg.GetBool("stats") && !noStats,
	}
	if len(args) > 1 {
		ec.OutputPath = args[1]
	}
	return ec
}

func runExport(cmd *cobra.Command, args []string) error {
	ec := exportConfig(cmd, args)
	logger.Debug("config: %+v", ec)

	_, err := export.Run(ec, cmd.OutOrStdout())
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
