// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/skelgen/cli/internal/config"
	"github.com/skelgen/cli/internal/output"
)

var (
	// Global flags
	configFlag     string
	verboseFlag    bool
	timestampsFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	cliConfig *config.Config
)

// NewRootCmd creates the root command for the skel CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "skel",
		Short:         "Template-driven code scaffolding",
		Long:          `skel generates project files from template sets: named collections of templates with typed options, conditional selection, and transactional writes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: SKEL_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewVetCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		// Commands that don't need config should still work.
		output.Debug("config load error", "error", err)
		cfg = config.DefaultConfig()
	}
	cliConfig = cfg

	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}

	// Timestamps precedence: flag (if explicitly set) > config > default.
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	return nil
}

// GetConfig returns the loaded CLI configuration.
func GetConfig() *config.Config {
	if cliConfig == nil {
		return config.DefaultConfig()
	}
	return cliConfig
}

// searchDirs returns the template-set search path: configured dirs first,
// then the user templates directory.
func searchDirs() []string {
	dirs := append([]string{}, GetConfig().TemplateDirs...)
	if userDir, err := config.GetTemplatesDir(); err == nil {
		dirs = append(dirs, userDir)
	}
	return dirs
}
