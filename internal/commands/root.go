package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gfranco7/viaticos-platform/internal/config"
	"github.com/gfranco7/viaticos-platform/pkg/utils"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "viaticos",
		Short: "Submit travel-expense reimbursement requests and download reports",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (optional)")

	rootCmd.AddCommand(newSubmitCommand(&configPath))
	rootCmd.AddCommand(newReportCommand(&configPath))

	return rootCmd
}

// loadEnvironment resolves config and logger for a subcommand run.
func loadEnvironment(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
