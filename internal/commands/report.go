package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gfranco7/viaticos-platform/internal/gateway"
	"github.com/gfranco7/viaticos-platform/internal/panel"
	"github.com/gfranco7/viaticos-platform/internal/storage"
)

func newReportCommand(configPath *string) *cobra.Command {
	var period string
	var outDir string
	var password string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the aggregate spreadsheet report (password gated)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadEnvironment(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if outDir == "" {
				outDir = cfg.Report.OutputDir
			}

			client := gateway.NewClient(gateway.Config{
				BaseURL:         cfg.API.BaseURL,
				SubmitTimeout:   cfg.API.SubmitTimeout,
				DownloadTimeout: cfg.API.DownloadTimeout,
			}, logger)
			store := storage.NewLocalReportStore(outDir, logger)
			flow := panel.NewFlow(client, store, logger)

			if err := flow.Begin(); err != nil {
				return err
			}

			if password == "" {
				password, err = promptPassword(cmd)
				if err != nil {
					flow.Cancel()
					return err
				}
			}

			if !flow.Authorize(password) {
				flow.Cancel()
				return errors.New("contraseña incorrecta; por favor, inténtelo de nuevo")
			}

			if err := flow.DownloadReport(cmd.Context(), period); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), panel.DescribeError(err))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Reporte completo descargado exitosamente.")
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", "full", "period label for the report")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to save the report (defaults to config)")
	cmd.Flags().StringVar(&password, "password", "", "download password (prompted if omitted)")

	return cmd
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Ingrese la contraseña para descargar el reporte: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
