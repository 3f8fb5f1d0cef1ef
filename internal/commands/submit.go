package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gfranco7/viaticos-platform/internal/gateway"
	"github.com/gfranco7/viaticos-platform/internal/viatico"
)

func newSubmitCommand(configPath *string) *cobra.Command {
	var file string
	var skipValidation bool

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a reimbursement request from a JSON document",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadEnvironment(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			form, err := loadForm(file, logger)
			if err != nil {
				return err
			}

			req := form.Request()
			if !skipValidation {
				if err := req.Validate(); err != nil {
					return fmt.Errorf("request is incomplete: %w", err)
				}
			}

			client := gateway.NewClient(gateway.Config{
				BaseURL:         cfg.API.BaseURL,
				SubmitTimeout:   cfg.API.SubmitTimeout,
				DownloadTimeout: cfg.API.DownloadTimeout,
			}, logger)

			receipt, err := client.Submit(cmd.Context(), req)
			if err != nil {
				var gerr *gateway.Error
				if errors.As(err, &gerr) {
					fmt.Fprintln(cmd.ErrOrStderr(), gerr.UserMessage())
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Solicitud enviada exitosamente.")
			if len(receipt.Body) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), string(receipt.Body))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "request document to submit (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "submit even if required fields are missing")

	return cmd
}

// formDocument is the on-disk request shape: the scalar fields plus line
// items, without the derived balance (it is recomputed on load).
type formDocument struct {
	Fields    map[string]string `json:"fields"`
	Conceptos []lineDocument    `json:"conceptos"`
}

type lineDocument map[string]string

// loadForm reads a request document and replays it through the form model,
// so entry-point sanitization and balance recomputation apply exactly as
// they would for interactive input.
func loadForm(path string, logger *zap.Logger) (*viatico.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request document: %w", err)
	}

	var doc formDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing request document: %w", err)
	}

	form := viatico.NewForm(logger)
	for name, value := range doc.Fields {
		if !knownField(name) {
			return nil, fmt.Errorf("unknown form field %q in %s", name, path)
		}
		form.SetField(name, value)
	}
	for _, line := range doc.Conceptos {
		index := form.AddLineItem()
		for field, value := range line {
			if !knownLineField(field) {
				return nil, fmt.Errorf("unknown line-item field %q in %s", field, path)
			}
			form.SetLineItemField(index, field, value)
		}
	}
	return form, nil
}

func knownField(name string) bool {
	switch name {
	case viatico.FieldTipoViatico, viatico.FieldLineaNegocio, viatico.FieldZonaUbicacion,
		viatico.FieldSolicitante, viatico.FieldCentroCostos, viatico.FieldNoAnticipo,
		viatico.FieldCedulaCiudadania, viatico.FieldFechaInicio, viatico.FieldFechaFinal,
		viatico.FieldFechaSolicitud, viatico.FieldCiudadOrigen, viatico.FieldCiudadDestino,
		viatico.FieldActividadRealizar, viatico.FieldFuncionarioConsignar,
		viatico.FieldEntidadBancaria, viatico.FieldTipoCuenta, viatico.FieldNoCuenta,
		viatico.FieldDineroEntregado, viatico.FieldCorreoFuncionario, viatico.FieldObservaciones:
		return true
	}
	return false
}

func knownLineField(name string) bool {
	switch name {
	case viatico.LineFieldItem, viatico.LineFieldFechaFactura, viatico.LineFieldNIT,
		viatico.LineFieldNombreEmisor, viatico.LineFieldConcepto, viatico.LineFieldNoFactura,
		viatico.LineFieldObservaciones, viatico.LineFieldValor, viatico.LineFieldSoporte:
		return true
	}
	return false
}
